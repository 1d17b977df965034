package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/portside-dev/portside/internal/logger"
)

// Launcher opens a URL in the user's browser. Launch failures are
// logged and ignored; the instance keeps running either way.
type Launcher interface {
	Open(url string) error
}

// ServerRunner starts the managed application server bound to the
// given endpoint. Run returns once the listener is bound; the handle
// reports the serve result asynchronously.
type ServerRunner interface {
	Run(host string, port int) (ServerHandle, error)
}

// Config is the merged set of recognized options supplied by the CLI
// before the orchestrator runs. It is read-only input to the core.
type Config struct {
	App         string // application name, determines the state directory
	StateRoot   string // root state directory
	Host        string
	Port        int // explicit requested port; 0 means auto-allocate
	BasePort    int // base of the auto-allocation search
	Environment string
	Foreground  bool
	SkipLaunch  bool // suppress the browser launch
	Debug       bool

	// ChildArgs builds the argument list for the detached child given
	// the chosen endpoint. Required unless Foreground is set.
	ChildArgs func(ep Endpoint) []string
}

// OutcomeKind classifies how a startup attempt concluded.
type OutcomeKind int

const (
	// OutcomeStarted means a new instance was started.
	OutcomeStarted OutcomeKind = iota
	// OutcomeDelegated means a live instance already existed and was
	// delegated to; nothing was started and no state was touched.
	OutcomeDelegated
)

// Outcome is the result of a startup attempt, returned up to the
// entry point which decides the process exit code.
type Outcome struct {
	Kind     OutcomeKind
	URL      string
	PID      int
	Detached bool
}

// Orchestrator composes the lifecycle components into the documented
// startup sequence and exposes the kill and status operations.
type Orchestrator struct {
	cfg    Config
	store  *Store
	prober Prober
	guard  *Guard
	alloc  *Allocator
	launch Launcher
	runner ServerRunner
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithProber substitutes the occupancy prober. Intended for tests.
func WithProber(p Prober) Option {
	return func(o *Orchestrator) { o.prober = p }
}

// New creates an Orchestrator for the given configuration.
func New(cfg Config, runner ServerRunner, launch Launcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:    cfg,
		store:  NewStore(StateDir{Root: cfg.StateRoot, App: cfg.App}),
		prober: NewTCPProber(),
		launch: launch,
		runner: runner,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.guard = NewGuard(o.store, o.prober)
	o.alloc = NewAllocator(o.prober)
	return o
}

// Store exposes the orchestrator's state store.
func (o *Orchestrator) Store() *Store {
	return o.store
}

// Up runs the startup sequence: detect a duplicate instance, allocate
// a port, persist the listen URL, launch the browser, then either
// detach into the background or run the server in the foreground
// until signaled. Foreground runs block until shutdown.
func (o *Orchestrator) Up(ctx context.Context) (Outcome, error) {
	if err := o.store.Ensure(); err != nil {
		return Outcome{}, err
	}

	// Advisory lock closing the probe-then-write race between two
	// near-simultaneous startups. Held only for the startup section,
	// released before the server run blocks.
	lock := flock.New(o.store.Dir().LockPath())
	if err := lock.Lock(); err != nil {
		logger.Warn("could not acquire startup lock, proceeding unlocked",
			logger.KeyError, err)
	}
	unlock := func() {
		_ = lock.Unlock()
	}

	if url, running := o.guard.DetectRunning(); running {
		unlock()
		logger.Info("instance already running, delegating",
			logger.KeyApp, o.cfg.App,
			logger.KeyURL, url)
		o.openBrowser(url)
		return Outcome{Kind: OutcomeDelegated, URL: url}, nil
	}

	port, err := o.alloc.Allocate(o.cfg.Port, o.cfg.BasePort, o.cfg.Host)
	if err != nil {
		unlock()
		return Outcome{}, err
	}
	ep := Endpoint{Host: o.cfg.Host, Port: port}

	if err := o.store.WriteURL(ep.URL()); err != nil {
		unlock()
		return Outcome{}, err
	}
	logger.Info("endpoint bound",
		logger.KeyApp, o.cfg.App,
		logger.KeyURL, ep.URL())

	o.openBrowser(ep.URL())

	if !o.cfg.Foreground {
		pid, err := o.detach(ep)
		unlock()
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeStarted, URL: ep.URL(), PID: pid, Detached: true}, nil
	}

	pid := os.Getpid()
	if err := o.store.WritePID(pid); err != nil {
		unlock()
		return Outcome{}, err
	}
	unlock()

	srv, err := o.runner.Run(ep.Host, ep.Port)
	if err != nil {
		_ = o.store.DeletePID()
		return Outcome{}, fmt.Errorf("server startup failed: %w", err)
	}
	logger.Info("server running",
		logger.KeyApp, o.cfg.App,
		logger.KeyPID, pid,
		logger.KeyURL, ep.URL())

	relay := NewRelay(o.store)
	runErr := relay.Listen(ctx, srv)
	return Outcome{Kind: OutcomeStarted, URL: ep.URL(), PID: pid}, runErr
}

// detach starts the background child and records its PID.
func (o *Orchestrator) detach(ep Endpoint) (int, error) {
	if o.cfg.ChildArgs == nil {
		return 0, errors.New("daemon mode requires child arguments")
	}

	daemon := NewDaemonizer(o.cfg.ChildArgs(ep))
	pid, err := daemon.Detach(o.store.Dir().LogPath())
	if err != nil {
		return 0, err
	}

	if err := o.store.WritePID(pid); err != nil {
		return 0, err
	}
	logger.Info("daemon detached",
		logger.KeyApp, o.cfg.App,
		logger.KeyPID, pid,
		logger.KeyPath, o.store.Dir().LogPath())
	return pid, nil
}

// openBrowser fires the launcher unless suppressed.
func (o *Orchestrator) openBrowser(url string) {
	if o.cfg.SkipLaunch || o.launch == nil {
		return
	}
	if err := o.launch.Open(url); err != nil {
		logger.Warn("failed to open browser",
			logger.KeyURL, url,
			logger.KeyError, err)
	}
}

// Kill reads the persisted PID and sends the termination signal to
// that process. A missing PID file is reported, not fatal.
func (o *Orchestrator) Kill(force bool) error {
	pid, ok := o.store.ReadPID()
	if !ok {
		logger.Warn("no PID file found, nothing to stop",
			logger.KeyApp, o.cfg.App,
			logger.KeyPath, o.store.Dir().PIDPath())
		return nil
	}

	err := terminate(pid, force)
	if errors.Is(err, os.ErrProcessDone) {
		logger.Info("instance already stopped", logger.KeyPID, pid)
		return o.store.DeletePID()
	}
	if err != nil {
		return err
	}

	logger.Info("termination signal sent", logger.KeyPID, pid)
	return nil
}

// Status describes the persisted instance record.
type Status struct {
	App      string    `json:"app" yaml:"app"`
	Running  bool      `json:"running" yaml:"running"`
	PID      int       `json:"pid,omitempty" yaml:"pid,omitempty"`
	URL      string    `json:"url,omitempty" yaml:"url,omitempty"`
	StateDir string    `json:"state_dir" yaml:"state_dir"`
	Since    time.Time `json:"since,omitempty" yaml:"since,omitempty"`
}

// Status reports running/not-running plus PID and URL, purely from
// the persisted state. It performs no liveness probing; a partial
// record (one file missing) counts as not running.
func (o *Orchestrator) Status() Status {
	st := Status{
		App:      o.cfg.App,
		StateDir: o.store.Dir().Dir(),
	}

	pid, okPID := o.store.ReadPID()
	url, okURL := o.store.ReadURL()
	if okPID {
		st.PID = pid
	}
	if okURL {
		st.URL = url
	}
	st.Running = okPID && okURL

	if st.Running {
		if info, err := os.Stat(o.store.Dir().PIDPath()); err == nil {
			st.Since = info.ModTime()
		}
	}

	return st
}
