package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/portside-dev/portside/internal/logger"
)

// stopTimeout bounds the graceful stop request issued by the relay.
// The server's own shutdown behavior provides the real bound; this is
// a backstop so signal handling never blocks indefinitely.
const stopTimeout = 30 * time.Second

// ServerHandle is the running server as seen by the signal relay.
type ServerHandle interface {
	// Stop requests a graceful stop.
	Stop(ctx context.Context) error
	// Done yields the server's exit error once it has stopped.
	Done() <-chan error
}

// ImmediateStopper is implemented by servers that support a hard,
// non-graceful stop. The relay prefers it when present.
type ImmediateStopper interface {
	StopNow() error
}

// Relay installs the termination-signal handler for a running
// instance. On signal delivery it stops the server and removes the
// persisted PID file. The handler runs exactly once per delivery and
// never re-raises.
type Relay struct {
	store *Store
	once  sync.Once
}

// NewRelay creates a Relay that cleans up through the given store.
func NewRelay(store *Store) *Relay {
	return &Relay{store: store}
}

// Listen blocks until a termination signal arrives, the context is
// canceled, or the server exits on its own. In every case the PID
// file is deleted before returning. The returned error is the
// server's exit error, if any.
func (r *Relay) Listen(ctx context.Context, srv ServerHandle) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var err error
	select {
	case sig := <-sigCh:
		signal.Stop(sigCh)
		logger.Info("shutdown signal received", logger.KeySignal, sig.String())
		r.stop(srv)
		err = <-srv.Done()

	case <-ctx.Done():
		r.stop(srv)
		err = <-srv.Done()

	case err = <-srv.Done():
	}

	if derr := r.store.DeletePID(); derr != nil {
		logger.Warn("failed to remove PID file on shutdown",
			logger.KeyError, derr)
	}

	return err
}

// stop requests the server to stop. An immediate stop is preferred
// when the handle supports one, matching how a local app host is
// used: nothing in flight is worth delaying shutdown for. Servers
// without one get a graceful stop bounded by stopTimeout.
func (r *Relay) stop(srv ServerHandle) {
	r.once.Do(func() {
		if hard, ok := srv.(ImmediateStopper); ok {
			if err := hard.StopNow(); err != nil {
				logger.Warn("immediate stop failed", logger.KeyError, err)
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			logger.Warn("graceful stop failed", logger.KeyError, err)
		}
	})
}
