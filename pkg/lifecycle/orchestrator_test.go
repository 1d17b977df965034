package lifecycle

import (
	"context"
	"errors"
	"os"
	"testing"
)

type fakeHandle struct {
	done    chan error
	stopped bool
}

func newFakeHandle(exit error) *fakeHandle {
	done := make(chan error, 1)
	done <- exit
	return &fakeHandle{done: done}
}

func (f *fakeHandle) Stop(ctx context.Context) error {
	f.stopped = true
	return nil
}

func (f *fakeHandle) Done() <-chan error {
	return f.done
}

type fakeRunner struct {
	host   string
	port   int
	calls  int
	err    error
	handle *fakeHandle
}

func (f *fakeRunner) Run(host string, port int) (ServerHandle, error) {
	f.calls++
	f.host = host
	f.port = port
	if f.err != nil {
		return nil, f.err
	}
	if f.handle == nil {
		f.handle = newFakeHandle(nil)
	}
	return f.handle, nil
}

type fakeLauncher struct {
	opened []string
}

func (f *fakeLauncher) Open(url string) error {
	f.opened = append(f.opened, url)
	return nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		App:       "testapp",
		StateRoot: t.TempDir(),
		Host:      "localhost",
		BasePort:  4567,
		// Foreground keeps the test inside a single process; the
		// server exits immediately through the fake handle.
		Foreground: true,
	}
}

func TestUp_ForegroundStart(t *testing.T) {
	runner := &fakeRunner{}
	launch := &fakeLauncher{}
	orch := New(testConfig(t), runner, launch,
		WithProber(&fakeProber{occupied: map[string]bool{}}))

	out, err := orch.Up(context.Background())
	if err != nil {
		t.Fatalf("Up failed: %v", err)
	}

	if out.Kind != OutcomeStarted {
		t.Errorf("expected OutcomeStarted, got %v", out.Kind)
	}
	if out.URL != "http://localhost:4567" {
		t.Errorf("unexpected URL %q", out.URL)
	}
	if out.PID != os.Getpid() {
		t.Errorf("expected own PID %d, got %d", os.Getpid(), out.PID)
	}
	if out.Detached {
		t.Error("foreground outcome marked detached")
	}

	if runner.calls != 1 {
		t.Errorf("expected one runner call, got %d", runner.calls)
	}
	if runner.host != "localhost" || runner.port != 4567 {
		t.Errorf("runner bound to %s:%d", runner.host, runner.port)
	}

	// URL stays persisted; the PID file is removed on shutdown.
	url, ok := orch.Store().ReadURL()
	if !ok || url != "http://localhost:4567" {
		t.Errorf("persisted URL = %q (present=%v)", url, ok)
	}
	if _, ok := orch.Store().ReadPID(); ok {
		t.Error("PID file still present after server exit")
	}

	if len(launch.opened) != 1 || launch.opened[0] != "http://localhost:4567" {
		t.Errorf("launcher calls = %v", launch.opened)
	}
}

func TestUp_ExplicitPort(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = 3000
	runner := &fakeRunner{}
	orch := New(cfg, runner, nil,
		WithProber(&fakeProber{occupied: map[string]bool{}}))

	out, err := orch.Up(context.Background())
	if err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if out.URL != "http://localhost:3000" {
		t.Errorf("unexpected URL %q", out.URL)
	}
	if runner.port != 3000 {
		t.Errorf("runner bound to port %d", runner.port)
	}
}

func TestUp_DelegatesToRunningInstance(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{}
	launch := &fakeLauncher{}
	orch := New(cfg, runner, launch,
		WithProber(&fakeProber{occupied: map[string]bool{
			"http://localhost:4567": true,
		}}))

	if err := orch.Store().Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := orch.Store().WritePID(4242); err != nil {
		t.Fatalf("WritePID: %v", err)
	}
	if err := orch.Store().WriteURL("http://localhost:4567"); err != nil {
		t.Fatalf("WriteURL: %v", err)
	}

	out, err := orch.Up(context.Background())
	if err != nil {
		t.Fatalf("Up failed: %v", err)
	}

	if out.Kind != OutcomeDelegated {
		t.Errorf("expected OutcomeDelegated, got %v", out.Kind)
	}
	if out.URL != "http://localhost:4567" {
		t.Errorf("unexpected URL %q", out.URL)
	}
	if runner.calls != 0 {
		t.Error("runner invoked despite a live instance")
	}
	if len(launch.opened) != 1 || launch.opened[0] != "http://localhost:4567" {
		t.Errorf("launcher calls = %v", launch.opened)
	}

	// Delegation leaves the existing record untouched.
	pid, _ := orch.Store().ReadPID()
	if pid != 4242 {
		t.Errorf("existing PID record modified: %d", pid)
	}
}

func TestUp_SkipLaunch(t *testing.T) {
	cfg := testConfig(t)
	cfg.SkipLaunch = true
	launch := &fakeLauncher{}
	orch := New(cfg, &fakeRunner{}, launch,
		WithProber(&fakeProber{occupied: map[string]bool{}}))

	if _, err := orch.Up(context.Background()); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if len(launch.opened) != 0 {
		t.Errorf("launcher called despite SkipLaunch: %v", launch.opened)
	}
}

func TestUp_ServerStartupFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("bind failed")}
	orch := New(testConfig(t), runner, nil,
		WithProber(&fakeProber{occupied: map[string]bool{}}))

	_, err := orch.Up(context.Background())
	if err == nil {
		t.Fatal("expected startup error")
	}
	if _, ok := orch.Store().ReadPID(); ok {
		t.Error("PID file left behind after failed startup")
	}
}

func TestUp_DaemonModeRequiresChildArgs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Foreground = false
	orch := New(cfg, &fakeRunner{}, nil,
		WithProber(&fakeProber{occupied: map[string]bool{}}))

	if _, err := orch.Up(context.Background()); err == nil {
		t.Fatal("expected error without child arguments")
	}
}

func TestKill_NoPIDFile(t *testing.T) {
	orch := New(testConfig(t), nil, nil,
		WithProber(&fakeProber{occupied: map[string]bool{}}))

	if err := orch.Kill(false); err != nil {
		t.Errorf("Kill with no PID file should be a no-op, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	orch := New(testConfig(t), nil, nil,
		WithProber(&fakeProber{occupied: map[string]bool{}}))
	store := orch.Store()
	if err := store.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	st := orch.Status()
	if st.Running {
		t.Error("empty state reported running")
	}
	if st.App != "testapp" {
		t.Errorf("App = %q", st.App)
	}

	if err := store.WriteURL("http://localhost:4567"); err != nil {
		t.Fatalf("WriteURL: %v", err)
	}
	st = orch.Status()
	if st.Running {
		t.Error("partial record reported running")
	}
	if st.URL != "http://localhost:4567" {
		t.Errorf("URL = %q", st.URL)
	}

	if err := store.WritePID(4242); err != nil {
		t.Fatalf("WritePID: %v", err)
	}
	st = orch.Status()
	if !st.Running {
		t.Error("complete record reported stopped")
	}
	if st.PID != 4242 {
		t.Errorf("PID = %d", st.PID)
	}
	if st.Since.IsZero() {
		t.Error("Since not populated for a running record")
	}
}
