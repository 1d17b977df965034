package lifecycle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateDir_Paths(t *testing.T) {
	dir := StateDir{Root: "/var/state", App: "myapp"}

	if got := dir.Dir(); got != filepath.Join("/var/state", "myapp") {
		t.Errorf("Dir() = %q", got)
	}
	if got := dir.PIDPath(); got != filepath.Join("/var/state", "myapp", "myapp.pid") {
		t.Errorf("PIDPath() = %q", got)
	}
	if got := dir.URLPath(); got != filepath.Join("/var/state", "myapp", "myapp.url") {
		t.Errorf("URLPath() = %q", got)
	}
	if got := dir.LogPath(); got != filepath.Join("/var/state", "myapp", "myapp.log") {
		t.Errorf("LogPath() = %q", got)
	}
}

func TestStore_Ensure(t *testing.T) {
	root := t.TempDir()
	store := NewStore(StateDir{Root: root, App: "testapp"})

	if err := store.Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "testapp"))
	if err != nil {
		t.Fatalf("state directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("state path is not a directory")
	}

	// Idempotent on an existing directory
	if err := store.Ensure(); err != nil {
		t.Errorf("second Ensure failed: %v", err)
	}
}

func TestStore_PIDRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok := store.ReadPID(); ok {
		t.Error("expected no PID before write")
	}

	if err := store.WritePID(12345); err != nil {
		t.Fatalf("WritePID failed: %v", err)
	}

	pid, ok := store.ReadPID()
	if !ok {
		t.Fatal("expected PID after write")
	}
	if pid != 12345 {
		t.Errorf("expected PID 12345, got %d", pid)
	}

	// Overwrite replaces, never appends
	if err := store.WritePID(999); err != nil {
		t.Fatalf("WritePID failed: %v", err)
	}
	pid, _ = store.ReadPID()
	if pid != 999 {
		t.Errorf("expected PID 999 after overwrite, got %d", pid)
	}
}

func TestStore_ReadPID_Garbage(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(store.Dir().PIDPath(), []byte("not-a-pid"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := store.ReadPID(); ok {
		t.Error("expected unparseable PID file to read as absent")
	}

	if err := os.WriteFile(store.Dir().PIDPath(), []byte("-4"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := store.ReadPID(); ok {
		t.Error("expected non-positive PID to read as absent")
	}
}

func TestStore_URLRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok := store.ReadURL(); ok {
		t.Error("expected no URL before write")
	}

	if err := store.WriteURL("http://0.0.0.0:4567"); err != nil {
		t.Fatalf("WriteURL failed: %v", err)
	}

	url, ok := store.ReadURL()
	if !ok {
		t.Fatal("expected URL after write")
	}
	if url != "http://0.0.0.0:4567" {
		t.Errorf("unexpected URL %q", url)
	}
}

func TestStore_DeletePID(t *testing.T) {
	store := newTestStore(t)

	if err := store.WritePID(42); err != nil {
		t.Fatalf("WritePID failed: %v", err)
	}
	if err := store.DeletePID(); err != nil {
		t.Fatalf("DeletePID failed: %v", err)
	}
	if _, ok := store.ReadPID(); ok {
		t.Error("PID still readable after delete")
	}

	// Deleting an absent file is fine; shutdown may run twice
	if err := store.DeletePID(); err != nil {
		t.Errorf("second DeletePID failed: %v", err)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(StateDir{Root: t.TempDir(), App: "testapp"})
	if err := store.Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	return store
}
