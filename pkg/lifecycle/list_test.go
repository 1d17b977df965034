package lifecycle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestList_MissingRoot(t *testing.T) {
	statuses, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(statuses) != 0 {
		t.Errorf("expected no statuses, got %d", len(statuses))
	}
}

func TestList(t *testing.T) {
	root := t.TempDir()

	running := NewStore(StateDir{Root: root, App: "alpha"})
	if err := running.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := running.WritePID(100); err != nil {
		t.Fatalf("WritePID: %v", err)
	}
	if err := running.WriteURL("http://localhost:4567"); err != nil {
		t.Fatalf("WriteURL: %v", err)
	}

	stopped := NewStore(StateDir{Root: root, App: "beta"})
	if err := stopped.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := stopped.WriteURL("http://localhost:4568"); err != nil {
		t.Fatalf("WriteURL: %v", err)
	}

	// Directory without instance files is not an application dir.
	if err := os.MkdirAll(filepath.Join(root, "unrelated"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	statuses, err := List(root)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}

	if statuses[0].App != "alpha" || statuses[1].App != "beta" {
		t.Errorf("unexpected order: %s, %s", statuses[0].App, statuses[1].App)
	}
	if !statuses[0].Running {
		t.Error("alpha should be running")
	}
	if statuses[0].PID != 100 {
		t.Errorf("alpha PID = %d", statuses[0].PID)
	}
	if statuses[1].Running {
		t.Error("beta should be stopped")
	}
	if statuses[1].URL != "http://localhost:4568" {
		t.Errorf("beta URL = %q", statuses[1].URL)
	}
}
