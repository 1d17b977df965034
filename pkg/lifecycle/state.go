// Package lifecycle manages the lifecycle of a single long-running
// local server instance: duplicate detection, port allocation,
// daemonization, persisted PID/URL state and signal-driven shutdown.
//
// One application name maps to one state directory and at most one
// live instance. All components take an explicit StateDir so tests
// can isolate themselves with temporary directories.
package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// StateDir locates the per-application state directory and its
// derived file paths.
type StateDir struct {
	Root string // root state directory, e.g. $XDG_STATE_HOME
	App  string // application name
}

// Dir returns the per-application directory <root>/<app>.
func (d StateDir) Dir() string {
	return filepath.Join(d.Root, d.App)
}

// PIDPath returns the path of the PID file.
func (d StateDir) PIDPath() string {
	return filepath.Join(d.Dir(), d.App+".pid")
}

// URLPath returns the path of the URL file.
func (d StateDir) URLPath() string {
	return filepath.Join(d.Dir(), d.App+".url")
}

// LogPath returns the path of the daemon log file.
func (d StateDir) LogPath() string {
	return filepath.Join(d.Dir(), d.App+".log")
}

// LockPath returns the path of the advisory startup lock file.
func (d StateDir) LockPath() string {
	return filepath.Join(d.Dir(), d.App+".lock")
}

// Store reads and writes the two persisted facts about a running
// instance: its process id and its listen URL. Both are plain text
// files under the state directory.
type Store struct {
	dir StateDir
}

// NewStore creates a Store for the given state directory. The
// directory is not created until Ensure is called.
func NewStore(dir StateDir) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's state directory.
func (s *Store) Dir() StateDir {
	return s.dir
}

// Ensure creates the state directory if it does not exist.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", s.dir.Dir(), err)
	}
	return nil
}

// ReadPID returns the persisted process id, or false if the PID file
// is absent or unparseable.
func (s *Store) ReadPID() (int, bool) {
	data, err := os.ReadFile(s.dir.PIDPath())
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// ReadURL returns the persisted listen URL, or false if the URL file
// is absent or empty.
func (s *Store) ReadURL() (string, bool) {
	data, err := os.ReadFile(s.dir.URLPath())
	if err != nil {
		return "", false
	}
	url := strings.TrimSpace(string(data))
	if url == "" {
		return "", false
	}
	return url, true
}

// WritePID truncates and replaces the PID file.
func (s *Store) WritePID(pid int) error {
	if err := os.WriteFile(s.dir.PIDPath(), []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// WriteURL truncates and replaces the URL file.
func (s *Store) WriteURL(url string) error {
	if err := os.WriteFile(s.dir.URLPath(), []byte(url), 0644); err != nil {
		return fmt.Errorf("failed to write URL file: %w", err)
	}
	return nil
}

// DeletePID removes the PID file. Removal of an already-absent file
// is not an error; shutdown paths may run this more than once.
func (s *Store) DeletePID() error {
	err := os.Remove(s.dir.PIDPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}
