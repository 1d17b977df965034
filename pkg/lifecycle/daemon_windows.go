//go:build windows

package lifecycle

import (
	"errors"
	"fmt"
	"os"
)

// Detach is not supported on Windows; run with foreground mode
// instead.
func (d *Daemonizer) Detach(logPath string) (int, error) {
	return 0, errors.New("daemon mode is not supported on Windows, use foreground mode")
}

// terminate stops the process. Windows has no POSIX signals, so the
// process is killed outright regardless of force.
func terminate(pid int, force bool) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return os.ErrProcessDone
		}
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}
	return nil
}
