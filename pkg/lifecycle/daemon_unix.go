//go:build !windows

package lifecycle

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Detach starts the detached child process and returns its PID. The
// child runs in its own session with stdout and stderr appended to
// the log file, so it survives the launching shell exiting. The
// transition is one-way: once the child is started the parent is
// expected to exit without retrying.
func (d *Daemonizer) Detach(logPath string) (int, error) {
	executable, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to get executable path: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}

	cmd := exec.Command(executable, d.Args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Dir = "/"
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return 0, fmt.Errorf("failed to start daemon: %w", err)
	}

	_ = logFile.Close()

	return cmd.Process.Pid, nil
}

// terminate sends the termination signal used by Kill.
func terminate(pid int, force bool) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}

	sig := syscall.SIGTERM
	if force {
		sig = syscall.SIGKILL
	}

	if err := process.Signal(sig); err != nil {
		// ESRCH means the recorded PID no longer exists.
		if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return fmt.Errorf("failed to signal process %d: %w", pid, err)
	}
	return nil
}
