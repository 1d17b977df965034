// Package browser opens URLs in the user's default browser. Launch
// is fire-and-forget: the command is started, never waited on, and
// failures are returned for the caller to log.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher opens URLs with the platform's opener command.
type Launcher struct{}

// New creates a Launcher.
func New() *Launcher {
	return &Launcher{}
}

// Open launches the default browser at the given URL.
func (l *Launcher) Open(url string) error {
	args := openerArgs(runtime.GOOS, url)
	cmd := exec.Command(args[0], args[1:]...)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	// Reap the opener in the background so it never zombies.
	go func() { _ = cmd.Wait() }()

	return nil
}

// openerArgs returns the platform opener command line for a URL.
func openerArgs(goos, url string) []string {
	switch goos {
	case "darwin":
		return []string{"open", url}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	default:
		return []string{"xdg-open", url}
	}
}
