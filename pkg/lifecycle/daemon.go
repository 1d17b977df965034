package lifecycle

// Daemonizer detaches the managed server into the background by
// re-executing the current binary in its own session with standard
// streams redirected to the log file. The platform implementation is
// selected at build time; Windows has no session detach and only
// supports foreground mode.
type Daemonizer struct {
	// Args are the arguments the detached child is started with. The
	// caller builds them so the child re-enters in foreground mode on
	// the already-chosen port with browser launch suppressed.
	Args []string
}

// NewDaemonizer creates a Daemonizer that will re-exec the current
// binary with the given arguments.
func NewDaemonizer(args []string) *Daemonizer {
	return &Daemonizer{Args: args}
}
