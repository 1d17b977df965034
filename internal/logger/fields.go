package logger

// Standard field keys for structured logging. Use these keys
// consistently across log statements so daemon logs stay greppable.
const (
	KeyApp      = "app"       // application name owning the state directory
	KeyPID      = "pid"       // process id of the managed instance
	KeyPort     = "port"      // listen port
	KeyHost     = "host"      // listen host
	KeyURL      = "url"       // full listen URL (http://host:port)
	KeyStateDir = "state_dir" // per-application state directory
	KeyPath     = "path"      // file path (pid/url/log files)
	KeyError    = "error"     // error value
	KeySignal   = "signal"    // signal name delivered or relayed
	KeyDuration = "duration_ms"
)
