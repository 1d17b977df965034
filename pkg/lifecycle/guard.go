package lifecycle

import (
	"github.com/portside-dev/portside/internal/logger"
)

// Guard detects an already-running instance of the same named
// application before a new one touches any state.
type Guard struct {
	store  *Store
	prober Prober
}

// NewGuard creates a Guard over the given store and prober.
func NewGuard(store *Store, prober Prober) *Guard {
	return &Guard{store: store, prober: prober}
}

// DetectRunning returns the recorded URL when a live instance already
// owns it: both PID and URL files must be present and the URL must
// have a live listener. A recorded URL with no listener is stale
// state left by a dead process; it is treated as not-running and the
// new instance proceeds to overwrite it.
func (g *Guard) DetectRunning() (string, bool) {
	if _, ok := g.store.ReadPID(); !ok {
		return "", false
	}
	url, ok := g.store.ReadURL()
	if !ok {
		return "", false
	}

	if g.prober.IsFree(url) {
		logger.Debug("stale instance record, proceeding",
			logger.KeyURL, url,
			logger.KeyStateDir, g.store.Dir().Dir())
		return "", false
	}

	return url, true
}
