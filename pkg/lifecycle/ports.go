package lifecycle

import (
	"errors"
	"fmt"

	"github.com/portside-dev/portside/internal/logger"
)

// maxPort is the upper bound of the auto-allocation search. The
// original behavior searched upward without a cap; the search is
// bounded to the end of the port range instead of spinning forever.
const maxPort = 65535

// ErrPortExhausted is returned when the upward search from the base
// port finds no free port before the end of the port range.
var ErrPortExhausted = errors.New("no free port found")

// Endpoint is the host and port an instance listens on. It is chosen
// once per process lifetime and immutable thereafter.
type Endpoint struct {
	Host string
	Port int
}

// URL renders the endpoint as the persisted URL string.
func (e Endpoint) URL() string {
	return fmt.Sprintf("http://%s:%d", e.Host, e.Port)
}

// Allocator picks the listening port for a new instance. Probing and
// allocation happen in the parent process before any daemonization.
type Allocator struct {
	prober Prober
}

// NewAllocator creates an Allocator using the given prober.
func NewAllocator(prober Prober) *Allocator {
	return &Allocator{prober: prober}
}

// Allocate picks a port on host. A requested port (> 0) is always
// returned unchanged: if it is occupied a warning is logged and the
// bind failure, if any, surfaces later from the server. With no
// requested port the search starts at base and increments until a
// free port is found, failing with ErrPortExhausted past the end of
// the port range.
func (a *Allocator) Allocate(requested, base int, host string) (int, error) {
	if requested > 0 {
		if !a.prober.IsFree(Endpoint{Host: host, Port: requested}.URL()) {
			logger.Warn("requested port is already in use",
				logger.KeyHost, host,
				logger.KeyPort, requested)
		}
		return requested, nil
	}

	for port := base; port <= maxPort; port++ {
		if a.prober.IsFree(Endpoint{Host: host, Port: port}.URL()) {
			return port, nil
		}
	}

	return 0, fmt.Errorf("%w above base port %d", ErrPortExhausted, base)
}
