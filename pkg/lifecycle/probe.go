package lifecycle

import (
	"errors"
	"net"
	"net/url"
	"syscall"
	"time"
)

// DefaultProbeTimeout bounds a single occupancy probe so startup
// never hangs on an unresponsive endpoint.
const DefaultProbeTimeout = 500 * time.Millisecond

// Prober reports whether a URL currently has a live listener. It is
// the interface consumed by InstanceGuard and the port allocator;
// tests substitute fakes.
type Prober interface {
	// IsFree reports true when nothing is listening at the URL.
	IsFree(rawURL string) bool
}

// TCPProber probes occupancy by attempting a TCP connection. A
// refused connection means the port is free; an accepted connection
// means occupied. This is a liveness probe only, the remote side is
// never expected to speak HTTP.
type TCPProber struct {
	// Timeout bounds each dial attempt. Zero means DefaultProbeTimeout.
	Timeout time.Duration
}

// NewTCPProber creates a TCPProber with the default timeout.
func NewTCPProber() *TCPProber {
	return &TCPProber{Timeout: DefaultProbeTimeout}
}

// IsFree reports whether the URL's host:port has no live listener.
// Only connection-refused is taken as proof that the port is free;
// timeouts and other dial failures are treated as occupied since a
// listener may exist but be unreachable within the probe window.
func (p *TCPProber) IsFree(rawURL string) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	addr, err := hostPort(rawURL)
	if err != nil {
		return false
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err == nil {
		_ = conn.Close()
		return false
	}

	return errors.Is(err, syscall.ECONNREFUSED)
}

// hostPort extracts "host:port" from a URL string. Bare "host:port"
// input is accepted as well, since probes may run against endpoints
// that were never serialized as URLs.
func hostPort(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err == nil && u.Host != "" {
		return u.Host, nil
	}
	if _, _, splitErr := net.SplitHostPort(rawURL); splitErr == nil {
		return rawURL, nil
	}
	if err != nil {
		return "", err
	}
	return "", errors.New("url has no host")
}
