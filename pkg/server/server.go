// Package server provides the HTTP server capability the lifecycle
// core hands the hosted application to. It wraps net/http with
// synchronous binding, a done channel for the serve result, and both
// graceful and immediate stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/portside-dev/portside/pkg/lifecycle"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Server hosts an http.Handler on a fixed endpoint.
type Server struct {
	http     *http.Server
	listener net.Listener
	done     chan error
	stopOnce sync.Once
}

// New creates a Server for the given handler and endpoint. Call
// Start to bind and begin serving.
func New(handler http.Handler, host string, port int) *Server {
	return &Server{
		http: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      handler,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		done: make(chan error, 1),
	}
}

// Start binds the listener and serves in the background. Bind errors
// are returned synchronously; serve errors arrive on Done.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.http.Addr, err)
	}
	s.listener = ln

	go func() {
		err := s.http.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()

	return nil
}

// Addr returns the bound address. Valid after Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.http.Addr
}

// Done yields the serve result once the server has stopped.
func (s *Server) Done() <-chan error {
	return s.done
}

// Stop gracefully shuts the server down, letting in-flight requests
// finish within the context's deadline.
func (s *Server) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		err = s.http.Shutdown(ctx)
	})
	return err
}

// StopNow closes the server immediately, dropping in-flight
// requests.
func (s *Server) StopNow() error {
	var err error
	s.stopOnce.Do(func() {
		err = s.http.Close()
	})
	return err
}

// Runner adapts a handler into the lifecycle's server capability.
type Runner struct {
	Handler http.Handler
}

// Run binds the handler to host:port and returns the running handle.
func (r Runner) Run(host string, port int) (lifecycle.ServerHandle, error) {
	srv := New(r.Handler, host, port)
	if err := srv.Start(); err != nil {
		return nil, err
	}
	return srv, nil
}
