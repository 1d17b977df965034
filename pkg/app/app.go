// Package app is the hosted web application served by a managed
// instance. The lifecycle core treats it as an opaque handler; it
// exposes a landing page, a liveness endpoint and Prometheus
// metrics.
package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/portside-dev/portside/internal/logger"
)

// Config describes the hosted application.
type Config struct {
	Name        string
	Environment string
	Version     string
}

// HealthResponse is the JSON body of the /health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Data      struct {
		Service   string `json:"service"`
		StartedAt string `json:"started_at"`
		Uptime    string `json:"uptime"`
		UptimeSec int64  `json:"uptime_sec"`
	} `json:"data"`
}

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "portside",
		Subsystem: "app",
		Name:      "requests_total",
		Help:      "HTTP requests served by the hosted application.",
	},
	[]string{"path", "status"},
)

// NewHandler builds the application's HTTP handler.
func NewHandler(cfg Config) http.Handler {
	startedAt := time.Now()

	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(countRequests)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, landingPage, cfg.Name, cfg.Name, cfg.Environment, cfg.Version)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		resp := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		resp.Data.Service = cfg.Name
		resp.Data.StartedAt = startedAt.UTC().Format(time.RFC3339)
		resp.Data.Uptime = time.Since(startedAt).Round(time.Second).String()
		resp.Data.UptimeSec = int64(time.Since(startedAt).Seconds())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger logs each request through the structured logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		logger.Debug("request served",
			"method", req.Method,
			logger.KeyPath, req.URL.Path,
			"status", ww.Status(),
			logger.KeyDuration, float64(time.Since(start).Microseconds())/1000.0)
	})
}

// countRequests records per-path request counts.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		requestsTotal.WithLabelValues(req.URL.Path, fmt.Sprintf("%d", ww.Status())).Inc()
	})
}

const landingPage = `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
<h1>%s</h1>
<p>environment: %s · version: %s</p>
<p><a href="/health">health</a> · <a href="/metrics">metrics</a></p>
</body>
</html>
`
