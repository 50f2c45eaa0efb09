package httpserver

import (
	"net/http"
	"time"
)

// Option adjusts the server built by New.
type Option func(*http.Server)

// WithWriteTimeout overrides the response write deadline. It should exceed the
// slowest handler timeout so timed-out requests still get their 503 body.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *http.Server) {
		s.WriteTimeout = d
	}
}

// New builds the analytics HTTP server. Aggregations over large portfolios
// can take a while, so the default write timeout is generous.
func New(addr string, handler http.Handler, opts ...Option) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}
