package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

type Readyable interface {
	Ready(context.Context) error
}

// readyOnce reports ready once every check has passed a single time.
// Concurrent probes share one in-flight run of the checks.
type readyOnce struct {
	passed atomic.Bool
	group  singleflight.Group
	checks []Readyable
}

func (r *readyOnce) Add(c ...Readyable) {
	r.checks = append(r.checks, c...)
}

func (r *readyOnce) Ready(ctx context.Context) error {
	if r.passed.Load() {
		return nil
	}
	_, err, _ := r.group.Do("ready", func() (any, error) {
		for _, c := range r.checks {
			if err := c.Ready(ctx); err != nil {
				return nil, err
			}
		}
		r.passed.Store(true)
		return nil, nil
	})
	return err
}

func (r *readyOnce) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if err := r.Ready(req.Context()); err != nil {
		http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.ErrorContext(req.Context(), "failed to write readiness response", "error", err)
	}
}
