package main

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	middlewarestd "github.com/slok/go-http-metrics/middleware/std"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// statusWriter remembers the status code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

type logger struct {
	http.Handler
}

func (l *logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	l.Handler.ServeHTTP(sw, r)
	if r.URL.Path == "/ready" {
		return
	}
	slog.InfoContext(r.Context(), "request",
		"method", r.Method,
		"url", r.URL.Path,
		"query", r.URL.Query(),
		"status", sw.status,
		"request_id", RequestID(r.Context()),
		"duration", time.Since(start))
}

type recoverer struct {
	http.Handler
}

func (r *recoverer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			slog.ErrorContext(req.Context(), "panic recovered", "error", err, "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()
	r.Handler.ServeHTTP(w, req)
}

// requestID echoes a caller supplied X-Request-ID or mints one.
type requestID struct {
	http.Handler
}

func (r *requestID) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id := req.Header.Get(requestIDHeader)
	if id == "" || len(id) > 128 {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	ctx := context.WithValue(req.Context(), requestIDKey{}, id)
	r.Handler.ServeHTTP(w, req.WithContext(ctx))
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func WithMiddleware(h http.Handler, reg prometheus.Registerer) http.Handler {
	mdlw := middleware.New(middleware.Config{
		Recorder: metrics.NewRecorder(metrics.Config{Registry: reg}),
	})
	h = middlewarestd.Handler("", mdlw, h)
	return &requestID{
		&logger{
			&recoverer{
				h,
			},
		},
	}
}
