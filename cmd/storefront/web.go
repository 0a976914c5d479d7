package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"souvenirspartan/internal/config"
	"souvenirspartan/internal/products"
	"souvenirspartan/internal/sitemap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func runServer(cfg *config.Config) error {
	router, store, err := products.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create product router: %w", err)
	}
	slog.Info("product sources", "routing", router.Describe())

	ro := &readyOnce{}
	ro.Add(store)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newHandler(cfg, router, ro, prometheus.NewRegistry()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Serving Souvenir Spartan", "address", cfg.Server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)
		return gracefulShutdown(server)
	}
}

// newHandler assembles the storefront: product API, readiness, metrics and the static site.
func newHandler(cfg *config.Config, router *products.Router, ready http.Handler, reg *prometheus.Registry) http.Handler {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mux := http.NewServeMux()
	products.NewHandler(router).Register(mux)
	sitemap.New(cfg.Server.SiteURL).Register(mux)
	mux.Handle("/ready", ready)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// serves data/products/<category>.json too, which the browser falls back to
	mux.Handle("/", http.FileServer(http.Dir(cfg.Server.PublicDir)))

	return WithMiddleware(products.WithCORS(mux), reg)
}

func gracefulShutdown(svr *http.Server) error {
	// Give outstanding requests 25 seconds to complete (kubernetes has 30 second grace period)
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}
	slog.Info("Server stopped")
	return nil
}
