package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"souvenirspartan/internal/config"
	"souvenirspartan/internal/telemetry"
)

func main() {
	var addr string
	var help bool

	flag.StringVar(&addr, "addr", "", "Address to bind (overrides ADDR/PORT)")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	shutdown, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to set up telemetry: %v", err)
	}

	runErr := runServer(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.Error("telemetry shutdown error", "error", err)
	}
	if runErr != nil {
		slog.Error("server error", "error", runErr)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Souvenir Spartan - storefront and product API")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  storefront [-addr :3000]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -addr       Address to bind (default from ADDR or PORT, :3000)")
	fmt.Println("  -help, -h   Show this help message")
	fmt.Println()
	fmt.Println("Product sources are chosen per category from RAPIDAPI_KEY, AMAZON_* and")
	fmt.Println("WALMART_CATEGORIES in the environment or .env; see /api/sources.")
}
