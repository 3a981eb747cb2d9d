package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weathercard/api"
	"weathercard/bootstrap"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	cacheTTL := flag.Duration("cache-ttl", 0, "Reuse successful lookups for this long (0 uses the config value)")
	flag.Parse()

	config, err := bootstrap.LoadConfig(*configFile)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	loc, err := config.Location()
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	provider, cached := bootstrap.Provider(config, bootstrap.Options{
		RateLimit: *enableRateLimiting,
		CacheTTL:  *cacheTTL,
	})

	server := api.NewServer(provider, loc, logger, *port)

	// Set up channels for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	// Periodically drop expired lookups
	if cached != nil {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if n := cached.Prune(); n > 0 {
						slog.Debug("pruned cached lookups", "count", n)
					}
				case <-done:
					return
				}
			}
		}()
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			shutdownChan <- syscall.SIGTERM
		}
	}()

	sig := <-shutdownChan
	slog.Info("shutting down", "signal", sig.String())
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}
