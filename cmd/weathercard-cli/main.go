package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"weathercard/bootstrap"
	"weathercard/controller"
	"weathercard/memory"
	"weathercard/view"
)

const usage = `Type a location and press Enter to look it up.
An empty line searches the current query (for example a remembered one).
  :remember [location]  remember the current (or given) location
  :forget               untick remember; the stored location is kept
  :quit                 exit
`

func main() {
	configFile := flag.String("config", "config.json", "Path to configuration file")
	dbPath := flag.String("db", defaultDBPath(), "SQLite database holding the remembered location")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	cacheTTL := flag.Duration("cache-ttl", 0, "Reuse successful lookups for this long")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*configFile, *dbPath, *enableRateLimiting, *cacheTTL, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, dbPath string, rateLimit bool, cacheTTL time.Duration, logger *slog.Logger) error {
	config, err := bootstrap.LoadConfig(configFile)
	if err != nil {
		return err
	}
	loc, err := config.Location()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dbPath), err)
	}
	mem, err := memory.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer mem.Close()

	provider, _ := bootstrap.Provider(config, bootstrap.Options{RateLimit: rateLimit, CacheTTL: cacheTTL})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	term := &terminal{out: os.Stdout, errOut: os.Stderr}
	ctrl := controller.New(provider, mem, term, term, logger)
	defer ctrl.Close()

	ctrl.Mount(ctx)
	fmt.Fprint(term.out, usage)
	if snap := ctrl.Snapshot(); snap.Remember {
		fmt.Fprintf(term.out, "Remembered location: %s (press Enter to search)\n", snap.Query)
	}

	return loop(ctx, os.Stdin, ctrl, term, loc)
}

func loop(ctx context.Context, in io.Reader, ctrl *controller.Controller, term *terminal, loc *time.Location) error {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errs <- scanner.Err()
		close(lines)
	}()

	for {
		term.prompt(ctrl.Snapshot())

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return <-errs
			}
			line = l
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch cmd {
		case ":quit", ":q":
			return nil
		case ":help":
			fmt.Fprint(term.out, usage)
		case ":remember":
			if arg = strings.TrimSpace(arg); arg != "" {
				ctrl.Type(arg)
			}
			ctrl.ToggleRemember(ctx, true)
		case ":forget":
			ctrl.ToggleRemember(ctx, false)
		default:
			if line != "" {
				ctrl.Type(line)
			}
			search(ctx, ctrl, term, loc)
		}
	}
}

func search(ctx context.Context, ctrl *controller.Controller, term *terminal, loc *time.Location) {
	pending, ok := ctrl.Commit(ctx)
	if !ok {
		return
	}
	applied, err := pending.Wait(ctx)
	if err != nil || !applied {
		return
	}

	snap := ctrl.Snapshot()
	if snap.State != controller.Displaying {
		return
	}
	card, ok := view.NewCard(snap.Record, loc)
	if err := view.RenderText(term.out, card, ok); err != nil {
		slog.Warn("failed to render card", "error", err)
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "weathercard", "weathercard.db")
}
