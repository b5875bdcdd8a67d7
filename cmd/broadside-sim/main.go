// cmd/broadside-sim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/opd-ai/go-broadside/pkg/config"
	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/invariant"
	"github.com/opd-ai/go-broadside/pkg/logging"
	"github.com/opd-ai/go-broadside/pkg/pool"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitViolations = 2
)

func main() {
	os.Exit(run())
}

// run plays the simulation and returns the process exit code. Deferred
// cleanup has finished by the time it returns.
func run() int {
	logger := logging.NewLogger()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	matches := flag.Int("matches", 10, "Number of matches to play")
	maxTicks := flag.Int("max-ticks", 10000, "Abandon a match after this many ticks")
	check := flag.Bool("check", false, "Check invariants after every tick")
	workers := flag.Int("workers", 1, "Number of matches played at once")
	statusAddr := flag.String("status-addr", "", "Serve invariant status of the running match on this address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			return exitFailure
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return exitOK
	}

	path := *configPath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		path = ""
	}
	gameConfig, err := config.LoadConfig(path)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		return exitFailure
	}

	sim := &simulator{
		config:   gameConfig,
		logger:   logger,
		maxTicks: *maxTicks,
		check:    *check,
	}

	workerPool := pool.New(ctx, pool.Options{Workers: *workers, Logger: logger})

	if *statusAddr != "" {
		var current atomic.Pointer[engine.Match]
		sim.started = current.Store
		checker := invariant.Standard(func() engine.State {
			if m := current.Load(); m != nil {
				return m.Snapshot()
			}
			return engine.State{}
		})
		checker.AddCheck(pool.NewPanicCheck(workerPool))

		server := startStatusServer(ctx, logger, *statusAddr, checker)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "Status server shutdown failed", err)
			}
		}()
	}

	var (
		mu     sync.Mutex
		total  summary
		failed atomic.Bool
	)
	base := gameConfig.Obstacles.Seed
	for i := 0; i < *matches; i++ {
		seed := base + int64(i)
		err := workerPool.Submit(fmt.Sprintf("match-%d", seed), func(ctx context.Context) {
			r, err := sim.run(ctx, seed)
			if errors.Is(err, context.Canceled) {
				return
			}
			if err != nil && !errors.Is(err, errViolation) {
				logger.Error(ctx, "Match failed", err, "seed", seed)
				failed.Store(true)
				return
			}

			mu.Lock()
			total.add(r)
			mu.Unlock()

			if len(r.Violations) > 0 {
				logger.Warn(ctx, "Invariant violated",
					"match_id", r.MatchID, "seed", r.Seed, "tick", r.Ticks, "failures", r.Violations)
			} else {
				logger.Info(ctx, "Match finished",
					"match_id", r.MatchID, "seed", r.Seed, "outcome", r.Outcome, "ticks", r.Ticks)
			}
		})
		if err != nil {
			logger.Info(ctx, "Simulation interrupted", "submitted", i)
			break
		}
	}

	if err := workerPool.Shutdown(context.Background()); err != nil {
		logger.Error(ctx, "Worker shutdown failed", err)
	}

	mu.Lock()
	defer mu.Unlock()
	logger.Info(ctx, "Simulation summary", "summary", total, "pool", workerPool.Stats())
	return exitCode(total, failed.Load())
}

func exitCode(total summary, failed bool) int {
	switch {
	case failed:
		return exitFailure
	case total.Violations > 0:
		return exitViolations
	default:
		return exitOK
	}
}

// startStatusServer serves checker on addr until the process exits.
func startStatusServer(ctx context.Context, logger *logging.Logger, addr string, checker *invariant.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/invariants", checker)

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting status server", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Status server failed", err)
		}
	}()
	return server
}
