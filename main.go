// Quantum-State-Visualizer simulation service: parses OpenQASM 2.0, routes
// each circuit to a statevector, exact-density or trajectory pipeline, and
// reports per-qubit Bloch vectors, purities and reduced density matrices.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/shasank0001/Quantum-State-Visualizer/pkg/config"
	"github.com/shasank0001/Quantum-State-Visualizer/qsim"
)

const version = "1.0.0"

func main() {
	var (
		configPath  = flag.String("config", "", "path to TOML configuration file")
		listen      = flag.String("listen", "", "listen address (overrides config)")
		verbosity   = flag.String("verbosity", "", "log level: debug, info, warn, error (overrides config)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("quantum-state-visualizer %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	if *verbosity != "" {
		cfg.Logging.Level = *verbosity
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Logging.Level)
	log.Info("starting quantum-state-visualizer", "version", version,
		"listen", cfg.Server.Listen, "workers", cfg.Simulation.Workers,
		"timeout", cfg.Simulation.TimeoutSeconds)

	orch := qsim.NewOrchestrator(qsim.Options{
		Timeout:      time.Duration(cfg.Simulation.TimeoutSeconds) * time.Second,
		Workers:      cfg.Simulation.Workers,
		DefaultShots: cfg.Simulation.DefaultShots,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := newServer(orch)
	if err := srv.serve(ctx,
		cfg.Server.Listen,
		time.Duration(cfg.Server.ReadTimeout)*time.Second,
		time.Duration(cfg.Server.WriteTimeout)*time.Second,
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
	log.Info("stopped")
}

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, false)))
}
