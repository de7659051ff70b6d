// ============================================================================
// UnnamedEngine CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra-based command line interface for running the engine and
//          exercising the Networking specialization.
//
// Command Structure:
//   engine                      # Root command
//   ├── run                     # Start the engine and worker pool
//   │   └── --config, -c        # Specify config file
//   └── ping                    # One-shot gRPC health check specialization
//       ├── --addr
//       └── --service
//
// run Command:
//   1. Load config file (or built-in defaults)
//   2. Build the worker pool and engine
//   3. Start the Prometheus metrics HTTP server, if enabled
//   4. Call Engine.Run, then drain events on a fixed tick until signaled
//   5. Gracefully call Engine.Shutdown and join every worker
//
// Signal Handling:
//   run captures SIGINT/SIGTERM and performs a graceful shutdown:
//   stop the drain loop, shut down the engine, terminate the pool.
//
// ============================================================================

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZotyDev/UnnamedEngine-Code/internal/config"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/engine"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/metrics"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/network"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/worker"
	"github.com/ZotyDev/UnnamedEngine-Code/pkg/types"
)

var log = slog.Default()

var configFile string

// BuildCommand assembles the root Cobra command and its subcommands.
func BuildCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "engine",
		Short:   "UnnamedEngine: a worker-pool and event-bus application core",
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (defaults built in if omitted)")

	rootCmd.AddCommand(buildRunCommand())
	rootCmd.AddCommand(buildPingCommand())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

func buildRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the engine and worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine()
		},
	}
	return cmd
}

func runEngine() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Info("starting engine", "worker_count", cfg.Pool.WorkerCount)

	pool := worker.NewPool(cfg.Pool.WorkerCount)
	eng := engine.New(pool)

	collector := metrics.NewCollector()
	collector.SetPoolSize(pool.Len())
	pool.SetCollector(collector)
	eng.SetCollector(collector)

	if cfg.Metrics.Enabled {
		go func() {
			log.Info("starting metrics server", "port", cfg.Metrics.Port)
			if err := metrics.StartServer(cfg.Metrics.Port); err != nil {
				log.Error("metrics server error", "error", err)
			}
		}()
	}

	if err := eng.Run(); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

runLoop:
	for {
		select {
		case <-sigChan:
			log.Info("received shutdown signal, stopping gracefully")
			break runLoop
		case <-ticker.C:
			eng.Step()
			for {
				evt, ok := eng.RequireEvent()
				if !ok {
					break
				}
				collector.RecordEventDrained()
				log.Debug("drained event", "event", evt.String())
			}
		}
	}

	if err := eng.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down engine: %w", err)
	}

	pool.TerminateAll()
	log.Info("engine stopped, goodbye")
	return nil
}

func buildPingCommand() *cobra.Command {
	var addr string
	var service string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Run a one-shot networking specialization health check",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags left unset fall back to the config's network section.
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Network.HealthCheckAddr
			}
			if !cmd.Flags().Changed("service") {
				service = cfg.Network.HealthCheckService
			}
			return pingOnce(addr, service)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:50051", "address of the target gRPC service")
	cmd.Flags().StringVar(&service, "service", "", "service name to health check (empty means the server's default)")

	return cmd
}

func pingOnce(addr string, service string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool := worker.NewPool(cfg.Pool.WorkerCount)
	defer pool.TerminateAll()

	result := make(chan network.CheckResult, 1)
	job := network.HealthCheckJob(context.Background(), addr, service, result)

	if err := pool.Send(worker.SpecializeInstruction(types.NetworkingKind, job)); err != nil {
		return fmt.Errorf("failed to dispatch health check: %w", err)
	}

	select {
	case r := <-result:
		if r.Err != nil {
			return fmt.Errorf("health check failed: %w", r.Err)
		}
		fmt.Printf("health check for %s: %s\n", addr, r.Status.String())
		return nil
	case <-time.After(10 * time.Second):
		return fmt.Errorf("health check timed out")
	}
}
