// ============================================================================
// UnnamedEngine - Main Entry Point
// ============================================================================
//
// File: cmd/engine/main.go
// Purpose: Application entry point and CLI initialization
//
// Version Injection:
//   Variables injected at build time via -ldflags:
//   go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
//
// Usage:
//   ./engine --help       # Show help
//   ./engine run          # Start the engine and worker pool
//   ./engine ping         # One-shot networking specialization health check
//
// ============================================================================

package main

import (
	"fmt"
	"os"

	"github.com/ZotyDev/UnnamedEngine-Code/internal/cli"
)

var (
	version = "1.0.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	rootCmd := cli.BuildCommand()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
