// ============================================================================
// UnnamedEngine Networking Specialization - gRPC Health Checks
// ============================================================================
//
// Package: internal/network
// File: health.go
// Purpose: Provide the Job body used for the "Networking" worker
//          specialization: a gRPC health check against a remote service
//          using the standard grpc_health_v1 service, without requiring
//          any engine-specific .proto definitions.
//
// Usage:
//
//   job := network.HealthCheckJob(ctx, "localhost:50051", "", resultCh)
//   engine.Instruct(worker.SpecializeInstruction(types.NetworkingKind, job))
//
// ============================================================================

package network

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ZotyDev/UnnamedEngine-Code/internal/worker"
)

var log = slog.Default()

// CheckResult carries the outcome of a single health check attempt.
type CheckResult struct {
	Addr    string
	Service string
	Status  healthpb.HealthCheckResponse_ServingStatus
	Err     error
}

// HealthCheckJob builds a worker.Job that dials addr, asks the standard
// gRPC health service whether service is serving, and reports the
// outcome on result. The job is meant to run under a Networking
// specialization: it owns a dedicated worker for the duration of the
// dial and RPC, then releases it.
func HealthCheckJob(ctx context.Context, addr string, service string, result chan<- CheckResult) worker.Job {
	return func() {
		callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Error("failed to dial health check target", "addr", addr, "error", err)
			result <- CheckResult{Addr: addr, Service: service, Err: err}
			return
		}
		defer conn.Close()

		client := healthpb.NewHealthClient(conn)
		resp, err := client.Check(callCtx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			log.Error("health check RPC failed", "addr", addr, "error", err)
			result <- CheckResult{Addr: addr, Service: service, Err: err}
			return
		}

		log.Info("health check completed", "addr", addr, "status", resp.Status.String())
		result <- CheckResult{Addr: addr, Service: service, Status: resp.Status}
	}
}
