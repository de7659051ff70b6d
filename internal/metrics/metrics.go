// ============================================================================
// UnnamedEngine Metrics - Prometheus Monitoring
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Purpose: Collect and expose engine and worker-pool metrics for Prometheus.
//
// Metric Categories:
//
//   1. Job Counters - cumulative, monotonically increasing:
//      - engine_jobs_started_total / engine_jobs_completed_total
//      - engine_specialized_jobs_started_total / engine_specialized_jobs_completed_total
//      - engine_events_dispatched_total / engine_events_drained_total
//
//   2. Status Gauges - instantaneous values:
//      - engine_ready_queue_depth: events drained but not yet required
//      - engine_worker_pool_size: current worker count
//
// Prometheus Query Examples:
//
//   # Specialized jobs per minute
//   rate(engine_specialized_jobs_completed_total[1m])
//
//   # Event backlog
//   engine_ready_queue_depth
//
// HTTP Endpoint:
//   Exposed via /metrics, scraped by Prometheus. Default port 9090.
//
// ============================================================================

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector collects Prometheus metrics for the engine and worker pool.
type Collector struct {
	jobsStarted              prometheus.Counter
	jobsCompleted            prometheus.Counter
	specializedJobsStarted   prometheus.Counter
	specializedJobsCompleted prometheus.Counter
	eventsDispatched         prometheus.Counter
	eventsDrained            prometheus.Counter

	readyQueueDepth prometheus.Gauge
	workerPoolSize  prometheus.Gauge
}

// NewCollector creates a new metrics collector and registers every metric
// against the default Prometheus registerer.
func NewCollector() *Collector {
	c := &Collector{
		jobsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_jobs_started_total",
			Help: "Total number of plain Execute jobs started",
		}),
		jobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_jobs_completed_total",
			Help: "Total number of plain Execute jobs completed",
		}),
		specializedJobsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_specialized_jobs_started_total",
			Help: "Total number of Specialize jobs started",
		}),
		specializedJobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_specialized_jobs_completed_total",
			Help: "Total number of Specialize jobs completed",
		}),
		eventsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_events_dispatched_total",
			Help: "Total number of events sent through the event bus",
		}),
		eventsDrained: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_events_drained_total",
			Help: "Total number of events drained by Engine.Step",
		}),
		readyQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "engine_ready_queue_depth",
			Help: "Current number of drained events awaiting RequireEvent",
		}),
		workerPoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "engine_worker_pool_size",
			Help: "Current number of workers in the pool",
		}),
	}

	prometheus.MustRegister(
		c.jobsStarted,
		c.jobsCompleted,
		c.specializedJobsStarted,
		c.specializedJobsCompleted,
		c.eventsDispatched,
		c.eventsDrained,
		c.readyQueueDepth,
		c.workerPoolSize,
	)

	return c
}

// RecordJobStarted records a plain Execute job starting.
func (c *Collector) RecordJobStarted() {
	c.jobsStarted.Inc()
}

// RecordJobCompleted records a plain Execute job completing.
func (c *Collector) RecordJobCompleted() {
	c.jobsCompleted.Inc()
}

// RecordSpecializedJobStarted records a Specialize job starting.
func (c *Collector) RecordSpecializedJobStarted() {
	c.specializedJobsStarted.Inc()
}

// RecordSpecializedJobCompleted records a Specialize job completing.
func (c *Collector) RecordSpecializedJobCompleted() {
	c.specializedJobsCompleted.Inc()
}

// RecordEventDispatched records an event sent through the bus.
func (c *Collector) RecordEventDispatched() {
	c.eventsDispatched.Inc()
}

// RecordEventDrained records an event drained by Engine.Step.
func (c *Collector) RecordEventDrained() {
	c.eventsDrained.Inc()
}

// SetReadyQueueDepth sets the current ready-event queue depth.
func (c *Collector) SetReadyQueueDepth(depth int) {
	c.readyQueueDepth.Set(float64(depth))
}

// SetPoolSize sets the current worker pool size.
func (c *Collector) SetPoolSize(size int) {
	c.workerPoolSize.Set(float64(size))
}

// Handler returns the HTTP handler that serves metrics in Prometheus text
// format, for embedding in a caller-owned mux.
func (c *Collector) Handler() http.Handler {
	return promhttp.Handler()
}

// StartServer starts a standalone Prometheus metrics HTTP server on port.
func StartServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, nil)
}
