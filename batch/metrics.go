package batch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metrics exposes batch sweep progress as Prometheus gauges/counters, an
// optional diagnostic surface for long-running sweeps (spec.md's batch mode
// can run for hours). It is nil-safe: a nil *Metrics is never dereferenced
// by Run, so callers who don't want metrics simply pass nil.
type Metrics struct {
	registry *prometheus.Registry

	cellsCompleted prometheus.Counter
	cellsTotal     prometheus.Gauge
	progress       prometheus.Gauge

	mu        sync.Mutex
	completed int
}

// NewMetrics builds a fresh registry with this batch's gauges/counters
// registered under the "percosim" namespace.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		cellsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "percosim",
			Subsystem: "batch",
			Name:      "cells_completed_total",
			Help:      "Number of (p, pPerp) grid cells that have finished all runs.",
		}),
		cellsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "percosim",
			Subsystem: "batch",
			Name:      "cells_total",
			Help:      "Total number of (p, pPerp) grid cells in the current sweep.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "percosim",
			Subsystem: "batch",
			Name:      "progress_fraction",
			Help:      "Fraction of grid cells completed, in [0, 1].",
		}),
	}

	registry.MustRegister(m.cellsCompleted, m.cellsTotal, m.progress)
	return m
}

// ObserveCell records that one more cell has finished, out of total cells.
func (m *Metrics) ObserveCell(total int) {
	if m == nil {
		return
	}

	m.mu.Lock()
	m.completed++
	completed := m.completed
	m.mu.Unlock()

	m.cellsCompleted.Inc()
	m.cellsTotal.Set(float64(total))
	m.progress.Set(float64(completed) / float64(total))
}

// Serve starts an HTTP server exposing the registry at /metrics on addr,
// returning once the server has shut down or ctx is cancelled. Intended to
// be run in its own goroutine alongside Run.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	if m == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("batch: shutting down metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logrus.WithError(err).Error("metrics server exited unexpectedly")
		return fmt.Errorf("batch: metrics server: %w", err)
	}
}
