// SPDX-License-Identifier: MIT

package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "lvlattice"

// Status label values.
const (
	StatusOK        = "ok"
	StatusCancelled = "cancelled"
	StatusCapped    = "capped"
	StatusNoVector  = "no_vector"
	StatusError     = "error"
)

// PrometheusCollector implements lattice.MetricsCollector on Prometheus
// counters and histograms. It is safe for concurrent use, so one collector
// can serve every worker of a benchmark.
type PrometheusCollector struct {
	reductions   *prometheus.CounterVec
	iterations   *prometheus.CounterVec
	swaps        *prometheus.CounterVec
	insertions   *prometheus.CounterVec
	reductionDur *prometheus.HistogramVec

	enumerations *prometheus.CounterVec
	enumNodes    prometheus.Counter
	enumCands    prometheus.Counter
	enumDur      prometheus.Histogram
	shortest     prometheus.Gauge
}

var _ lattice.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the metrics and registers them on reg
// (prometheus.DefaultRegisterer when nil).
// Errors: ErrRegistration, e.g. when the same registry is used twice.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &PrometheusCollector{
		reductions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reductions_total",
			Help:      "Finished reduction runs by operation and status.",
		}, []string{"op", "status"}),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "iterations_total",
			Help:      "State-machine visits performed by reductions.",
		}, []string{"op"}),
		swaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "swaps_total",
			Help:      "Adjacent row swaps performed by reductions.",
		}, []string{"op"}),
		insertions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "insertions_total",
			Help:      "Deep insertions performed by reductions.",
		}, []string{"op"}),
		reductionDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "reduction_seconds",
			Help:      "Wall time of reduction runs.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
		enumerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "enumerations_total",
			Help:      "Finished enumerations by status.",
		}, []string{"status"}),
		enumNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "enum_nodes_total",
			Help:      "Search tree nodes visited by enumerations.",
		}),
		enumCands: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "enum_candidates_total",
			Help:      "Candidates recorded by enumerations.",
		}),
		enumDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "enum_seconds",
			Help:      "Wall time of enumerations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		shortest: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_shortest_norm_squared",
			Help:      "Squared norm of the vector returned by the last enumeration.",
		}),
	}
	for _, col := range []prometheus.Collector{
		c.reductions, c.iterations, c.swaps, c.insertions, c.reductionDur,
		c.enumerations, c.enumNodes, c.enumCands, c.enumDur, c.shortest,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistration, err)
		}
	}

	return c, nil
}

// RecordReduction implements lattice.MetricsCollector.
func (c *PrometheusCollector) RecordReduction(op string, s lattice.Stats, err error) {
	c.reductions.WithLabelValues(op, Status(err)).Inc()
	c.iterations.WithLabelValues(op).Add(float64(s.Iterations))
	c.swaps.WithLabelValues(op).Add(float64(s.Swaps))
	c.insertions.WithLabelValues(op).Add(float64(s.Insertions))
	c.reductionDur.WithLabelValues(op).Observe(s.Duration.Seconds())
}

// RecordEnumeration implements lattice.MetricsCollector.
func (c *PrometheusCollector) RecordEnumeration(res lattice.EnumResult, elapsed time.Duration, err error) {
	c.enumerations.WithLabelValues(Status(err)).Inc()
	c.enumNodes.Add(float64(res.Nodes))
	c.enumCands.Add(float64(res.Candidates))
	c.enumDur.Observe(elapsed.Seconds())
	if res.Vector != nil {
		c.shortest.Set(res.NormSquared)
	}
}

// Status maps an operation error onto a low-cardinality label value.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, lattice.ErrCancelled):
		return StatusCancelled
	case errors.Is(err, lattice.ErrIterationLimit):
		return StatusCapped
	case errors.Is(err, lattice.ErrNoVector):
		return StatusNoVector
	default:
		return StatusError
	}
}
