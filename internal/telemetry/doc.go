// SPDX-License-Identifier: MIT

// Package telemetry connects lattice runs to the outside world: structured
// logs (log/slog), Prometheus metrics and throttled progress reporting.
//
// The lattice package only knows *slog.Logger, lattice.MetricsCollector and
// lattice.ProgressFunc; this package supplies concrete implementations of all
// three for the command line tool.
package telemetry
