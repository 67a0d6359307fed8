// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvlattice/internal/config"
	"github.com/katalvlaran/lvlattice/internal/telemetry"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfgPath string
	cfg     config.Config
	flags   flagValues

	runID   string
	log     *telemetry.Logger
	metrics lattice.MetricsCollector
	server  *http.Server
}

// flagValues receives the persistent flags; only flags set on the command
// line override the configuration file.
type flagValues struct {
	dim, cols      int
	seed           int64
	delta          float64
	logLevel       string
	logFormat      string
	metricsAddr    string
	progressPerSec float64
}

func newRootCmd() *cobra.Command {
	a := &app{metrics: lattice.NoopMetrics{}}

	root := &cobra.Command{
		Use:           "lvlattice",
		Short:         "Lattice basis reduction (LLL, Deep-LLL) and short vector enumeration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	pf.IntVar(&a.flags.dim, "dim", 0, "number of basis vectors n")
	pf.IntVar(&a.flags.cols, "cols", 0, "vector length m (default n)")
	pf.Int64Var(&a.flags.seed, "seed", 0, "seed of the reference basis")
	pf.Float64Var(&a.flags.delta, "delta", 0, "Lovász parameter in (0.25, 1)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "text or json")
	pf.StringVar(&a.flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	pf.Float64Var(&a.flags.progressPerSec, "progress", 0, "progress records per second (0 = off)")

	root.AddCommand(newReduceCmd(a), newEnumCmd(a), newBenchCmd(a))

	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and metrics for this run.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("dim") {
		cfg.Lattice.Dimension = a.flags.dim
	}
	if f.Changed("cols") {
		cfg.Lattice.Columns = a.flags.cols
	}
	if f.Changed("seed") {
		cfg.Lattice.Seed = a.flags.seed
	}
	if f.Changed("delta") {
		cfg.Reduce.Delta = a.flags.delta
	}
	if f.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}
	if f.Changed("metrics-addr") {
		cfg.Metrics.Addr = a.flags.metricsAddr
	}
	if f.Changed("progress") {
		cfg.Log.ProgressPerSecond = a.flags.progressPerSec
	}
	if err = applyLocalFlags(cmd, &cfg); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := telemetry.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.runID = uuid.NewString()
	a.log = logger.WithRunID(a.runID).WithShape(cfg.Lattice.Dimension, cfg.Lattice.Cols())

	if cfg.Metrics.Addr != "" {
		if err = a.serveMetrics(cfg.Metrics.Addr); err != nil {
			return err
		}
	}
	a.log.Debug("run configured", "command", cmd.Name(), "config", a.cfgPath)

	return nil
}

// serveMetrics registers a collector on a private registry and exposes it.
func (a *app) serveMetrics(addr string) error {
	reg := prometheus.NewRegistry()
	collector, err := telemetry.NewPrometheusCollector(reg)
	if err != nil {
		return err
	}
	a.metrics = collector

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server stopped", "error", err)
		}
	}()
	a.log.Info("serving metrics", "addr", ln.Addr().String())

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	return a.server.Shutdown(ctx)
}

// reduceOptions returns the configured reduction options bound to ctx.
func (a *app) reduceOptions(ctx context.Context) []lattice.Option {
	extra := []lattice.Option{
		lattice.WithContext(ctx),
		lattice.WithLogger(a.log.Logger),
		lattice.WithMetrics(a.metrics),
	}
	if a.cfg.Log.ProgressPerSecond > 0 {
		p := telemetry.NewProgressLogger(a.log, a.cfg.Log.ProgressPerSecond, 1)
		extra = append(extra, lattice.WithProgress(p.Func()))
	}

	return a.cfg.Reduce.Options(extra...)
}

// enumOptions returns the configured enumeration options bound to ctx.
func (a *app) enumOptions(ctx context.Context) []lattice.EnumOption {
	opts := a.cfg.Enum.Options(a.cfg.Reduce,
		lattice.WithLogger(a.log.Logger),
		lattice.WithMetrics(a.metrics),
	)
	opts = append(opts, lattice.WithEnumContext(ctx))
	if a.cfg.Log.ProgressPerSecond > 0 {
		p := telemetry.NewProgressLogger(a.log, a.cfg.Log.ProgressPerSecond, 1)
		opts = append(opts, lattice.WithEnumProgress(p.Func()))
	}

	return opts
}

// newLattice builds the configured reference lattice for seed.
func (a *app) newLattice(seed int64) (*lattice.Lattice, error) {
	lc := a.cfg.Lattice

	return lattice.New(lc.Dimension, lc.Cols(), lc.BuildOptions(seed)...)
}

// applyLocalFlags copies subcommand-specific flags into cfg.
func applyLocalFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("algo") {
		if cfg.Reduce.Algorithm, err = f.GetString("algo"); err != nil {
			return err
		}
	}
	if f.Changed("depth") {
		if cfg.Reduce.Depth, err = f.GetInt("depth"); err != nil {
			return err
		}
	}
	if f.Changed("max-iter") {
		if cfg.Reduce.MaxIterations, err = f.GetInt("max-iter"); err != nil {
			return err
		}
	}
	if f.Changed("radius") {
		if cfg.Enum.RadiusSquared, err = f.GetFloat64("radius"); err != nil {
			return err
		}
	}
	if f.Changed("max-nodes") {
		if cfg.Enum.MaxNodes, err = f.GetInt("max-nodes"); err != nil {
			return err
		}
	}
	if f.Changed("trials") {
		if cfg.Bench.Trials, err = f.GetInt("trials"); err != nil {
			return err
		}
	}
	if f.Changed("workers") {
		if cfg.Bench.Workers, err = f.GetInt("workers"); err != nil {
			return err
		}
	}

	return nil
}
