// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/lvlattice/internal/config"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/spf13/cobra"
)

func newReduceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Generate a reference lattice and reduce it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReduce(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.String("algo", config.AlgoLLL, "size, lll or deep")
	f.Int("depth", 0, "deep insertion depth (0 = unlimited)")
	f.Int("max-iter", lattice.DefaultMaxIterations, "iteration cap")

	return cmd
}

func (a *app) runReduce(ctx context.Context, w io.Writer) error {
	l, err := a.newLattice(a.cfg.Lattice.Seed)
	if err != nil {
		return err
	}
	before, err := l.NormSquared(0)
	if err != nil {
		return err
	}

	op, stats, err := reduce(l, a.cfg.Reduce.Algorithm, a.reduceOptions(ctx))
	a.log.LogReduction(ctx, op, stats, err)
	if err != nil && !partial(err) {
		return err
	}

	printBasis(w, l)
	after, nerr := l.NormSquared(0)
	if nerr != nil {
		return nerr
	}
	fmt.Fprintf(w, "op=%s iterations=%d swaps=%d insertions=%d duration=%s\n",
		op, stats.Iterations, stats.Swaps, stats.Insertions, stats.Duration)
	fmt.Fprintf(w, "|b0|^2: %.0f -> %.0f\n", before, after)

	return err
}

// reduce dispatches on the configured algorithm name.
func reduce(l *lattice.Lattice, algo string, opts []lattice.Option) (string, lattice.Stats, error) {
	switch algo {
	case config.AlgoSize:
		return lattice.OpSizeReduce, lattice.Stats{}, l.SizeReduce(opts...)
	case config.AlgoDeep:
		stats, err := l.DeepLLL(opts...)
		return lattice.OpDeepLLL, stats, err
	default:
		stats, err := l.LLL(opts...)
		return lattice.OpLLL, stats, err
	}
}

// partial reports errors after which the basis is still worth printing.
func partial(err error) bool {
	return errors.Is(err, lattice.ErrCancelled) || errors.Is(err, lattice.ErrIterationLimit)
}

func printBasis(w io.Writer, l *lattice.Lattice) {
	for i, row := range l.IntBasis() {
		fmt.Fprintf(w, "b%d = %v\n", i, row)
	}
}
