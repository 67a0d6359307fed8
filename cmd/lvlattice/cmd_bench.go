// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare LLL and Deep-LLL on independent random lattices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBench(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Int("trials", 8, "number of lattices")
	f.Int("workers", 4, "concurrent trials")
	f.Int("depth", 0, "deep insertion depth (0 = unlimited)")

	return cmd
}

type trial struct {
	seed       int64
	lllNorm    float64
	deepNorm   float64
	swaps      int
	insertions int
}

// runBench runs every trial on its own lattice; a Lattice never crosses
// goroutines.
func (a *app) runBench(ctx context.Context, w io.Writer) error {
	trials := make([]trial, a.cfg.Bench.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Bench.Workers)
	for i := range trials {
		g.Go(func() error {
			seed := lattice.DeriveSeed(a.cfg.Lattice.Seed, uint64(i))
			res, err := a.benchOne(gctx, seed)
			if err != nil {
				return fmt.Errorf("trial %d (seed %d): %w", i, seed, err)
			}
			trials[i] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "trial\tseed\tlll |b0|^2\tdeep |b0|^2\tswaps\tinsertions")
	deepWins := 0
	for i, t := range trials {
		fmt.Fprintf(tw, "%d\t%d\t%.0f\t%.0f\t%d\t%d\n", i, t.seed, t.lllNorm, t.deepNorm, t.swaps, t.insertions)
		if t.deepNorm <= t.lllNorm {
			deepWins++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "deep-lll <= lll in %d/%d trials\n", deepWins, len(trials))

	return nil
}

func (a *app) benchOne(ctx context.Context, seed int64) (trial, error) {
	l, err := a.newLattice(seed)
	if err != nil {
		return trial{}, err
	}
	d := l.Clone()

	ls, err := l.LLL(a.reduceOptions(ctx)...)
	a.log.LogReduction(ctx, lattice.OpLLL, ls, err)
	if err != nil {
		return trial{}, err
	}
	ds, err := d.DeepLLL(a.reduceOptions(ctx)...)
	a.log.LogReduction(ctx, lattice.OpDeepLLL, ds, err)
	if err != nil {
		return trial{}, err
	}

	t := trial{seed: seed, swaps: ls.Swaps, insertions: ds.Insertions}
	if t.lllNorm, err = l.NormSquared(0); err != nil {
		return trial{}, err
	}
	if t.deepNorm, err = d.NormSquared(0); err != nil {
		return trial{}, err
	}

	return t, nil
}
