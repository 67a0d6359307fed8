// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/spf13/cobra"
)

func newEnumCmd(a *app) *cobra.Command {
	var svp bool
	cmd := &cobra.Command{
		Use:   "enum",
		Short: "LLL-reduce a reference lattice, then enumerate its shortest vector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEnum(cmd.Context(), cmd.OutOrStdout(), svp)
		},
	}
	f := cmd.Flags()
	f.Float64("radius", 0, "initial squared radius (0 = |b*_0|^2)")
	f.Int("max-nodes", 0, "node cap (0 = unlimited)")
	f.BoolVar(&svp, "svp", false, "install the result as b0 (ShortestVector)")

	return cmd
}

func (a *app) runEnum(ctx context.Context, w io.Writer, svp bool) error {
	l, err := a.newLattice(a.cfg.Lattice.Seed)
	if err != nil {
		return err
	}
	stats, err := l.LLL(a.reduceOptions(ctx)...)
	a.log.LogReduction(ctx, lattice.OpLLL, stats, err)
	if err != nil {
		return err
	}

	var res lattice.EnumResult
	if svp {
		res, err = l.ShortestVector(a.enumOptions(ctx)...)
	} else {
		res, err = l.Enumerate(a.enumOptions(ctx)...)
	}
	a.log.LogEnumeration(ctx, res, err)
	if err != nil && (res.Vector == nil || !partial(err)) {
		return err
	}

	fmt.Fprintf(w, "coefficients = %v\n", res.Coefficients)
	fmt.Fprintf(w, "vector       = %v\n", res.Vector)
	fmt.Fprintf(w, "norm^2 = %g  nodes = %d  candidates = %d\n", res.NormSquared, res.Nodes, res.Candidates)
	if svp {
		printBasis(w, l)
	}

	return err
}
