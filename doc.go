// Package lvlattice is an integer lattice basis reduction toolkit: build a
// basis, orthogonalize it, reduce it with LLL or Deep-LLL, and search it for
// its shortest vector.
//
// What is inside?
//
//	matrix/   — fixed-shape, bounds-checked dense float64 matrices with the
//	            row kernels reductions need (swap, rotate, axpy, dot) plus
//	            Mul, Transpose, Gram and Det.
//	lattice/  — the Lattice type with its Gram-Schmidt data, SizeReduce,
//	            LLL, DeepLLL, Enumerate (Schnorr–Euchner) and ShortestVector,
//	            reduction predicates and quality measures.
//	internal/ — telemetry (slog, Prometheus, throttled progress) and YAML
//	            configuration for the command line tool.
//	cmd/lvlattice — `reduce`, `enum` and `bench` subcommands.
//	examples/ — runnable walkthroughs (knapsack recovery, progress and
//	            cancellation).
//
// Guarantees
//
//   - Every operation applies unimodular row operations only; the lattice
//     spanned by the basis never changes, even when a run is cancelled.
//   - Long-running operations take a context.Context and a progress
//     callback, both consulted at checkpoints.
//   - Invalid input is reported through sentinel errors (errors.Is), never
//     through panics.
//
// Quick start:
//
//	l, _ := lattice.New(20, 20, lattice.WithSeed(1))
//	if _, err := l.LLL(lattice.WithDelta(0.99)); err != nil { ... }
//	res, _ := l.Enumerate()
//	fmt.Println(res.Vector, res.NormSquared)
package lvlattice
