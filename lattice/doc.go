// Package lattice reduces integer lattice bases and searches them for short vectors.
//
// A Lattice holds n integer row vectors of length m (n ≤ m) together with
// their Gram-Schmidt orthogonalization (GSO): the orthogonal rows b*_i, the
// coefficients mu[i][j] and the squared norms B[i] = ‖b*_i‖². Every operation
// applies only unimodular row operations (swaps, rotations, integer
// combinations), so the spanned lattice never changes.
//
// Operations:
//
//   - ComputeGSO: classical Gram-Schmidt; linearly dependent rows give
//     ErrDegenerateBasis.
//   - SizeReducePair / SizeReduce: bring every |mu[i][j]| down to ≤ 1/2.
//   - LLL: adjacent swaps until the Lovász condition holds everywhere.
//   - DeepLLL: LLL with deep insertions (optionally depth-bounded).
//   - Enumerate: Schnorr–Euchner zig-zag search for the shortest vector
//     within a radius.
//   - ShortestVector: Enumerate, then install the result as b_0.
//
// Long-running operations accept a context and a ProgressFunc. Both are
// consulted at checkpoints (every few iterations and on every improvement);
// a cancelled context or a callback error stops the run with ErrCancelled
// and leaves the basis consistent.
//
// Rounding: Round (half away from zero) is the single tie-break used by size
// reduction and by enumeration centers.
//
// Example:
//
//	l, _ := lattice.New(10, 10, lattice.WithSeed(42))
//	stats, err := l.LLL(lattice.WithDelta(0.99))
//	if err != nil { ... }
//	fmt.Println(stats.Swaps, l.IntBasis()[0])
//
// A Lattice is not safe for concurrent use.
package lattice
