// SPDX-License-Identifier: MIT

// Command lvlattice generates reference lattices, reduces them with LLL or
// Deep-LLL, enumerates short vectors and benchmarks the reductions.
//
// Usage:
//
//	lvlattice reduce --dim 20 --algo deep --delta 0.99
//	lvlattice enum --dim 12 --svp
//	lvlattice bench --dim 30 --trials 16 --workers 4
//
// SIGINT cancels the running operation cooperatively; the partially
// reduced basis is still printed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
