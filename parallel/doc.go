// SPDX-License-Identifier: MIT

// Package parallel provides the pluggable fork-join strategies the power
// iteration engine uses to spread its matrix-vector product over workers.
//
// A Runner receives the number of elements, the requested worker count and a
// block function. It must call the block function once per contiguous,
// non-overlapping block covering [0, order) and return only after every call
// has finished. Block boundaries depend only on order and workers, never on
// the data, so any Runner that honors the contract yields results identical
// to sequential execution when each element is computed independently.
//
// Strategies:
//   - Sequential: a single block on the calling goroutine.
//   - Spawn:      one goroutine per block, joined with an errgroup.
//   - Pool:       persistent workers reused across many calls.
//   - RunnerFunc: adapter for caller-supplied strategies.
//
// Usage:
//
//	pool := parallel.NewPool(4)
//	defer pool.Close()
//	pool.Run(n, 4, func(start, length int) {
//	    for j := start; j < start+length; j++ {
//	        out[j] = work(j)
//	    }
//	})
package parallel
