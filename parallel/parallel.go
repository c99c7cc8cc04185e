// SPDX-License-Identifier: MIT

package parallel

import "golang.org/x/sync/errgroup"

// BlockFunc processes the elements [start, start+length).
type BlockFunc func(start, length int)

// Runner partitions order elements into at most workers contiguous blocks
// and calls fn once per block, returning after all calls complete.
type Runner interface {
	Run(order, workers int, fn BlockFunc)
}

// RunnerFunc adapts an ordinary function to the Runner interface.
type RunnerFunc func(order, workers int, fn BlockFunc)

// Run calls f(order, workers, fn).
func (f RunnerFunc) Run(order, workers int, fn BlockFunc) { f(order, workers, fn) }

// Block is one contiguous slice of element indices.
type Block struct {
	Start  int
	Length int
}

// Blocks splits [0, order) into at most workers contiguous blocks of
// ceil(order/workers) elements, the last one possibly shorter.
// No block is empty; fewer than workers blocks are returned when order is
// small. A non-positive workers value is treated as one.
//
// Complexity:
//   - Time O(workers), Space O(workers).
func Blocks(order, workers int) []Block {
	if order <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	per := order / workers
	if order%workers > 0 {
		per++
	}

	out := make([]Block, 0, (order+per-1)/per)
	for start := 0; start < order; start += per {
		out = append(out, Block{Start: start, Length: min(per, order-start)})
	}

	return out
}

// Sequential runs the whole range as a single block on the caller's goroutine.
var Sequential Runner = RunnerFunc(func(order, _ int, fn BlockFunc) {
	if order > 0 {
		fn(0, order)
	}
})

// Spawn starts one goroutine per block and waits for all of them.
// It falls back to a direct call when there is only one block.
var Spawn Runner = RunnerFunc(spawn)

func spawn(order, workers int, fn BlockFunc) {
	blocks := Blocks(order, workers)
	if len(blocks) == 1 {
		fn(blocks[0].Start, blocks[0].Length)
		return
	}

	var g errgroup.Group
	for _, b := range blocks {
		g.Go(func() error {
			fn(b.Start, b.Length)
			return nil
		})
	}
	_ = g.Wait() // block functions never fail
}

// Default returns the strategy used when the caller supplies none:
// Sequential for a single worker, Spawn otherwise.
func Default(workers int) Runner {
	if workers <= 1 {
		return Sequential
	}

	return Spawn
}
