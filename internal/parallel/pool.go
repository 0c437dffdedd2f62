// Package parallel spreads per-face work of a subdivision pass over a fixed
// number of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest range handed to a worker. Below this the
// goroutine overhead outweighs the work of evaluating a few faces.
const minChunk = 64

// WorkerPool runs index-range work across a bounded set of goroutines.
//
// Work is split into contiguous chunks, one or more per worker, so each
// goroutine touches a compact slice of the output. A pool with one worker
// runs everything on the calling goroutine.
//
// Thread safety: WorkerPool holds no mutable state and is safe for
// concurrent use.
type WorkerPool struct {
	workers int
}

// NewWorkerPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{workers: workers}
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// ForEach calls fn(ctx, i) for every i in [0, n) and waits for all calls to
// return. The first non-nil error cancels the context passed to the
// remaining calls and is returned. Calls within one chunk run in increasing
// index order.
func (p *WorkerPool) ForEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	chunks := p.chunks(n)
	if len(chunks) == 1 {
		return runRange(ctx, 0, n, fn)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, c := range chunks {
		lo, hi := c[0], c[1]
		g.Go(func() error {
			return runRange(gctx, lo, hi, fn)
		})
	}
	return g.Wait()
}

// chunks splits [0, n) into at most workers contiguous ranges of at least
// minChunk items each.
func (p *WorkerPool) chunks(n int) [][2]int {
	count := min(p.workers, (n+minChunk-1)/minChunk)
	if count <= 1 {
		return [][2]int{{0, n}}
	}
	size := (n + count - 1) / count
	out := make([][2]int, 0, count)
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}
	return out
}

func runRange(ctx context.Context, lo, hi int, fn func(ctx context.Context, i int) error) error {
	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, i); err != nil {
			return err
		}
	}
	return nil
}
