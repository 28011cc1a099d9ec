// Package workpool provides the process-wide bound on concurrent page scrapes.
package workpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool limits how many tasks run at once across all requests sharing it.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Do runs fn once a slot is free. It returns ctx.Err() without running fn if the
// context ends first.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	fn(ctx)
	return nil
}

func (p *Pool) Size() int {
	return int(p.size)
}
