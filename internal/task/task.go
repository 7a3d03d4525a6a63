// Package task runs independent units of work concurrently and joins them.
//
// A join waits for every task to settle. The first failure to occur is the one
// reported; siblings keep running to completion and are never cancelled.
package task

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Func is one unit of work.
type Func func(ctx context.Context) error

// All starts every fn at once and blocks until all of them return.
func All(ctx context.Context, fns ...Func) error {
	// A plain Group, not WithContext: a failure must not cancel siblings.
	var g errgroup.Group
	for _, fn := range fns {
		g.Go(func() error {
			return fn(ctx)
		})
	}
	return g.Wait()
}

// Both runs fa and fb concurrently and returns both results once both have
// settled. On failure the results are zero values.
func Both[A, B any](
	ctx context.Context,
	fa func(context.Context) (A, error),
	fb func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)
	err := All(ctx,
		func(ctx context.Context) error {
			v, err := fa(ctx)
			if err != nil {
				return err
			}
			a = v
			return nil
		},
		func(ctx context.Context) error {
			v, err := fb(ctx)
			if err != nil {
				return err
			}
			b = v
			return nil
		},
	)
	if err != nil {
		var zeroA A
		var zeroB B
		return zeroA, zeroB, err
	}
	return a, b, nil
}
