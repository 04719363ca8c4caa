// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Parallel fanout of independent calls.

package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Fanout runs fn concurrently across items and returns results in the same
// order. The first error cancels ctx for the remaining calls.
func Fanout[I, T any](ctx context.Context, items []I, fn func(context.Context, I) (T, error)) ([]T, error) {
	return FanoutLimit(ctx, items, 0, fn)
}

// FanoutLimit is Fanout with at most limit calls in flight; limit <= 0
// means no limit.
func FanoutLimit[I, T any](ctx context.Context, items []I, limit int, fn func(context.Context, I) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	results := make([]T, len(items))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
