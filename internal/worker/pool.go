package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SpanFunc processes one span. idx is the span's position in the slice given
// to Run, which callers use to address per-span output slots.
type SpanFunc func(ctx context.Context, idx int, span Span) error

// Run executes fn for every span using at most workers goroutines. The first
// error cancels the context passed to the remaining jobs and is returned.
func Run(ctx context.Context, spans []Span, workers int, fn SpanFunc) error {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, span := range spans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i, span)
		})
	}

	return g.Wait()
}
