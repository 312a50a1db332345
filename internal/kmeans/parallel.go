package kmeans

import (
	"context"
	"runtime"

	"colorquant/internal/worker"
)

// DefaultMinSpan is the smallest number of pixels handed to one worker.
const DefaultMinSpan = 4096

// Parallel splits the pixel sequence into contiguous spans and processes them
// concurrently. Partial sums are merged in span order, so results do not
// depend on scheduling.
type Parallel struct {
	// Workers bounds the number of concurrent goroutines.
	Workers int
	// MinSpan is the minimum span length.
	MinSpan int
}

// NewParallel returns a parallel engine. workers <= 0 means GOMAXPROCS.
func NewParallel(workers int) *Parallel {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Parallel{Workers: workers, MinSpan: DefaultMinSpan}
}

// Name implements Engine.
func (*Parallel) Name() string { return BackendParallel }

// Cluster implements Engine.
func (p *Parallel) Cluster(ctx context.Context, pixels []Color, k, maxIters int, seed int64) (*Result, error) {
	if err := Validate(len(pixels), k, maxIters); err != nil {
		return nil, err
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	minSpan := p.MinSpan
	if minSpan <= 0 {
		minSpan = DefaultMinSpan
	}

	spans := worker.ChunkSpans(len(pixels), workers, minSpan)
	step := &parallelStep{
		workers: workers,
		spans:   spans,
		partial: make([]*accumulator, len(spans)),
	}
	for i := range step.partial {
		step.partial[i] = newAccumulator(k)
	}

	return cluster(ctx, step, pixels, k, maxIters, seed)
}

type parallelStep struct {
	workers int
	spans   []worker.Span
	partial []*accumulator
}

func (s *parallelStep) assign(ctx context.Context, pixels, centroids []Color, labels []int) error {
	return worker.Run(ctx, s.spans, s.workers, func(_ context.Context, _ int, span worker.Span) error {
		for i := span.Start; i < span.End; i++ {
			labels[i] = Nearest(pixels[i], centroids)
		}
		return nil
	})
}

func (s *parallelStep) update(ctx context.Context, pixels []Color, labels []int, centroids []Color) error {
	err := worker.Run(ctx, s.spans, s.workers, func(_ context.Context, idx int, span worker.Span) error {
		acc := s.partial[idx]
		acc.reset()
		acc.add(pixels[span.Start:span.End], labels[span.Start:span.End])
		return nil
	})
	if err != nil {
		return err
	}

	total := s.partial[0]
	for _, acc := range s.partial[1:] {
		total.merge(acc)
	}
	total.apply(centroids)
	return nil
}
