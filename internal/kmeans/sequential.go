package kmeans

import "context"

// Sequential is the reference engine: one goroutine, plain loops.
type Sequential struct{}

// NewSequential returns the reference engine.
func NewSequential() *Sequential {
	return &Sequential{}
}

// Name implements Engine.
func (*Sequential) Name() string { return BackendReference }

// Cluster implements Engine.
func (*Sequential) Cluster(ctx context.Context, pixels []Color, k, maxIters int, seed int64) (*Result, error) {
	if err := Validate(len(pixels), k, maxIters); err != nil {
		return nil, err
	}
	return cluster(ctx, &sequentialStep{acc: newAccumulator(k)}, pixels, k, maxIters, seed)
}

type sequentialStep struct {
	acc *accumulator
}

func (s *sequentialStep) assign(_ context.Context, pixels, centroids []Color, labels []int) error {
	for i, px := range pixels {
		labels[i] = Nearest(px, centroids)
	}
	return nil
}

func (s *sequentialStep) update(_ context.Context, pixels []Color, labels []int, centroids []Color) error {
	s.acc.reset()
	s.acc.add(pixels, labels)
	s.acc.apply(centroids)
	return nil
}
