package kmeans

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when the clustering preconditions do not hold.
var ErrInvalidArgument = errors.New("kmeans: invalid argument")

// Color is an RGB vector with components in [0, 255].
type Color [3]float32

// RGB8 truncates each component toward zero and clamps it to [0, 255].
func (c Color) RGB8() [3]uint8 {
	var out [3]uint8
	for i, v := range c {
		switch {
		case !(v > 0):
			out[i] = 0
		case v >= 255:
			out[i] = 255
		default:
			out[i] = uint8(v)
		}
	}
	return out
}

// Result is the outcome of one clustering run.
type Result struct {
	// Centroids holds exactly k colors. The index is the centroid ID.
	Centroids []Color
	// Labels holds the centroid ID assigned to each input pixel.
	Labels []int
	// Iterations is the number of assignment+update passes performed.
	Iterations int
}

// Engine clusters a pixel sequence into k colors.
type Engine interface {
	Name() string
	Cluster(ctx context.Context, pixels []Color, k, maxIters int, seed int64) (*Result, error)
}

// stepper performs the two passes of one iteration. Implementations own any
// scratch buffers needed for a single run.
type stepper interface {
	assign(ctx context.Context, pixels, centroids []Color, labels []int) error
	update(ctx context.Context, pixels []Color, labels []int, centroids []Color) error
}

// Validate checks the clustering preconditions.
func Validate(numPixels, k, maxIters int) error {
	switch {
	case numPixels == 0:
		return fmt.Errorf("%w: no pixels", ErrInvalidArgument)
	case k <= 0:
		return fmt.Errorf("%w: k must be positive, got %d", ErrInvalidArgument, k)
	case k > numPixels:
		return fmt.Errorf("%w: k=%d exceeds pixel count %d", ErrInvalidArgument, k, numPixels)
	case maxIters < 0:
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrInvalidArgument, maxIters)
	}
	return nil
}

// InitialCentroids returns the k seeded starting centroids for pixels.
func InitialCentroids(pixels []Color, k int, seed int64) []Color {
	idx := SampleIndices(len(pixels), k, seed)
	centroids := make([]Color, k)
	for j, i := range idx {
		centroids[j] = pixels[i]
	}
	return centroids
}

// cluster runs Lloyd's iterations with s. Arguments must already have passed
// Validate; the engines check them before sizing their step state.
func cluster(ctx context.Context, s stepper, pixels []Color, k, maxIters int, seed int64) (*Result, error) {
	centroids := InitialCentroids(pixels, k, seed)
	labels := make([]int, len(pixels))

	if maxIters == 0 {
		// Labels still reflect the initial centroids so the result is reconstructable.
		if err := s.assign(ctx, pixels, centroids, labels); err != nil {
			return nil, err
		}
		return &Result{Centroids: centroids, Labels: labels}, nil
	}

	if err := iterate(ctx, s, pixels, centroids, labels, maxIters); err != nil {
		return nil, err
	}

	return &Result{Centroids: centroids, Labels: labels, Iterations: maxIters}, nil
}

// iterate runs exactly iters passes, mutating centroids and labels in place.
func iterate(ctx context.Context, s stepper, pixels, centroids []Color, labels []int, iters int) error {
	for iter := 0; iter < iters; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.assign(ctx, pixels, centroids, labels); err != nil {
			return err
		}
		if err := s.update(ctx, pixels, labels, centroids); err != nil {
			return err
		}
	}
	return nil
}

// SquaredDistance returns the squared Euclidean distance between a and b.
// Each product is rounded to float32 on its own so the result does not
// depend on whether the platform fuses multiply-add.
func SquaredDistance(a, b Color) float32 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return float32(dr*dr) + float32(dg*dg) + float32(db*db)
}

// Nearest returns the index of the centroid closest to px. Exact ties go to
// the lowest index.
func Nearest(px Color, centroids []Color) int {
	best := 0
	minDist := float32(math.MaxFloat32)
	for i, c := range centroids {
		if d := SquaredDistance(px, c); d < minDist {
			minDist = d
			best = i
		}
	}
	return best
}

// accumulator collects per-centroid sums and member counts.
type accumulator struct {
	sums   [][3]float64
	counts []int
}

func newAccumulator(k int) *accumulator {
	return &accumulator{
		sums:   make([][3]float64, k),
		counts: make([]int, k),
	}
}

func (a *accumulator) reset() {
	clear(a.sums)
	clear(a.counts)
}

func (a *accumulator) add(pixels []Color, labels []int) {
	for i, l := range labels {
		px := pixels[i]
		a.sums[l][0] += float64(px[0])
		a.sums[l][1] += float64(px[1])
		a.sums[l][2] += float64(px[2])
		a.counts[l]++
	}
}

func (a *accumulator) merge(o *accumulator) {
	for j := range a.sums {
		a.sums[j][0] += o.sums[j][0]
		a.sums[j][1] += o.sums[j][1]
		a.sums[j][2] += o.sums[j][2]
		a.counts[j] += o.counts[j]
	}
}

// apply moves every non-empty centroid to its members' mean. Empty centroids
// keep their previous value.
func (a *accumulator) apply(centroids []Color) {
	for j, n := range a.counts {
		if n == 0 {
			continue
		}
		cnt := float64(n)
		centroids[j] = Color{
			float32(a.sums[j][0] / cnt),
			float32(a.sums[j][1] / cnt),
			float32(a.sums[j][2] / cnt),
		}
	}
}
