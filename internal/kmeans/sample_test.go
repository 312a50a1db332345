package kmeans

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denseSample is the textbook partial Fisher–Yates over a materialized array.
func denseSample(n, k int, seed int64) []int {
	r := rand.New(rand.NewPCG(uint64(seed), pcgStream))
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func TestSampleIndices_MatchesDenseShuffle(t *testing.T) {
	cases := []struct{ n, k int }{{1, 1}, {10, 3}, {10, 10}, {1000, 256}, {50000, 17}}
	for _, c := range cases {
		for _, seed := range []int64{0, 1, 214, -5} {
			assert.Equal(t, denseSample(c.n, c.k, seed), SampleIndices(c.n, c.k, seed), "n=%d k=%d seed=%d", c.n, c.k, seed)
		}
	}
}

func TestSampleIndices_DistinctAndInRange(t *testing.T) {
	got := SampleIndices(500, 200, 214)
	require.Len(t, got, 200)

	seen := make(map[int]bool, len(got))
	for _, i := range got {
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, 500)
		require.False(t, seen[i], "index %d repeated", i)
		seen[i] = true
	}
}

func TestSampleIndices_FullPermutation(t *testing.T) {
	got := SampleIndices(64, 64, 3)
	sorted := append([]int(nil), got...)
	sort.Ints(sorted)
	for i, v := range sorted {
		assert.Equal(t, i, v)
	}
}

func TestSampleIndices_Deterministic(t *testing.T) {
	assert.Equal(t, SampleIndices(10000, 32, 214), SampleIndices(10000, 32, 214))
	assert.Empty(t, SampleIndices(10, 0, 1))
}

func TestInitialCentroids(t *testing.T) {
	pixels := randomPixels(100, 4)
	idx := SampleIndices(len(pixels), 5, 77)
	centroids := InitialCentroids(pixels, 5, 77)

	require.Len(t, centroids, 5)
	for j, i := range idx {
		assert.Equal(t, pixels[i], centroids[j])
	}
}
