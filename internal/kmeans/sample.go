package kmeans

import "math/rand/v2"

// pcgStream is the fixed PCG stream selector paired with the user seed.
const pcgStream = 0x9e3779b97f4a7c15

// SampleIndices picks k distinct indices from [0, n) uniformly at random.
//
// The algorithm is a partial Fisher–Yates shuffle of the virtual array
// 0..n-1 driven by math/rand/v2's PCG seeded with (seed, pcgStream): for
// i = 0..k-1 it draws j = i + IntN(n-i), swaps slots i and j, and emits slot
// i. Only displaced slots are stored, so memory is O(k) while the output is
// identical to shuffling a dense array. Callers must ensure 0 <= k <= n.
func SampleIndices(n, k int, seed int64) []int {
	r := rand.New(rand.NewPCG(uint64(seed), pcgStream))

	displaced := make(map[int]int, k)
	slot := func(i int) int {
		if v, ok := displaced[i]; ok {
			return v
		}
		return i
	}

	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		vi, vj := slot(i), slot(j)
		displaced[j] = vi
		// Slot i is never read again.
		delete(displaced, i)
		out[i] = vj
	}
	return out
}
