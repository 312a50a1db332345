package kmeans

// Populations counts how many labels point at each of the k centroids.
func Populations(labels []int, k int) []int {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

// EmptyClusters returns the number of centroids with no members.
func EmptyClusters(populations []int) int {
	n := 0
	for _, c := range populations {
		if c == 0 {
			n++
		}
	}
	return n
}

// Inertia is the sum of squared distances from each pixel to its centroid.
func Inertia(pixels, centroids []Color, labels []int) float64 {
	var sum float64
	for i, l := range labels {
		sum += float64(SquaredDistance(pixels[i], centroids[l]))
	}
	return sum
}
