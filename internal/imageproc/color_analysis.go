package imageproc

import (
	"sort"

	"colorquant/internal/kmeans"

	"github.com/lucasb-eyer/go-colorful"
)

// Swatch describes one palette entry.
type Swatch struct {
	Index      int     `json:"index"`
	RGB        [3]int  `json:"rgb"`
	Hex        string  `json:"hex"`
	Pixels     int     `json:"pixels"`
	Proportion float64 `json:"proportion"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// PaletteAnalysis is a palette ordered by proportion, largest first.
type PaletteAnalysis struct {
	Swatches []Swatch `json:"swatches"`
	Empty    int      `json:"empty_clusters"`
}

// AnalyzePalette summarizes centroids with their populations. populations
// may be nil, in which case every swatch has zero pixels and palette order
// is kept.
func AnalyzePalette(centroids []kmeans.Color, populations []int) PaletteAnalysis {
	total := 0
	for _, n := range populations {
		total += n
	}

	swatches := make([]Swatch, len(centroids))
	empty := 0
	for i, c := range centroids {
		rgb := c.RGB8()
		col := colorful.Color{
			R: float64(rgb[0]) / 255.0,
			G: float64(rgb[1]) / 255.0,
			B: float64(rgb[2]) / 255.0,
		}
		h, s, l := col.Hsl()

		var count int
		if i < len(populations) {
			count = populations[i]
		}
		if count == 0 {
			empty++
		}

		var share float64
		if total > 0 {
			share = float64(count) / float64(total)
		}

		swatches[i] = Swatch{
			Index:      i,
			RGB:        [3]int{int(rgb[0]), int(rgb[1]), int(rgb[2])},
			Hex:        col.Hex(),
			Pixels:     count,
			Proportion: share,
			Hue:        normalizeHue(h),
			Saturation: s,
			Lightness:  l,
		}
	}

	sortByProportion(swatches)

	return PaletteAnalysis{Swatches: swatches, Empty: empty}
}

// Top returns the n largest swatches.
func (a PaletteAnalysis) Top(n int) []Swatch {
	if n < 0 || n > len(a.Swatches) {
		n = len(a.Swatches)
	}
	return a.Swatches[:n]
}

// sortByProportion orders swatches by proportion descending, keeping palette
// order among equals.
func sortByProportion(swatches []Swatch) {
	sort.SliceStable(swatches, func(i, j int) bool {
		return swatches[i].Proportion > swatches[j].Proportion
	})
}

// normalizeHue maps colorful's [0, 360] hue to [0, 360).
func normalizeHue(hue float64) float64 {
	if hue >= 360.0 {
		return 0.0
	}
	return hue
}
