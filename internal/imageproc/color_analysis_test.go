package imageproc

import (
	"testing"

	"colorquant/internal/kmeans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePalette(t *testing.T) {
	centroids := []kmeans.Color{{255, 0, 0}, {0, 0, 255}, {128, 128, 128}}
	analysis := AnalyzePalette(centroids, []int{1, 3, 0})

	require.Len(t, analysis.Swatches, 3)
	assert.Equal(t, 1, analysis.Empty)

	blue := analysis.Swatches[0]
	assert.Equal(t, 1, blue.Index)
	assert.Equal(t, "#0000ff", blue.Hex)
	assert.Equal(t, [3]int{0, 0, 255}, blue.RGB)
	assert.InDelta(t, 0.75, blue.Proportion, 1e-9)
	assert.InDelta(t, 240.0, blue.Hue, 1e-6)
	assert.InDelta(t, 1.0, blue.Saturation, 1e-6)

	red := analysis.Swatches[1]
	assert.Equal(t, 0, red.Index)
	assert.Equal(t, "#ff0000", red.Hex)
	assert.InDelta(t, 0.0, red.Hue, 1e-6)

	gray := analysis.Swatches[2]
	assert.Equal(t, 0, gray.Pixels)
	assert.InDelta(t, 0.0, gray.Saturation, 1e-6)
}

func TestAnalyzePalette_NoPopulations(t *testing.T) {
	centroids := []kmeans.Color{{1, 2, 3}, {4, 5, 6}}
	analysis := AnalyzePalette(centroids, nil)

	require.Len(t, analysis.Swatches, 2)
	assert.Equal(t, 0, analysis.Swatches[0].Index)
	assert.Equal(t, 1, analysis.Swatches[1].Index)
	assert.Equal(t, 2, analysis.Empty)
}

func TestPaletteAnalysis_Top(t *testing.T) {
	analysis := AnalyzePalette([]kmeans.Color{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}, []int{5, 1, 9})

	top := analysis.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, 2, top[0].Index)
	assert.Equal(t, 0, top[1].Index)

	assert.Len(t, analysis.Top(10), 3)
	assert.Len(t, analysis.Top(-1), 3)
}

func TestNormalizeHue(t *testing.T) {
	assert.Equal(t, 0.0, normalizeHue(360))
	assert.Equal(t, 359.5, normalizeHue(359.5))
}
