package imageproc

import (
	"image"
	"image/color"
	"testing"

	"colorquant/internal/kmeans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct(t *testing.T) {
	centroids := []kmeans.Color{{10.7, 20.2, 30.9}, {200, 100, 0}}
	labels := []int{0, 1, 1, 1, 0, 0}

	img, err := Reconstruct(centroids, labels, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	want := map[int]color.RGBA{
		0: {R: 10, G: 20, B: 30, A: 255},
		1: {R: 200, G: 100, B: 0, A: 255},
	}
	for i, l := range labels {
		x, y := i%3, i/3
		assert.Equal(t, want[l], img.RGBAAt(x, y), "pixel %d", i)
	}
}

func TestReconstruct_ShapeMismatch(t *testing.T) {
	centroids := []kmeans.Color{{0, 0, 0}}

	_, err := Reconstruct(centroids, []int{0, 0, 0}, 2, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Reconstruct(centroids, nil, 0, 0)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Reconstruct(centroids, []int{0, 1}, 2, 1)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Reconstruct(centroids, []int{0, -1}, 1, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFlatten(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 10})
	src.SetNRGBA(0, 1, color.NRGBA{R: 7, G: 8, B: 9, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 11, B: 12, A: 0})

	assert.Equal(t, []kmeans.Color{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}, Flatten(src))
}

func TestFlatten_SubImageRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 9, A: 255})
		}
	}
	sub := src.SubImage(image.Rect(1, 2, 3, 4))

	assert.Equal(t, []kmeans.Color{{1, 2, 9}, {2, 2, 9}, {1, 3, 9}, {2, 3, 9}}, Flatten(sub))
}

func TestFlatten_Gray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 40})
	src.SetGray(1, 0, color.Gray{Y: 200})

	assert.Equal(t, []kmeans.Color{{40, 40, 40}, {200, 200, 200}}, Flatten(src))
}

func TestReconstruct_RoundTrip(t *testing.T) {
	centroids := []kmeans.Color{{12.5, 0, 255}, {64, 64.9, 1}, {3, 2, 1}}
	labels := []int{2, 0, 1, 1, 0, 2, 2, 2}

	img, err := Reconstruct(centroids, labels, 4, 2)
	require.NoError(t, err)

	flat := Flatten(img)
	require.Len(t, flat, len(labels))
	for i, l := range labels {
		rgb := centroids[l].RGB8()
		assert.Equal(t, kmeans.Color{float32(rgb[0]), float32(rgb[1]), float32(rgb[2])}, flat[i])
	}
}
