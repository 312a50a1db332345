package imageproc

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"colorquant/internal/kmeans"
)

// ErrShapeMismatch reports that labels, centroids and image dimensions disagree.
var ErrShapeMismatch = errors.New("imageproc: shape mismatch")

// Reconstruct paints every pixel with its centroid's color. Pixels are laid
// out row-major, matching the order they were flattened in.
func Reconstruct(centroids []kmeans.Color, labels []int, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrShapeMismatch, width, height)
	}
	if len(labels) != width*height {
		return nil, fmt.Errorf("%w: %d labels for %dx%d image", ErrShapeMismatch, len(labels), width, height)
	}

	palette := make([][3]uint8, len(centroids))
	for i, c := range centroids {
		palette[i] = c.RGB8()
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, l := range labels {
		if l < 0 || l >= len(palette) {
			return nil, fmt.Errorf("%w: label %d at pixel %d out of range [0,%d)", ErrShapeMismatch, l, i, len(palette))
		}
		rgb := palette[l]
		off := i * 4
		img.Pix[off+0] = rgb[0]
		img.Pix[off+1] = rgb[1]
		img.Pix[off+2] = rgb[2]
		img.Pix[off+3] = 0xff
	}

	return img, nil
}

// Flatten returns img's pixels in row-major order, dropping alpha.
func Flatten(img image.Image) []kmeans.Color {
	b := img.Bounds()
	pixels := make([]kmeans.Color, 0, b.Dx()*b.Dy())

	switch src := img.(type) {
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				p := row[x*4 : x*4+4]
				if p[3] != 0xff {
					// Premultiplied; undo it before dropping alpha.
					c := color8(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
					pixels = append(pixels, kmeans.Color{float32(c[0]), float32(c[1]), float32(c[2])})
					continue
				}
				pixels = append(pixels, kmeans.Color{float32(p[0]), float32(p[1]), float32(p[2])})
			}
		}
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				p := row[x*4 : x*4+3]
				pixels = append(pixels, kmeans.Color{float32(p[0]), float32(p[1]), float32(p[2])})
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color8(img.At(x, y))
				pixels = append(pixels, kmeans.Color{float32(c[0]), float32(c[1]), float32(c[2])})
			}
		}
	}

	return pixels
}

func color8(c color.Color) [3]uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [3]uint8{n.R, n.G, n.B}
}
