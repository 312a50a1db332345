// Package imageio loads images into flat RGB pixel sequences and writes
// reconstructed images back to disk.
package imageio

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"colorquant/internal/ffmpeg"
	"colorquant/internal/fileutil"
	"colorquant/internal/imageproc"
	"colorquant/internal/kmeans"

	"github.com/rs/zerolog"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoding
)

// Decoder modes.
const (
	DecoderAuto   = "auto"
	DecoderNative = "native"
	DecoderFFmpeg = "ffmpeg"
)

// ErrUnsupportedFormat is returned by Encode for unknown output extensions
// and by ParseDecoder for unknown modes.
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// JPEGQuality is used for .jpg and .jpeg outputs.
const JPEGQuality = 95

// Image is a decoded picture flattened to row-major RGB.
type Image struct {
	Pixels []kmeans.Color
	Width  int
	Height int
	Format string
}

// Loader decodes image files.
type Loader struct {
	Mode   string
	FFmpeg *ffmpeg.Decoder
	Logger zerolog.Logger
}

// ParseDecoder validates a decoder mode name.
func ParseDecoder(mode string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(mode)); m {
	case DecoderAuto, DecoderNative, DecoderFFmpeg:
		return m, nil
	case "":
		return DecoderAuto, nil
	default:
		return "", fmt.Errorf("%w: decoder %q", ErrUnsupportedFormat, mode)
	}
}

// NewLoader returns a loader for the given decoder mode.
func NewLoader(mode string, logger zerolog.Logger) (*Loader, error) {
	m, err := ParseDecoder(mode)
	if err != nil {
		return nil, err
	}
	return &Loader{
		Mode:   m,
		FFmpeg: ffmpeg.NewDecoder(logger),
		Logger: logger,
	}, nil
}

// Load decodes path. In auto mode an unrecognized format falls back to ffmpeg.
func (l *Loader) Load(ctx context.Context, path string) (*Image, error) {
	switch l.Mode {
	case DecoderFFmpeg:
		return l.loadFFmpeg(ctx, path)
	case DecoderNative:
		return loadNative(path)
	}

	img, err := loadNative(path)
	if errors.Is(err, image.ErrFormat) {
		l.Logger.Info().Str("path", path).Msg("format not recognized, falling back to ffmpeg")
		return l.loadFFmpeg(ctx, path)
	}
	return img, err
}

func loadNative(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	return decodeNative(f)
}

func decodeNative(r io.Reader) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}
	b := img.Bounds()
	return &Image{
		Pixels: imageproc.Flatten(img),
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: format,
	}, nil
}

func (l *Loader) loadFFmpeg(ctx context.Context, path string) (*Image, error) {
	frame, err := l.FFmpeg.Decode(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("decoding input with ffmpeg: %w", err)
	}
	return &Image{
		Pixels: PixelsFromRGB24(frame.Data),
		Width:  frame.Width,
		Height: frame.Height,
		Format: "ffmpeg",
	}, nil
}

// PixelsFromRGB24 converts packed rgb24 bytes to colors. Trailing bytes that
// do not form a whole pixel are ignored.
func PixelsFromRGB24(data []byte) []kmeans.Color {
	pixels := make([]kmeans.Color, len(data)/3)
	for i := range pixels {
		p := data[i*3 : i*3+3]
		pixels[i] = kmeans.Color{float32(p[0]), float32(p[1]), float32(p[2])}
	}
	return pixels
}

// Encode writes img to path in the format implied by its extension.
func Encode(img image.Image, path string) error {
	write, err := EncodeFunc(img, path)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, write)
}

// EncodeFunc returns a writer callback that encodes img in the format implied
// by path's extension, for use with fileutil.Batch.
func EncodeFunc(img image.Image, path string) (fileutil.WriteFunc, error) {
	enc, err := encoderFor(path)
	if err != nil {
		return nil, err
	}
	return func(w io.Writer) error {
		return enc(w, img)
	}, nil
}

// CheckOutput reports whether path has a supported output extension.
func CheckOutput(path string) error {
	_, err := encoderFor(path)
	return err
}

type encodeFunc func(w io.Writer, img image.Image) error

func encoderFor(path string) (encodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: output extension %q", ErrUnsupportedFormat, ext)
	}
}
