package quantize

import (
	"errors"
	"fmt"

	"colorquant/internal/imageio"
	"colorquant/internal/kmeans"
)

// Defaults for the command-line flags.
const (
	DefaultSeed         = 214
	DefaultNumCentroids = 256
	DefaultMaxIters     = 3
	DefaultTop          = 5
)

// Options controls a quantization run.
type Options struct {
	Seed         int64
	NumCentroids int
	MaxIters     int
	BackendA     string // engine for the first output pair
	BackendB     string // engine for the second output pair
	Workers      int    // parallel engine workers, 0 = GOMAXPROCS
	Decoder      string // auto, native or ffmpeg
	Top          int    // palette entries to log per backend
}

// DefaultOptions returns the options used when no flags are given.
func DefaultOptions() Options {
	return Options{
		Seed:         DefaultSeed,
		NumCentroids: DefaultNumCentroids,
		MaxIters:     DefaultMaxIters,
		BackendA:     kmeans.BackendReference,
		BackendB:     kmeans.BackendParallel,
		Decoder:      imageio.DecoderAuto,
		Top:          DefaultTop,
	}
}

// Validate checks everything that can be checked before the image is loaded.
func (o Options) Validate() error {
	var errs []error
	if o.NumCentroids <= 0 {
		errs = append(errs, fmt.Errorf("%w: num_centroids must be positive, got %d", kmeans.ErrInvalidArgument, o.NumCentroids))
	}
	if o.MaxIters < 0 {
		errs = append(errs, fmt.Errorf("%w: max_iters must not be negative, got %d", kmeans.ErrInvalidArgument, o.MaxIters))
	}
	if o.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers must not be negative, got %d", kmeans.ErrInvalidArgument, o.Workers))
	}
	if o.Top < 0 {
		errs = append(errs, fmt.Errorf("%w: top must not be negative, got %d", kmeans.ErrInvalidArgument, o.Top))
	}
	for _, name := range []string{o.BackendA, o.BackendB} {
		if _, err := kmeans.New(name, o.Workers); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := imageio.ParseDecoder(o.Decoder); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Outputs names the files a run produces. MetricsFile and Report are optional.
type Outputs struct {
	ImageA      string
	ImageB      string
	ColormapA   string
	ColormapB   string
	MetricsFile string
	Report      string
}

// Validate checks that the image outputs have supported extensions.
func (o Outputs) Validate() error {
	var errs []error
	for _, p := range []string{o.ImageA, o.ImageB} {
		if err := imageio.CheckOutput(p); err != nil {
			errs = append(errs, err)
		}
	}
	if o.ColormapA == "" || o.ColormapB == "" {
		errs = append(errs, errors.New("colormap output paths are required"))
	}
	return errors.Join(errs...)
}
