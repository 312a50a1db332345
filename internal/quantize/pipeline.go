// Package quantize drives a full run: decode the input, cluster it with two
// engines, then write a reconstructed image and a colormap per engine.
package quantize

import (
	"context"
	"fmt"
	"image"
	"time"

	"colorquant/internal/colormap"
	"colorquant/internal/fileutil"
	"colorquant/internal/imageio"
	"colorquant/internal/imageproc"
	"colorquant/internal/kmeans"
	"colorquant/internal/metrics"

	"github.com/rs/zerolog"
)

// Run is the outcome of one engine on the input.
type Run struct {
	Backend string
	Elapsed time.Duration
	Result  *kmeans.Result
	Image   *image.RGBA
	Palette imageproc.PaletteAnalysis
	Inertia float64
}

// Summary is the outcome of a pipeline run.
type Summary struct {
	Input  string
	Width  int
	Height int
	Runs   [2]*Run
}

// Pipeline wires the loader, the two engines and the metrics recorder.
type Pipeline struct {
	opts    Options
	loader  *imageio.Loader
	engines [2]kmeans.Engine
	metrics *metrics.Recorder
	logger  zerolog.Logger
}

// New validates opts and builds a pipeline.
func New(opts Options, logger zerolog.Logger) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	loader, err := imageio.NewLoader(opts.Decoder, logger)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		opts:    opts,
		loader:  loader,
		metrics: metrics.NewRecorder(),
		logger:  logger,
	}
	for i, name := range []string{opts.BackendA, opts.BackendB} {
		e, err := kmeans.New(name, opts.Workers)
		if err != nil {
			return nil, err
		}
		p.engines[i] = e
	}
	return p, nil
}

// Run quantizes input and writes out. All clustering and reconstruction
// finishes before the first file is written.
func (p *Pipeline) Run(ctx context.Context, input string, out Outputs) (*Summary, error) {
	if err := out.Validate(); err != nil {
		return nil, err
	}

	img, err := p.loader.Load(ctx, input)
	if err != nil {
		return nil, err
	}
	p.logger.Info().
		Str("input", input).
		Str("format", img.Format).
		Int("width", img.Width).
		Int("height", img.Height).
		Msg("image loaded")

	if err := kmeans.Validate(len(img.Pixels), p.opts.NumCentroids, p.opts.MaxIters); err != nil {
		return nil, err
	}
	p.metrics.ObserveInput(len(img.Pixels), p.opts.NumCentroids)

	summary := &Summary{Input: input, Width: img.Width, Height: img.Height}
	for i, e := range p.engines {
		run, err := p.quantize(ctx, e, img)
		if err != nil {
			return nil, fmt.Errorf("%s backend: %w", e.Name(), err)
		}
		summary.Runs[i] = run
	}

	if err := p.write(summary, out); err != nil {
		return nil, err
	}
	return summary, nil
}

func (p *Pipeline) quantize(ctx context.Context, e kmeans.Engine, img *imageio.Image) (*Run, error) {
	log := p.logger.With().Str("backend", e.Name()).Logger()
	log.Info().
		Int("k", p.opts.NumCentroids).
		Int("max_iters", p.opts.MaxIters).
		Int64("seed", p.opts.Seed).
		Msg("running k-means")

	start := time.Now()
	res, err := e.Cluster(ctx, img.Pixels, p.opts.NumCentroids, p.opts.MaxIters, p.opts.Seed)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	recon, err := imageproc.Reconstruct(res.Centroids, res.Labels, img.Width, img.Height)
	if err != nil {
		return nil, err
	}

	pops := kmeans.Populations(res.Labels, len(res.Centroids))
	run := &Run{
		Backend: e.Name(),
		Elapsed: elapsed,
		Result:  res,
		Image:   recon,
		Palette: imageproc.AnalyzePalette(res.Centroids, pops),
		Inertia: kmeans.Inertia(img.Pixels, res.Centroids, res.Labels),
	}
	p.metrics.ObserveRun(run.Backend, elapsed, res.Iterations, run.Inertia, run.Palette.Empty)

	log.Info().
		Dur("elapsed", elapsed).
		Float64("inertia", run.Inertia).
		Int("empty_clusters", run.Palette.Empty).
		Msg("k-means finished")
	for _, s := range run.Palette.Top(p.opts.Top) {
		log.Debug().
			Str("hex", s.Hex).
			Float64("proportion", s.Proportion).
			Float64("hue", s.Hue).
			Float64("saturation", s.Saturation).
			Msg("palette color")
	}

	return run, nil
}

// write stages every output and publishes them together, so a failure leaves
// none of them behind.
func (p *Pipeline) write(s *Summary, out Outputs) error {
	images := [2]string{out.ImageA, out.ImageB}
	maps := [2]string{out.ColormapA, out.ColormapB}

	var batch fileutil.Batch
	defer batch.Abort()
	for i, run := range s.Runs {
		encode, err := imageio.EncodeFunc(run.Image, images[i])
		if err != nil {
			return err
		}
		if err := batch.Add(images[i], encode); err != nil {
			return fmt.Errorf("writing %s image: %w", run.Backend, err)
		}
		if err := batch.Add(maps[i], colormap.WriteFunc(run.Result.Centroids)); err != nil {
			return fmt.Errorf("writing %s colormap: %w", run.Backend, err)
		}
	}

	if out.MetricsFile != "" {
		if err := batch.Add(out.MetricsFile, p.metrics.WriteText); err != nil {
			return err
		}
	}
	if out.Report != "" {
		if err := batch.Add(out.Report, reportFunc(p.report(s))); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if err := batch.Commit(); err != nil {
		return err
	}

	for i, run := range s.Runs {
		p.logger.Info().
			Str("backend", run.Backend).
			Str("image", images[i]).
			Str("colormap", maps[i]).
			Msg("outputs written")
	}
	return nil
}
