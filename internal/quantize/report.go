package quantize

import (
	"encoding/json"
	"io"

	"colorquant/internal/fileutil"
	"colorquant/internal/imageproc"
)

// Report is the JSON document written by --report.
type Report struct {
	Input        string      `json:"input"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Seed         int64       `json:"seed"`
	NumCentroids int         `json:"num_centroids"`
	MaxIters     int         `json:"max_iters"`
	Runs         []RunReport `json:"runs"`
}

// RunReport summarizes one backend.
type RunReport struct {
	Backend       string             `json:"backend"`
	Seconds       float64            `json:"seconds"`
	Iterations    int                `json:"iterations"`
	Inertia       float64            `json:"inertia"`
	EmptyClusters int                `json:"empty_clusters"`
	TopColors     []imageproc.Swatch `json:"top_colors"`
}

func (p *Pipeline) report(s *Summary) Report {
	r := Report{
		Input:        s.Input,
		Width:        s.Width,
		Height:       s.Height,
		Seed:         p.opts.Seed,
		NumCentroids: p.opts.NumCentroids,
		MaxIters:     p.opts.MaxIters,
	}
	for _, run := range s.Runs {
		r.Runs = append(r.Runs, RunReport{
			Backend:       run.Backend,
			Seconds:       run.Elapsed.Seconds(),
			Iterations:    run.Result.Iterations,
			Inertia:       run.Inertia,
			EmptyClusters: run.Palette.Empty,
			TopColors:     run.Palette.Top(p.opts.Top),
		})
	}
	return r
}

func reportFunc(r Report) fileutil.WriteFunc {
	return func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
}
