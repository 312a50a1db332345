// Package colormap reads and writes palettes as plain text, one "R G B" line
// per centroid in centroid-index order.
package colormap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"colorquant/internal/fileutil"
	"colorquant/internal/kmeans"
)

// ErrMalformed is returned by Parse for lines that are not three integers in [0, 255].
var ErrMalformed = errors.New("colormap: malformed line")

// Write emits one line per centroid. Components are truncated toward zero.
func Write(w io.Writer, centroids []kmeans.Color) error {
	bw := bufio.NewWriter(w)
	for _, c := range centroids {
		rgb := c.RGB8()
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", rgb[0], rgb[1], rgb[2]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes the colormap to path atomically.
func Save(path string, centroids []kmeans.Color) error {
	return fileutil.WriteAtomic(path, WriteFunc(centroids))
}

// WriteFunc adapts Write for use with fileutil.Batch.
func WriteFunc(centroids []kmeans.Color) fileutil.WriteFunc {
	return func(w io.Writer) error {
		return Write(w, centroids)
	}
}

// Parse reads a colormap. Blank lines are skipped.
func Parse(r io.Reader) ([]kmeans.Color, error) {
	var out []kmeans.Color
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 fields, got %d", ErrMalformed, lineNo, len(fields))
		}

		var c kmeans.Color
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: line %d: bad component %q", ErrMalformed, lineNo, f)
			}
			c[i] = float32(v)
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading colormap: %w", err)
	}
	return out, nil
}
