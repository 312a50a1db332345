// Package ffmpeg decodes images through the ffmpeg and ffprobe binaries. It
// covers formats the Go image decoders do not.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnavailable is returned when ffmpeg or ffprobe cannot be found.
var ErrUnavailable = errors.New("ffmpeg: binaries not available")

// Frame is a decoded image as packed rgb24 bytes, row-major.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// Decoder runs ffprobe and ffmpeg as subprocesses.
type Decoder struct {
	FFmpegPath  string
	FFprobePath string
	Logger      zerolog.Logger
}

// NewDecoder returns a decoder that resolves the binaries from $PATH.
func NewDecoder(logger zerolog.Logger) *Decoder {
	return &Decoder{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Logger:      logger,
	}
}

// Available reports whether both binaries can be found.
func (d *Decoder) Available() error {
	for _, bin := range []string{d.FFmpegPath, d.FFprobePath} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %s not found in $PATH: %v", ErrUnavailable, bin, err)
		}
	}
	return nil
}

func decodeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-i", path,
		"-frames:v", "1",
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}
}

// Decode probes path for its dimensions and reads exactly one rgb24 frame.
func (d *Decoder) Decode(ctx context.Context, path string) (*Frame, error) {
	if err := d.Available(); err != nil {
		return nil, err
	}

	width, height, err := d.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	frameSize := int64(width) * int64(height) * 3

	args := decodeArgs(path)
	cmd := exec.CommandContext(ctx, d.FFmpegPath, args...)
	d.Logger.Debug().Str("cmd", d.FFmpegPath+" "+strings.Join(args, " ")).Msg("starting ffmpeg")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	data, readErr := readFrame(stdout, frameSize)
	// Drain anything past the first frame so Wait does not block on a full pipe.
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	switch {
	case ctx.Err() != nil:
		return nil, fmt.Errorf("ffmpeg process canceled or timed out: %w", ctx.Err())
	case waitErr != nil:
		return nil, fmt.Errorf("ffmpeg error: %v - stderr: %s", waitErr, strings.TrimSpace(stderr.String()))
	case readErr != nil:
		return nil, readErr
	}

	return &Frame{Width: width, Height: height, Data: data}, nil
}

// readFrame reads exactly size bytes from r.
func readFrame(r io.Reader, size int64) ([]byte, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return nil, fmt.Errorf("short frame: read %d of %d bytes: %w", n, size, err)
	}
	return buf, nil
}
