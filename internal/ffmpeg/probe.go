package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

type probeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		path,
	}
}

// Probe returns the dimensions of the first video stream in path. Still
// images are reported by ffprobe as single-frame video streams.
func (d *Decoder) Probe(ctx context.Context, path string) (width, height int, err error) {
	cmd := exec.CommandContext(ctx, d.FFprobePath, probeArgs(path)...)
	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe error: %w", err)
	}
	return parseProbe(output)
}

func parseProbe(output []byte) (width, height int, err error) {
	var data probeOutput
	if err := json.Unmarshal(output, &data); err != nil {
		return 0, 0, fmt.Errorf("error parsing ffprobe output: %w", err)
	}
	if len(data.Streams) == 0 {
		return 0, 0, fmt.Errorf("no image streams found")
	}

	s := data.Streams[0]
	if s.Width <= 0 || s.Height <= 0 {
		return 0, 0, fmt.Errorf("invalid dimensions %dx%d", s.Width, s.Height)
	}
	return s.Width, s.Height, nil
}
