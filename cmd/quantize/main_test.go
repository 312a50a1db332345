package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"colorquant/internal/imageio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeGradient(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 16; i++ {
		img.SetRGBA(i%4, i/4, color.RGBA{R: uint8(i * 16), G: 0, B: 255 - uint8(i*16), A: 255})
	}
	input := filepath.Join(dir, "in.png")
	require.NoError(t, imageio.Encode(img, input))
	return input
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeGradient(t, dir)

	mapA := filepath.Join(dir, "a.txt")
	out, err := execute(t, "run", input,
		filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"),
		mapA, filepath.Join(dir, "b.txt"),
		"--num_centroids", "3", "--max_iters", "2", "--decoder", "native", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "reference k-means time:")
	assert.Contains(t, out, "parallel k-means time:")

	data, err := os.ReadFile(mapA)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)

	out, err = execute(t, "palette", mapA)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	assert.Contains(t, out, "#")
}

func TestRunCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "run", "only-one-arg")
	assert.Error(t, err)

	_, err = execute(t, "run", filepath.Join(dir, "missing.png"),
		filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"),
		filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"),
		"--num_centroids", "0", "--log-level", "error")
	assert.Error(t, err)

	_, err = execute(t, "palette", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestRunCommand_FlagsDoNotCarryOver(t *testing.T) {
	dir := t.TempDir()
	input := writeGradient(t, dir)
	outputs := []string{
		filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"),
		filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"),
	}

	args := append([]string{"run", input}, outputs...)
	_, err := execute(t, append(args, "--num_centroids", "0", "--log-level", "error")...)
	require.Error(t, err)

	// Defaults apply again: 256 centroids exceeds the 16 pixels.
	_, err = execute(t, append(args, "--log-level", "error")...)
	assert.ErrorContains(t, err, "256")

	_, err = execute(t, append(args, "--num_centroids", "4", "--max_iters", "1", "--log-level", "error")...)
	require.NoError(t, err)

	data, err := os.ReadFile(outputs[2])
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
}
