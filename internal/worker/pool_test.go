package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkSpans(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		parts   int
		minSize int
		want    []Span
	}{
		{name: "empty", n: 0, parts: 4, minSize: 1, want: nil},
		{name: "even", n: 8, parts: 4, minSize: 1, want: []Span{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{name: "remainder goes first", n: 10, parts: 3, minSize: 1, want: []Span{{0, 4}, {4, 7}, {7, 10}}},
		{name: "more parts than items", n: 2, parts: 8, minSize: 1, want: []Span{{0, 1}, {1, 2}}},
		{name: "min size caps parts", n: 10, parts: 8, minSize: 5, want: []Span{{0, 5}, {5, 10}}},
		{name: "small input single span", n: 3, parts: 8, minSize: 100, want: []Span{{0, 3}}},
		{name: "zero parts", n: 5, parts: 0, minSize: 1, want: []Span{{0, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkSpans(tt.n, tt.parts, tt.minSize))
		})
	}
}

func TestChunkSpansCoverage(t *testing.T) {
	for n := 1; n < 200; n += 7 {
		for parts := 1; parts < 12; parts++ {
			spans := ChunkSpans(n, parts, 3)
			next := 0
			for _, s := range spans {
				require.Equal(t, next, s.Start)
				require.Positive(t, s.Len())
				next = s.End
			}
			require.Equal(t, n, next)
		}
	}
}

func TestRun(t *testing.T) {
	spans := ChunkSpans(1000, 7, 1)
	out := make([]int, len(spans))

	err := Run(context.Background(), spans, 3, func(_ context.Context, idx int, s Span) error {
		out[idx] = s.Len()
		return nil
	})
	require.NoError(t, err)

	total := 0
	for _, v := range out {
		total += v
	}
	assert.Equal(t, 1000, total)
}

func TestRun_Error(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32

	err := Run(context.Background(), ChunkSpans(100, 4, 1), 1, func(_ context.Context, idx int, _ Span) error {
		calls.Add(1)
		if idx == 1 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.LessOrEqual(t, calls.Load(), int32(4))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, ChunkSpans(100, 4, 1), 2, func(context.Context, int, Span) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
