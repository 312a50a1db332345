package worker

// Span is a half-open range [Start, End) of pixel indices.
type Span struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// ChunkSpans splits n indices into at most parts contiguous spans. Every span
// holds at least minSize indices except when n itself is smaller. Spans are
// returned in index order and together cover [0, n) exactly once.
func ChunkSpans(n, parts, minSize int) []Span {
	if n <= 0 {
		return nil
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxParts := (n + minSize - 1) / minSize; parts > maxParts {
		parts = maxParts
	}
	if parts < 1 {
		parts = 1
	}

	spans := make([]Span, 0, parts)
	base, extra := n/parts, n%parts
	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		spans = append(spans, Span{Start: start, End: start + size})
		start += size
	}
	return spans
}
