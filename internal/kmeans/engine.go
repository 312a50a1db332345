package kmeans

import (
	"fmt"
	"strings"
)

// Backend names accepted by New.
const (
	BackendReference = "reference"
	BackendParallel  = "parallel"
)

// Backends lists the available engine names.
func Backends() []string {
	return []string{BackendReference, BackendParallel}
}

// New returns the engine registered under name. workers only applies to the
// parallel engine.
func New(name string, workers int) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendReference:
		return NewSequential(), nil
	case BackendParallel:
		return NewParallel(workers), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q (want one of %s)",
			ErrInvalidArgument, name, strings.Join(Backends(), ", "))
	}
}

var (
	_ Engine = (*Sequential)(nil)
	_ Engine = (*Parallel)(nil)
)
