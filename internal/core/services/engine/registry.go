package engine

import (
	"fmt"

	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
)

// Registry maps every FileType to the strategy that handles it. It is
// immutable once built.
type Registry struct {
	strategies map[domain.FileType]ports.Strategy
	fallback   ports.Strategy
}

// NewRegistry checks that strategies covers the whole FileType set and that
// a fallback exists. Adding a FileType without wiring a strategy for it
// fails here rather than at dispatch time.
func NewRegistry(strategies map[domain.FileType]ports.Strategy, fallback ports.Strategy) (*Registry, error) {
	if fallback == nil {
		return nil, fmt.Errorf("registry requires a fallback strategy")
	}

	table := make(map[domain.FileType]ports.Strategy, len(strategies))
	for _, fileType := range domain.FileTypes() {
		s, ok := strategies[fileType]
		if !ok || s == nil {
			return nil, fmt.Errorf("no strategy registered for file type %s", fileType)
		}
		table[fileType] = s
	}

	for fileType := range strategies {
		if !fileType.IsValid() {
			return nil, fmt.Errorf("strategy registered for unknown file type %q", fileType)
		}
	}

	return &Registry{strategies: table, fallback: fallback}, nil
}

// Select returns the strategy for fileType. Values outside the closed set
// get the fallback.
func (r *Registry) Select(fileType domain.FileType) ports.Strategy {
	if s, ok := r.strategies[fileType]; ok {
		return s
	}
	return r.fallback
}

// Fallback returns the default arm.
func (r *Registry) Fallback() ports.Strategy {
	return r.fallback
}
