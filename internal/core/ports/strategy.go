package ports

import (
	"context"

	"github.com/iamNilotpal/squash/internal/core/domain"
)

// StrategyParams carries the per-job inputs a strategy needs beyond the raw bytes.
type StrategyParams struct {
	// FileType and Format come from the classifier.
	FileType domain.FileType
	Format   domain.Format

	// Quality is the effective quality in [1,100]. Zero means no quality was
	// resolved and the strategy falls back to its own named default.
	Quality int

	// JobID uniquely identifies the job. Strategies that stage files use it
	// to name their workspace.
	JobID string
}

// Strategy is a format-specific compressor. Implementations must not retain
// data after returning and must be safe for concurrent use by independent jobs.
type Strategy interface {
	// Name identifies the strategy in logs and outcomes.
	Name() string

	// Compress transforms data according to params. The result may be larger
	// than the input; the engine's Size-Guard decides what is returned.
	Compress(ctx context.Context, data []byte, params StrategyParams) ([]byte, error)
}
