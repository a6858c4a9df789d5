package engine

import (
	"fmt"

	"github.com/iamNilotpal/squash/internal/adapters/compression"
	"github.com/iamNilotpal/squash/internal/adapters/staging"
	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/pkg/errors"
)

// Validate checks opts before defaults are applied. Zero values are valid
// and mean "use the default".
func Validate(opts *domain.EngineOptions) error {
	if opts.StrategyTimeout < 0 {
		return errors.NewValidationError(
			"strategyTimeout", opts.StrategyTimeout,
			fmt.Errorf("strategy timeout must not be negative, got %s", opts.StrategyTimeout),
		)
	}

	if opts.DefaultLevel != "" && !opts.DefaultLevel.IsValid() {
		return errors.NewValidationError(
			"defaultLevel", opts.DefaultLevel,
			fmt.Errorf("default level must be one of low, medium, high, maximum, got %q", opts.DefaultLevel),
		)
	}

	if opts.GenericOptions != nil && opts.GenericOptions.Algorithm != "" {
		if err := compression.Validate(opts.GenericOptions); err != nil {
			return errors.NewValidationError("generic", opts.GenericOptions, err)
		}
	}

	if opts.StagingOptions != nil && opts.StagingOptions.Mode != "" {
		if err := staging.Validate(opts.StagingOptions); err != nil {
			return errors.NewValidationError("staging", opts.StagingOptions, err)
		}
	}

	return nil
}
