package engine

import (
	"strings"
	"time"

	"github.com/iamNilotpal/squash/internal/adapters/compression"
	"github.com/iamNilotpal/squash/internal/adapters/staging"
	"github.com/iamNilotpal/squash/internal/adapters/transcoder"
	"github.com/iamNilotpal/squash/internal/core/domain"
)

const (
	DefaultStrategyTimeout = time.Duration(time.Minute * 10) // 10m
	DefaultLevel           = domain.LevelMedium
)

// DefaultOptions returns EngineOptions with every field set to its default.
func DefaultOptions() *domain.EngineOptions {
	return prepareDefaults(&domain.EngineOptions{})
}

func prepareDefaults(opts *domain.EngineOptions) *domain.EngineOptions {
	if opts.StrategyTimeout == 0 {
		opts.StrategyTimeout = DefaultStrategyTimeout
	}

	if opts.DefaultLevel == "" {
		opts.DefaultLevel = DefaultLevel
	}

	if opts.GenericOptions == nil {
		opts.GenericOptions = compression.DefaultOptions()
	} else if opts.GenericOptions.Algorithm == "" {
		opts.GenericOptions.Algorithm = compression.Gzip
	}

	if opts.StagingOptions == nil {
		opts.StagingOptions = staging.DefaultOptions()
	} else {
		if opts.StagingOptions.Mode == "" {
			opts.StagingOptions.Mode = domain.StagingDisk
		}

		if strings.TrimSpace(opts.StagingOptions.Prefix) == "" {
			opts.StagingOptions.Prefix = staging.DefaultPrefix
		}
	}

	if opts.MediaOptions == nil {
		opts.MediaOptions = transcoder.DefaultOptions()
	} else if strings.TrimSpace(opts.MediaOptions.FFmpegPath) == "" {
		opts.MediaOptions.FFmpegPath = transcoder.DefaultBinary
	}

	return opts
}
