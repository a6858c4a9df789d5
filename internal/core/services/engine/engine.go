// Package engine dispatches compression jobs: it classifies the upload,
// resolves the effective quality, runs the matching strategy under a
// bounded wait and applies the Size-Guard to the result.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamNilotpal/squash/internal/adapters/compression"
	"github.com/iamNilotpal/squash/internal/adapters/staging"
	"github.com/iamNilotpal/squash/internal/adapters/strategy"
	"github.com/iamNilotpal/squash/internal/adapters/transcoder"
	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/internal/core/services/classifier"
	"github.com/iamNilotpal/squash/internal/core/services/quality"
	"github.com/iamNilotpal/squash/pkg/errors"
	"github.com/iamNilotpal/squash/pkg/system"
)

// Input is what a caller hands the engine for one job.
type Input struct {
	Content           []byte
	DeclaredMediaType string
	FileName          string

	// CompressionLevel names a preset. Empty selects the engine's default
	// level; an unknown name falls back to quality.FallbackQuality.
	CompressionLevel string

	// ExplicitQuality overrides the level's canonical quality when set.
	ExplicitQuality *int
}

// Engine is safe for concurrent use. Jobs share no mutable state; each one
// gets its own ID and, where needed, its own staging workspace.
type Engine struct {
	options  *domain.EngineOptions
	registry *Registry
	codec    ports.CompressionPort
	log      *zap.SugaredLogger
}

// Option overrides one of the adapters the engine would otherwise build
// from its options.
type Option func(*dependencies)

type dependencies struct {
	staging    ports.Staging
	transcoder ports.Transcoder
	overrides  map[domain.FileType]ports.Strategy
}

// WithStaging replaces the staging adapter selected by StagingOptions.
func WithStaging(s ports.Staging) Option {
	return func(d *dependencies) { d.staging = s }
}

// WithTranscoder replaces the ffmpeg transcoder.
func WithTranscoder(t ports.Transcoder) Option {
	return func(d *dependencies) { d.transcoder = t }
}

// WithStrategy registers s for fileType in place of the built-in strategy.
func WithStrategy(fileType domain.FileType, s ports.Strategy) Option {
	return func(d *dependencies) {
		if d.overrides == nil {
			d.overrides = make(map[domain.FileType]ports.Strategy)
		}
		d.overrides[fileType] = s
	}
}

func New(opts *domain.EngineOptions, log *zap.SugaredLogger, options ...Option) (*Engine, error) {
	if opts != nil {
		if err := Validate(opts); err != nil {
			return nil, err
		}
	}

	if opts != nil {
		opts = prepareDefaults(opts)
	} else {
		opts = prepareDefaults(&domain.EngineOptions{})
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	deps := dependencies{}
	for _, apply := range options {
		apply(&deps)
	}

	if deps.staging == nil {
		s, err := staging.New(opts.StagingOptions)
		if err != nil {
			return nil, errors.NewValidationError("staging", opts.StagingOptions, err)
		}
		deps.staging = s
	}

	if deps.transcoder == nil {
		// ffmpeg opens workspace paths directly.
		if !deps.staging.OnDisk() {
			return nil, errors.NewValidationError(
				"staging.mode", opts.StagingOptions.Mode,
				errors.ErrMediaNeedsDisk,
			)
		}
		deps.transcoder = transcoder.New(opts.MediaOptions, log)
	}

	codec, err := compression.New(opts.GenericOptions)
	if err != nil {
		return nil, errors.NewValidationError("generic", opts.GenericOptions, err)
	}

	generic := strategy.NewGeneric(codec)
	media := strategy.NewMedia(deps.staging, deps.transcoder)
	table := map[domain.FileType]ports.Strategy{
		domain.FileTypeImage:    strategy.NewImage(),
		domain.FileTypeDocument: strategy.NewDocument(generic),
		domain.FileTypeVideo:    media,
		domain.FileTypeAudio:    media,
		domain.FileTypeArchive:  strategy.NewArchive(deps.staging),
	}
	for fileType, s := range deps.overrides {
		table[fileType] = s
	}

	registry, err := NewRegistry(table, generic)
	if err != nil {
		codec.Close()
		return nil, err
	}

	return &Engine{options: opts, registry: registry, codec: codec, log: log}, nil
}

// Compress runs one job to completion. The returned outcome never holds more
// bytes than the input; a failing strategy yields a *errors.StrategyError
// and no outcome.
func (e *Engine) Compress(ctx context.Context, in Input) (*domain.CompressionOutcome, error) {
	class := classifier.Classify(in.DeclaredMediaType, in.FileName)

	level := e.options.DefaultLevel
	if strings.TrimSpace(in.CompressionLevel) != "" {
		var known bool
		if level, known = domain.ParseCompressionLevel(in.CompressionLevel); !known {
			e.log.Warnw("Unknown compression level, using fallback quality",
				"level", in.CompressionLevel, "quality", quality.FallbackQuality,
			)
		}
	}

	req := domain.NewRequest(
		in.Content, in.DeclaredMediaType, in.FileName, class.FileType, class.Format, level, in.ExplicitQuality,
	)
	q := quality.Resolve(req.Level, req.ExplicitQuality)

	s := e.registry.Select(req.FileType)
	params := ports.StrategyParams{FileType: req.FileType, Format: req.Format, Quality: q, JobID: uuid.NewString()}

	start := time.Now()
	var compressed []byte
	err := system.RunWithTimeout(ctx, e.options.StrategyTimeout, func(ctx context.Context) error {
		out, err := s.Compress(ctx, req.Content(), params)
		compressed = out
		return err
	})
	if err != nil {
		if !errors.IsStrategyError(err) {
			err = errors.NewStrategyError(
				errors.CategoryOf(err, errors.ErrorTimeout), s.Name(), req.FileType.String(), req.Format.String(), err,
			)
		}

		e.log.Warnw("Compression failed",
			"job", params.JobID,
			"file", req.FileName,
			"fileType", req.FileType,
			"format", req.Format,
			"strategy", s.Name(),
			"elapsed", time.Since(start),
			"error", err,
		)
		return nil, err
	}

	content, nullified := Guard(req.Content(), compressed)
	outcome := &domain.CompressionOutcome{
		Content:      content,
		Size:         len(content),
		OriginalSize: req.Size(),
		FileType:     req.FileType,
		Format:       req.Format,
		Strategy:     s.Name(),
		Quality:      q,
		Nullified:    nullified,
	}

	e.log.Infow("Compressed file",
		"job", params.JobID,
		"file", req.FileName,
		"fileType", req.FileType,
		"format", req.Format,
		"fallbackClassification", class.Fallback,
		"quality", q,
		"strategy", s.Name(),
		"originalSize", outcome.OriginalSize,
		"compressedSize", outcome.Size,
		"nullified", nullified,
		"elapsed", time.Since(start),
	)

	return outcome, nil
}

// Classify exposes the classifier verdict the engine would use for a file.
func (e *Engine) Classify(mediaType, fileName string) classifier.Classification {
	return classifier.Classify(mediaType, fileName)
}

// Options returns the engine's effective options after defaults.
func (e *Engine) Options() domain.EngineOptions {
	return *e.options
}

// Close releases the generic codec's encoders.
func (e *Engine) Close() error {
	return e.codec.Close()
}
