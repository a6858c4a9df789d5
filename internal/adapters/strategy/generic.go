// Package strategy holds the format-specific compressors the engine
// dispatches to: image recode, document sanitizer, archive repackager,
// media transcoder and the generic byte compressor fallback.
package strategy

import (
	"context"

	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/pkg/errors"
)

// Strategy names as reported in outcomes and logs.
const (
	NameImage    = "image"
	NameDocument = "document"
	NameArchive  = "archive"
	NameMedia    = "media"
	NameGeneric  = "generic"
)

// Generic applies a lossless byte-stream codec to the raw buffer. It is the
// engine's default arm and the fallback for non-PDF documents.
type Generic struct {
	codec ports.CompressionPort
}

func NewGeneric(codec ports.CompressionPort) *Generic {
	return &Generic{codec: codec}
}

func (g *Generic) Name() string { return NameGeneric }

// Algorithm reports the codec in use, e.g. "gzip".
func (g *Generic) Algorithm() string { return g.codec.Name() }

func (g *Generic) Compress(ctx context.Context, data []byte, params ports.StrategyParams) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fail(errors.ErrorTimeout, NameGeneric, params, err)
	}

	out, err := g.codec.Compress(data)
	if err != nil {
		return nil, fail(errors.ErrorCompression, NameGeneric, params, err)
	}
	return out, nil
}

// fail wraps err as a StrategyError for the job described by params.
func fail(category errors.ErrorCategory, strategy string, params ports.StrategyParams, err error) error {
	return errors.NewStrategyError(
		errors.CategoryOf(err, category), strategy, params.FileType.String(), params.Format.String(), err,
	)
}
