// Package compression provides the lossless byte-stream codecs used by the
// generic compressor: gzip, zstd, brotli, lz4 and snappy.
package compression

import (
	"fmt"

	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/pkg/pool"
)

const (
	// Gzip is the DEFLATE-family default. Generic results have always been gzip.
	Gzip domain.Algorithm = "gzip"

	// Zstd uses Zstandard frames.
	Zstd domain.Algorithm = "zstd"

	// Brotli uses RFC 7932 streams.
	Brotli domain.Algorithm = "brotli"

	// LZ4 uses LZ4 frames.
	LZ4 domain.Algorithm = "lz4"

	// Snappy uses the framed snappy format.
	Snappy domain.Algorithm = "snappy"
)

// Level bounds per algorithm. A level of 0 always means "algorithm default".
var levelBounds = map[domain.Algorithm][2]int{
	Gzip:   {1, 9},
	Zstd:   {int(FastestLevel), int(BestLevel)},
	Brotli: {1, 11},
	LZ4:    {1, 9},
	Snappy: {0, 0},
}

// File extensions conventionally used for each algorithm's output.
var extensions = map[domain.Algorithm]string{
	Gzip:   ".gz",
	Zstd:   ".zst",
	Brotli: ".br",
	LZ4:    ".lz4",
	Snappy: ".sz",
}

// Extension returns the file suffix for algo's output, e.g. ".gz".
func Extension(algo domain.Algorithm) string {
	return extensions[algo]
}

// Shared scratch buffers for encoders and decoders.
var buffers = pool.NewBufferPool(64 * 1024)

// Returns GenericOptions initialized with the recommended defaults.
func DefaultOptions() *domain.GenericOptions {
	return &domain.GenericOptions{Algorithm: Gzip, Level: 0}
}

// Algorithms lists every supported algorithm.
func Algorithms() []domain.Algorithm {
	return []domain.Algorithm{Gzip, Zstd, Brotli, LZ4, Snappy}
}

// Checks if the generic options are valid and returns an error if the
// algorithm is unknown or the level is outside the algorithm's range.
func Validate(input *domain.GenericOptions) error {
	bounds, ok := levelBounds[input.Algorithm]
	if !ok {
		return fmt.Errorf("unsupported compression algorithm: %q", input.Algorithm)
	}

	if input.Level == 0 {
		return nil
	}

	if input.Level < bounds[0] || input.Level > bounds[1] {
		return fmt.Errorf(
			"%s compression level must be between %d and %d, got %d", input.Algorithm, bounds[0], bounds[1], input.Level,
		)
	}

	return nil
}

// New creates the codec described by opts.
func New(opts *domain.GenericOptions) (ports.CompressionPort, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	switch opts.Algorithm {
	case Gzip:
		return NewGzipCompression(opts.Level), nil
	case Zstd:
		return NewZstdCompression(Options{Level: uint8(opts.Level)})
	case Brotli:
		return NewBrotliCompression(opts.Level), nil
	case LZ4:
		return NewLZ4Compression(opts.Level), nil
	case Snappy:
		return NewSnappyCompression(), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %q", opts.Algorithm)
	}
}
