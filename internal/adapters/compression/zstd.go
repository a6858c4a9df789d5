package compression

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

type Options struct {
	Level              uint8
	EncoderConcurrency uint8
	DecoderConcurrency uint8
}

// ZstdCompression implements CompressionPort using the zstd compression algorithm.
// It keeps one encoder and one decoder for the lifetime of the codec; both
// are safe for concurrent EncodeAll/DecodeAll calls.
type ZstdCompression struct {
	level   uint8         // Current compression level (1-4)
	mu      sync.RWMutex  // Protects the codec against use after Close
	decoder *zstd.Decoder // Thread-safe decoder instance for decompression
	encoder *zstd.Encoder // Thread-safe encoder instance for compression
}

// Compression level constants define the trade-off between compression ratio and speed.
// Higher levels provide better compression at the cost of increased CPU usage and time.
const (
	FastestLevel uint8 = 1 // Optimized for speed with minimal compression
	DefaultLevel uint8 = 3 // Better compression, the right trade-off for one-shot uploads
	BestLevel    uint8 = 4 // Maximum compression ratio, higher CPU usage
)

// NewZstdCompression creates a new zstd compression instance with the specified level.
// Level 0 selects DefaultLevel; zero concurrency lets the library pick.
//
// Returns an error if:
// - The compression level is invalid
// - The encoder or decoder initialization fails
func NewZstdCompression(opts Options) (*ZstdCompression, error) {
	if opts.Level == 0 {
		opts.Level = DefaultLevel
	}

	if opts.Level < FastestLevel || opts.Level > BestLevel {
		return nil, fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, opts.Level)
	}

	encoderOpts := []zstd.EOption{zstd.WithEncoderLevel(zstd.EncoderLevel(opts.Level))}
	if opts.EncoderConcurrency > 0 {
		encoderOpts = append(encoderOpts, zstd.WithEncoderConcurrency(int(opts.EncoderConcurrency)))
	}

	encoder, err := zstd.NewWriter(nil, encoderOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	decoderOpts := []zstd.DOption{}
	if opts.DecoderConcurrency > 0 {
		decoderOpts = append(decoderOpts, zstd.WithDecoderConcurrency(int(opts.DecoderConcurrency)))
	}

	decoder, err := zstd.NewReader(nil, decoderOpts...)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &ZstdCompression{encoder: encoder, decoder: decoder, level: opts.Level}, nil
}

// Compress compresses the input data into a single zstd frame.
// The operation is thread-safe and can be called concurrently.
func (z *ZstdCompression) Compress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	return z.encoder.EncodeAll(data, nil), nil
}

// Decompress restores the original data from its compressed form.
// The operation is thread-safe and can be called concurrently.
//
// Returns an error if:
// - The input data is not valid zstd compressed data
// - Decompression fails for any other reason
func (z *ZstdCompression) Decompress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	decompressed, err := z.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}

	return decompressed, nil
}

// Level returns the current compression level.
func (z *ZstdCompression) Level() int {
	return int(z.level)
}

func (z *ZstdCompression) Name() string { return string(Zstd) }

// Close releases all resources used by the compression instance.
// After closing, the instance cannot be used for compression or decompression.
func (z *ZstdCompression) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if err := z.encoder.Close(); err != nil {
		return fmt.Errorf("error closing encoder : %w", err)
	}

	z.decoder.Close()
	return nil
}
