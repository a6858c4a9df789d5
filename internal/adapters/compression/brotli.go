package compression

import (
	"io"

	"github.com/andybalholm/brotli"
)

// BrotliCompression produces brotli streams.
type BrotliCompression struct {
	level int
}

// NewBrotliCompression creates a brotli codec. Level 0 selects brotli's default.
func NewBrotliCompression(level int) *BrotliCompression {
	if level <= 0 || level > brotli.BestCompression {
		level = brotli.DefaultCompression
	}
	return &BrotliCompression{level: level}
}

func (b *BrotliCompression) Compress(data []byte) ([]byte, error) {
	return encodeStream(data, func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriterLevel(w, b.level), nil
	})
}

func (b *BrotliCompression) Decompress(data []byte) ([]byte, error) {
	return decodeStream(data, func(r io.Reader) (io.Reader, error) {
		return brotli.NewReader(r), nil
	})
}

func (b *BrotliCompression) Close() error { return nil }

func (b *BrotliCompression) Level() int { return b.level }

func (b *BrotliCompression) Name() string { return string(Brotli) }
