package compression

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCompression produces standard gzip members.
type GzipCompression struct {
	level int
}

// NewGzipCompression creates a gzip codec. Level 0 selects gzip's default.
func NewGzipCompression(level int) *GzipCompression {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return &GzipCompression{level: level}
}

func (g *GzipCompression) Compress(data []byte) ([]byte, error) {
	return encodeStream(data, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriterLevel(w, g.level)
	})
}

func (g *GzipCompression) Decompress(data []byte) ([]byte, error) {
	return decodeStream(data, func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	})
}

func (g *GzipCompression) Close() error { return nil }

func (g *GzipCompression) Level() int { return g.level }

func (g *GzipCompression) Name() string { return string(Gzip) }
