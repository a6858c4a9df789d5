package compression

import (
	"io"

	"github.com/golang/snappy"
)

// SnappyCompression produces framed snappy streams. Snappy has no levels.
type SnappyCompression struct{}

func NewSnappyCompression() *SnappyCompression {
	return &SnappyCompression{}
}

func (s *SnappyCompression) Compress(data []byte) ([]byte, error) {
	return encodeStream(data, func(w io.Writer) (io.WriteCloser, error) {
		return snappy.NewBufferedWriter(w), nil
	})
}

func (s *SnappyCompression) Decompress(data []byte) ([]byte, error) {
	return decodeStream(data, func(r io.Reader) (io.Reader, error) {
		return snappy.NewReader(r), nil
	})
}

func (s *SnappyCompression) Close() error { return nil }

func (s *SnappyCompression) Level() int { return 0 }

func (s *SnappyCompression) Name() string { return string(Snappy) }
