package compression

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4Compression produces LZ4 frames.
type LZ4Compression struct {
	level int
}

// NewLZ4Compression creates an lz4 codec. Level 0 selects the fast mode,
// 1-9 select the high-compression levels.
func NewLZ4Compression(level int) *LZ4Compression {
	if level < 0 || level >= len(lz4Levels) {
		level = 0
	}
	return &LZ4Compression{level: level}
}

func (l *LZ4Compression) Compress(data []byte) ([]byte, error) {
	return encodeStream(data, func(w io.Writer) (io.WriteCloser, error) {
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[l.level])); err != nil {
			return nil, err
		}
		return zw, nil
	})
}

func (l *LZ4Compression) Decompress(data []byte) ([]byte, error) {
	return decodeStream(data, func(r io.Reader) (io.Reader, error) {
		return lz4.NewReader(r), nil
	})
}

func (l *LZ4Compression) Close() error { return nil }

func (l *LZ4Compression) Level() int { return l.level }

func (l *LZ4Compression) Name() string { return string(LZ4) }
