package engine

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iamNilotpal/squash/internal/adapters/staging"
	"github.com/iamNilotpal/squash/internal/adapters/strategy"
	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/internal/core/services/quality"
	"github.com/iamNilotpal/squash/pkg/errors"
)

// recordingTranscoder writes an output of a fixed ratio of the input and
// remembers the parameters it was called with.
type recordingTranscoder struct {
	ratio  float64
	params ports.TranscodeParams
	output string
}

func (r *recordingTranscoder) Transcode(ctx context.Context, ws ports.Workspace, in, out string, p ports.TranscodeParams) error {
	r.params, r.output = p, out
	data, err := ws.ReadFile(in)
	if err != nil {
		return err
	}
	return ws.WriteFile(out, make([]byte, int(float64(len(data))*r.ratio)))
}

// blockingStrategy waits for its context to end.
type blockingStrategy struct{}

func (blockingStrategy) Name() string { return "blocking" }

func (blockingStrategy) Compress(ctx context.Context, _ []byte, _ ports.StrategyParams) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type testEngine struct {
	*Engine
	mem  *staging.Memory
	tc   *recordingTranscoder
	logs *observer.ObservedLogs
}

func newTestEngine(t *testing.T, opts *domain.EngineOptions, extra ...Option) *testEngine {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	mem := staging.NewMemory("t-")
	tc := &recordingTranscoder{ratio: 0.5}

	e, err := New(opts, zap.New(core).Sugar(), append([]Option{WithStaging(mem), WithTranscoder(tc)}, extra...)...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })

	return &testEngine{Engine: e, mem: mem, tc: tc, logs: logs}
}

func photo(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x * y), A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	return buf.Bytes()
}

func intPtr(v int) *int { return &v }

func TestOutcomeNeverGrows(t *testing.T) {
	e := newTestEngine(t, nil)
	text := bytes.Repeat([]byte("lorem ipsum dolor sit amet "), 100)

	tests := []struct {
		name      string
		mediaType string
		fileName  string
		content   []byte
	}{
		{name: "image", mediaType: "image/jpeg", fileName: "a.jpg", content: photo(t, 64, 64)},
		{name: "document", mediaType: "text/plain", fileName: "a.txt", content: text},
		{name: "archive", mediaType: "application/zip", fileName: "a.zip", content: []byte("tiny")},
		{name: "video", mediaType: "video/mp4", fileName: "a.mp4", content: text},
		{name: "generic fallback", mediaType: "", fileName: "blob.bin", content: []byte{1}},
		{name: "empty", mediaType: "", fileName: "empty.txt", content: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Compress(context.Background(), Input{
				Content: tt.content, DeclaredMediaType: tt.mediaType, FileName: tt.fileName, CompressionLevel: "medium",
			})
			require.NoError(t, err)
			assert.LessOrEqual(t, out.Size, len(tt.content))
			assert.Equal(t, len(out.Content), out.Size)
			assert.Equal(t, len(tt.content), out.OriginalSize)
		})
	}
	assert.Zero(t, e.mem.Live())
}

func TestTinyPNGIsReturnedUnchanged(t *testing.T) {
	e := newTestEngine(t, nil)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	input := buf.Bytes()

	out, err := e.Compress(context.Background(), Input{
		Content: input, DeclaredMediaType: "image/png", FileName: "dot.png", CompressionLevel: "maximum",
	})
	require.NoError(t, err)
	assert.True(t, out.Nullified)
	assert.Equal(t, input, out.Content)
	assert.Equal(t, len(input), out.Size)
	assert.Zero(t, out.Ratio())
}

func TestUnknownFileGoesThroughGenericCompressor(t *testing.T) {
	e := newTestEngine(t, nil)
	input := bytes.Repeat([]byte("meeting notes\n"), 200)

	out, err := e.Compress(context.Background(), Input{Content: input, FileName: "notes.xyz", CompressionLevel: "low"})
	require.NoError(t, err)

	assert.Equal(t, strategy.NameDocument, out.Strategy)
	assert.False(t, out.Nullified)
	assert.Equal(t, []byte{0x1f, 0x8b}, out.Content[:2])
	assert.Greater(t, out.Ratio(), 50)

	entries := e.logs.FilterMessage("Compressed file").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "DOCUMENT", fields["fileType"])
	assert.Equal(t, "TXT", fields["format"])
	assert.Equal(t, true, fields["fallbackClassification"])
}

func TestLargeVideoAtMaximumLevel(t *testing.T) {
	e := newTestEngine(t, nil)
	input := make([]byte, 10<<20)

	out, err := e.Compress(context.Background(), Input{
		Content: input, DeclaredMediaType: "video/mp4", FileName: "movie.mp4", CompressionLevel: "maximum",
	})
	require.NoError(t, err)

	assert.Equal(t, strategy.NameMedia, out.Strategy)
	assert.Equal(t, quality.MaximumQuality, out.Quality)
	assert.Equal(t, ports.TranscodeParams{Bitrate: strategy.LowBitrate, Downscale: true}, e.tc.params)
	assert.Equal(t, "output.mp4", e.tc.output)
	assert.Equal(t, 5<<20, out.Size)
	assert.Zero(t, e.mem.Live())
}

func TestMediaGrowthIsNullified(t *testing.T) {
	e := newTestEngine(t, nil)
	e.tc.ratio = 1.5
	input := bytes.Repeat([]byte{7}, 4096)

	out, err := e.Compress(context.Background(), Input{Content: input, DeclaredMediaType: "audio/wav", FileName: "a.wav"})
	require.NoError(t, err)
	assert.True(t, out.Nullified)
	assert.Equal(t, input, out.Content)
	assert.Equal(t, ports.TranscodeParams{Bitrate: strategy.HighBitrate}, e.tc.params)
}

func TestQualityResolution(t *testing.T) {
	e := newTestEngine(t, nil)
	input := photo(t, 96, 96)

	tests := []struct {
		name     string
		level    string
		explicit *int
		want     int
	}{
		{name: "level only", level: "high", want: quality.HighQuality},
		{name: "explicit overrides level", level: "maximum", explicit: intPtr(90), want: 90},
		{name: "explicit clamped high", level: "low", explicit: intPtr(250), want: quality.MaxQuality},
		{name: "explicit clamped low", level: "low", explicit: intPtr(-5), want: quality.MinQuality},
		{name: "unknown level", level: "ultra", want: quality.FallbackQuality},
		{name: "empty level uses default", level: "", want: quality.MediumQuality},
		{name: "level is case insensitive", level: "LOW", want: quality.LowQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Compress(context.Background(), Input{
				Content: input, DeclaredMediaType: "image/jpeg", FileName: "p.jpg",
				CompressionLevel: tt.level, ExplicitQuality: tt.explicit,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Quality)
		})
	}
}

func TestExplicitQualityChangesOutput(t *testing.T) {
	e := newTestEngine(t, nil)
	input := photo(t, 128, 128)
	in := Input{Content: input, DeclaredMediaType: "image/jpeg", FileName: "p.jpg", CompressionLevel: "maximum"}

	levelOnly, err := e.Compress(context.Background(), in)
	require.NoError(t, err)

	in.ExplicitQuality = intPtr(95)
	explicit, err := e.Compress(context.Background(), in)
	require.NoError(t, err)

	assert.Greater(t, explicit.Size, levelOnly.Size)
}

func TestInputIsNotRetained(t *testing.T) {
	e := newTestEngine(t, nil)
	input := []byte{1}

	out, err := e.Compress(context.Background(), Input{Content: input, FileName: "x.bin"})
	require.NoError(t, err)
	require.True(t, out.Nullified)

	input[0] = 2
	assert.Equal(t, []byte{1}, out.Content)
}

func TestStrategyTimeout(t *testing.T) {
	e := newTestEngine(t, &domain.EngineOptions{StrategyTimeout: 20 * time.Millisecond},
		WithStrategy(domain.FileTypeVideo, blockingStrategy{}),
	)

	_, err := e.Compress(context.Background(), Input{Content: []byte("v"), DeclaredMediaType: "video/mp4", FileName: "v.mp4"})
	require.Error(t, err)

	se := errors.AsStrategyError(err)
	require.NotNil(t, se)
	assert.Equal(t, errors.ErrorTimeout, se.Category)
	assert.Equal(t, "blocking", se.Strategy)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, 1, e.logs.FilterMessage("Compression failed").Len())
}

func TestCancelledContext(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Compress(ctx, Input{Content: []byte("data"), FileName: "a.txt"})
	assert.True(t, errors.IsStrategyError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStrategyFailurePropagates(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Compress(context.Background(), Input{Content: []byte("not a png"), DeclaredMediaType: "image/png", FileName: "x.png"})
	se := errors.AsStrategyError(err)
	require.NotNil(t, se)
	assert.Equal(t, strategy.NameImage, se.Strategy)
	assert.Equal(t, errors.ErrorDecode, se.Category)
	assert.False(t, se.IsRetryable())
}

func TestNewRejectsMemoryStagingForFFmpeg(t *testing.T) {
	_, err := New(&domain.EngineOptions{
		StagingOptions: &domain.StagingOptions{Mode: domain.StagingMemory},
	}, zap.NewNop().Sugar())

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.ErrorIs(t, err, errors.ErrMediaNeedsDisk)
}

func TestNewDefaults(t *testing.T) {
	e, err := New(nil, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer e.Close()

	opts := e.Options()
	assert.Equal(t, DefaultStrategyTimeout, opts.StrategyTimeout)
	assert.Equal(t, domain.LevelMedium, opts.DefaultLevel)
	assert.Equal(t, domain.Algorithm("gzip"), opts.GenericOptions.Algorithm)
	assert.Equal(t, domain.StagingDisk, opts.StagingOptions.Mode)
	assert.Equal(t, "ffmpeg", opts.MediaOptions.FFmpegPath)
}

func TestPNGLevelsProduceDifferentSizes(t *testing.T) {
	e := newTestEngine(t, nil)

	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	sizes := map[string]int{}
	for _, level := range []string{"low", "maximum"} {
		out, err := e.Compress(context.Background(), Input{
			Content: buf.Bytes(), DeclaredMediaType: "image/png", FileName: "shot.png", CompressionLevel: level,
		})
		require.NoError(t, err)
		sizes[level] = out.Size
	}

	assert.Less(t, sizes["maximum"], sizes["low"])
}
