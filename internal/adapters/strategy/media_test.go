package strategy

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/squash/internal/adapters/staging"
	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/pkg/errors"
)

// fakeTranscoder halves its input and records what it was asked to do.
type fakeTranscoder struct {
	err    error
	calls  int
	input  string
	output string
	params ports.TranscodeParams
}

func (f *fakeTranscoder) Transcode(ctx context.Context, ws ports.Workspace, in, out string, p ports.TranscodeParams) error {
	f.calls++
	f.input, f.output, f.params = in, out, p
	if f.err != nil {
		return f.err
	}

	data, err := ws.ReadFile(in)
	if err != nil {
		return err
	}
	return ws.WriteFile(out, data[:len(data)/2])
}

func mediaParams(fileType domain.FileType, format domain.Format, q int) ports.StrategyParams {
	return ports.StrategyParams{FileType: fileType, Format: format, Quality: q, JobID: "job-1"}
}

func TestTranscodeSettings(t *testing.T) {
	tests := []struct {
		quality   int
		bitrate   string
		downscale bool
	}{
		{quality: 30, bitrate: LowBitrate, downscale: true},
		{quality: 49, bitrate: LowBitrate, downscale: true},
		{quality: 50, bitrate: HighBitrate},
		{quality: 85, bitrate: HighBitrate},
		{quality: 0, bitrate: HighBitrate},
	}

	for _, tt := range tests {
		got := TranscodeSettings(tt.quality)
		assert.Equal(t, tt.bitrate, got.Bitrate, "quality %d", tt.quality)
		assert.Equal(t, tt.downscale, got.Downscale, "quality %d", tt.quality)
	}
}

func TestMediaTranscodesThroughWorkspace(t *testing.T) {
	mem := staging.NewMemory("t-")
	tc := &fakeTranscoder{}
	input := bytes.Repeat([]byte{0xAB}, 1000)

	out, err := NewMedia(mem, tc).Compress(context.Background(), input, mediaParams(domain.FileTypeVideo, domain.FormatMOV, 30))
	require.NoError(t, err)

	assert.Len(t, out, 500)
	assert.Equal(t, 1, tc.calls)
	assert.Equal(t, "input.mov", tc.input)
	assert.Equal(t, "output.mp4", tc.output)
	assert.Equal(t, ports.TranscodeParams{Bitrate: LowBitrate, Downscale: true}, tc.params)
	assert.Zero(t, mem.Live())
}

func TestMediaPropagatesTranscoderFailure(t *testing.T) {
	mem := staging.NewMemory("t-")
	tc := &fakeTranscoder{err: stderrors.New("ffmpeg exited with status 1")}

	_, err := NewMedia(mem, tc).Compress(context.Background(), []byte("audio"), mediaParams(domain.FileTypeAudio, domain.FormatWAV, 70))
	require.Error(t, err)

	se := errors.AsStrategyError(err)
	require.NotNil(t, se)
	assert.Equal(t, errors.ErrorTranscode, se.Category)
	assert.Equal(t, NameMedia, se.Strategy)
	assert.Equal(t, "AUDIO", se.FileType)
	assert.Zero(t, mem.Live())
}

func TestMediaReportsCancellationAsTimeout(t *testing.T) {
	mem := staging.NewMemory("t-")
	tc := &fakeTranscoder{err: context.DeadlineExceeded}

	_, err := NewMedia(mem, tc).Compress(context.Background(), []byte("video"), mediaParams(domain.FileTypeVideo, domain.FormatMP4, 70))

	se := errors.AsStrategyError(err)
	require.NotNil(t, se)
	assert.Equal(t, errors.ErrorTimeout, se.Category)
	assert.True(t, se.IsRetryable())
	assert.Zero(t, mem.Live())
}

func TestMediaMissingOutput(t *testing.T) {
	mem := staging.NewMemory("t-")

	_, err := NewMedia(mem, noOutput{}).Compress(context.Background(), []byte("video"), mediaParams(domain.FileTypeVideo, "", 70))

	se := errors.AsStrategyError(err)
	require.NotNil(t, se)
	assert.Equal(t, errors.ErrorStorage, se.Category)
	assert.Zero(t, mem.Live())
}

type noOutput struct{}

func (noOutput) Transcode(context.Context, ports.Workspace, string, string, ports.TranscodeParams) error {
	return nil
}
