package strategy

import (
	"context"
	"strings"

	"go.uber.org/multierr"

	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/internal/core/services/quality"
	"github.com/iamNilotpal/squash/pkg/errors"
)

const (
	mediaOutput = "output.mp4"

	LowBitrate  = "400k"
	HighBitrate = "800k"
)

// Media stages the upload in a private workspace and runs it through the
// transcoder. Audio and video both come out as MP4.
type Media struct {
	staging    ports.Staging
	transcoder ports.Transcoder
}

func NewMedia(staging ports.Staging, transcoder ports.Transcoder) *Media {
	return &Media{staging: staging, transcoder: transcoder}
}

func (m *Media) Name() string { return NameMedia }

// TranscodeSettings maps an effective quality onto transcoder parameters.
// Qualities under the threshold get the low bitrate and half resolution.
func TranscodeSettings(q int) ports.TranscodeParams {
	q = quality.OrDefault(q, quality.MediaDefaultQuality)
	if q < quality.LowBitrateThreshold {
		return ports.TranscodeParams{Bitrate: LowBitrate, Downscale: true}
	}
	return ports.TranscodeParams{Bitrate: HighBitrate}
}

func (m *Media) Compress(ctx context.Context, data []byte, params ports.StrategyParams) (out []byte, err error) {
	ws, err := m.staging.Acquire(ctx, params.JobID)
	if err != nil {
		return nil, fail(errors.ErrorStorage, NameMedia, params, err)
	}
	defer func() {
		if rerr := ws.Release(); rerr != nil {
			err = multierr.Append(err, fail(errors.ErrorStorage, NameMedia, params, rerr))
			out = nil
		}
	}()

	input := inputName(params.Format.String())
	if err := ws.WriteFile(input, data); err != nil {
		return nil, fail(errors.ErrorStorage, NameMedia, params, err)
	}

	if err := m.transcoder.Transcode(ctx, ws, input, mediaOutput, TranscodeSettings(params.Quality)); err != nil {
		return nil, fail(errors.ErrorTranscode, NameMedia, params, err)
	}

	out, err = ws.ReadFile(mediaOutput)
	if err != nil {
		return nil, fail(errors.ErrorStorage, NameMedia, params, err)
	}
	return out, nil
}

// inputName keeps the upload's extension so the transcoder can probe it.
func inputName(format string) string {
	if format == "" {
		return "input"
	}
	return "input." + strings.ToLower(format)
}
