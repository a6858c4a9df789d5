// Package transcoder runs media through an external ffmpeg binary.
package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
)

const (
	DefaultBinary = "ffmpeg"

	// stderrTail bounds how much ffmpeg diagnostic output ends up in errors.
	stderrTail = 1024
)

// FFmpeg is a ports.Transcoder backed by the ffmpeg command line tool.
// The process is started with the job's context and is killed when it ends.
type FFmpeg struct {
	binary string
	log    *zap.SugaredLogger
}

func DefaultOptions() *domain.MediaOptions {
	return &domain.MediaOptions{FFmpegPath: DefaultBinary}
}

func New(opts *domain.MediaOptions, log *zap.SugaredLogger) *FFmpeg {
	binary := DefaultBinary
	if opts != nil && opts.FFmpegPath != "" {
		binary = opts.FFmpegPath
	}
	return &FFmpeg{binary: binary, log: log}
}

// Args builds the ffmpeg argument list for one transcode. The output is
// always MP4; the bitrate doubles as the rate-control buffer size.
func Args(input, output string, params ports.TranscodeParams) []string {
	kwargs := ffmpeg.KwArgs{
		"b:v":     params.Bitrate,
		"bufsize": params.Bitrate,
		"f":       "mp4",
	}
	if params.Downscale {
		kwargs["vf"] = "scale=iw/2:ih/2"
	}

	return ffmpeg.Input(input).Output(output, kwargs).OverWriteOutput().GetArgs()
}

func (f *FFmpeg) Transcode(ctx context.Context, ws ports.Workspace, inputName, outputName string, params ports.TranscodeParams) error {
	input, output := ws.Path(inputName), ws.Path(outputName)

	// The workspace has to be backed by real files for ffmpeg to open them.
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("transcoder input not on disk: %w", err)
	}

	args := Args(input, output, params)
	f.log.Debugw("Starting transcode", "binary", f.binary, "args", args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.binary, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s failed: %w: %s", f.binary, err, tail(stderr.Bytes()))
	}

	f.log.Debugw("Transcode finished", "output", output)
	return nil
}

func tail(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) > stderrTail {
		return b[len(b)-stderrTail:]
	}
	return b
}
