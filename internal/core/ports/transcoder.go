package ports

import "context"

// TranscodeParams describes one transcode invocation.
type TranscodeParams struct {
	// Bitrate is the target video bitrate, e.g. "400k". It is also used as
	// the rate-control buffer size.
	Bitrate string

	// Downscale halves width and height when true.
	Downscale bool
}

// Transcoder converts the media file at inputName inside ws into outputName
// inside the same workspace. Cancelling ctx must stop the transcode.
type Transcoder interface {
	Transcode(ctx context.Context, ws Workspace, inputName, outputName string, params TranscodeParams) error
}
