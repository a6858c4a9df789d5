package domain

import "time"

// EngineOptions defines the configuration parameters for the compression engine.
// Zero values are replaced by defaults before the engine starts.
type EngineOptions struct {
	// StrategyTimeout bounds how long a single strategy may run. When it
	// elapses the strategy's context is cancelled, which also kills any
	// external transcoder process.
	//
	// Default: 10 minutes
	StrategyTimeout time.Duration

	// DefaultLevel is used when a caller does not name a compression level.
	//
	// Default: medium
	DefaultLevel CompressionLevel

	// GenericOptions configures the lossless byte-stream fallback.
	GenericOptions *GenericOptions

	// StagingOptions configures where archive and media jobs stage bytes.
	StagingOptions *StagingOptions

	// MediaOptions configures the external transcoder.
	MediaOptions *MediaOptions
}

// Algorithm names a lossless byte-stream compression algorithm.
type Algorithm string

// GenericOptions configures the generic byte compressor.
type GenericOptions struct {
	// Algorithm picks the codec. gzip matches what downloads of generic
	// results have always been encoded with.
	//
	// Default: gzip
	Algorithm Algorithm

	// Level is the algorithm-specific compression level. Zero selects the
	// algorithm's own default.
	//   gzip:   1-9
	//   zstd:   1-4 (fastest, default, better, best)
	//   brotli: 0-11
	//   lz4:    1-9
	//   snappy: ignored
	Level int
}

// StagingMode selects the staging adapter.
type StagingMode string

const (
	StagingDisk   StagingMode = "disk"
	StagingMemory StagingMode = "memory"
)

// StagingOptions configures job-scoped temporary workspaces.
type StagingOptions struct {
	// Mode selects disk or in-memory workspaces. Media jobs need real files
	// for the transcoder and therefore always require disk staging.
	//
	// Default: disk
	Mode StagingMode

	// Directory is the parent for disk workspaces. Empty means os.TempDir().
	Directory string

	// Prefix is prepended to every workspace name.
	//
	// Default: "squash-"
	Prefix string
}

// MediaOptions configures the transcoder used for video and audio.
type MediaOptions struct {
	// FFmpegPath is the ffmpeg binary to execute.
	//
	// Default: "ffmpeg"
	FFmpegPath string
}
