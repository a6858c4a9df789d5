// Package quality translates a named compression level, or an explicit
// numeric override, into the quality value every strategy consumes.
package quality

import (
	"math"
	"strconv"
	"strings"

	"github.com/iamNilotpal/squash/internal/core/domain"
)

// Bounds for an effective quality.
const (
	MinQuality = 1
	MaxQuality = 100
)

// Canonical qualities for each named level.
const (
	LowQuality     = 85
	MediumQuality  = 70
	HighQuality    = 50
	MaximumQuality = 30

	// FallbackQuality is used when the level is not recognised.
	FallbackQuality = 70
)

// Per-strategy defaults, applied only when a strategy is invoked without a
// resolved quality (quality 0).
const (
	// ImageDefaultQuality is deliberately more aggressive than the generic default.
	ImageDefaultQuality = 40

	// MediaDefaultQuality keeps the transcoder on the high bitrate branch.
	MediaDefaultQuality = 70

	// LowBitrateThreshold: effective qualities below it get the low bitrate
	// and a half-resolution downscale.
	LowBitrateThreshold = 50
)

// Level describes a compression preset as presented to users.
type Level struct {
	Value   domain.CompressionLevel `json:"value"`
	Label   string                  `json:"label"`
	Quality int                     `json:"quality"`
}

var levels = []Level{
	{Value: domain.LevelLow, Label: "Low (Fast)", Quality: LowQuality},
	{Value: domain.LevelMedium, Label: "Medium (Balanced)", Quality: MediumQuality},
	{Value: domain.LevelHigh, Label: "High (Best)", Quality: HighQuality},
	{Value: domain.LevelMaximum, Label: "Maximum (Smallest)", Quality: MaximumQuality},
}

// Levels returns the preset table in ascending aggressiveness.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// ForLevel returns the canonical quality of level, or FallbackQuality when
// level is not one of the presets.
func ForLevel(level domain.CompressionLevel) int {
	for _, l := range levels {
		if l.Value == level {
			return l.Quality
		}
	}
	return FallbackQuality
}

// Resolve returns the effective quality for a job. An explicit quality
// always wins and is clamped to [MinQuality, MaxQuality]; otherwise the
// level's canonical value is used.
func Resolve(level domain.CompressionLevel, explicit *int) int {
	if explicit != nil {
		return Clamp(*explicit)
	}
	return ForLevel(level)
}

// Clamp limits q to [MinQuality, MaxQuality].
func Clamp(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// Parse reads a caller-supplied quality such as a form value. Empty or
// non-numeric input yields nil, meaning "no explicit quality". Values are
// clamped to [MinQuality, MaxQuality] and rounded to the nearest integer.
func Parse(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	// Clamp before converting; huge values would overflow int.
	q := int(math.Round(math.Max(MinQuality, math.Min(MaxQuality, f))))
	return &q
}

// OrDefault returns q when it was resolved (non-zero) and def otherwise.
func OrDefault(q, def int) int {
	if q == 0 {
		return def
	}
	return q
}
