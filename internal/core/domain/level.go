package domain

import "strings"

// CompressionLevel is the named preset a user picks. Each level carries a
// canonical quality that is used unless an explicit quality overrides it.
type CompressionLevel string

const (
	LevelLow     CompressionLevel = "low"
	LevelMedium  CompressionLevel = "medium"
	LevelHigh    CompressionLevel = "high"
	LevelMaximum CompressionLevel = "maximum"
)

// ParseCompressionLevel normalizes s into a CompressionLevel. The second
// return value is false when s names no known level; the level is still
// returned so the quality mapping can apply its conservative fallback.
func ParseCompressionLevel(s string) (CompressionLevel, bool) {
	level := CompressionLevel(strings.ToLower(strings.TrimSpace(s)))
	return level, level.IsValid()
}

// IsValid reports whether l is one of the four declared presets.
func (l CompressionLevel) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelMaximum:
		return true
	default:
		return false
	}
}

func (l CompressionLevel) String() string {
	return string(l)
}
