package domain

import (
	"fmt"
	"math"
	"strconv"
)

// CompressionRequest is the immutable description of one compression job.
// It is built once at the system boundary and handed to the engine, which
// never mutates it.
type CompressionRequest struct {
	// content is an owned copy of the uploaded bytes.
	content []byte

	// DeclaredMediaType is the media type the caller reported, e.g. "image/png".
	// It may be empty.
	DeclaredMediaType string

	// FileName is the name the file was uploaded under. Only its extension
	// carries meaning for the engine.
	FileName string

	// FileType and Format are the classifier's verdict for this upload.
	FileType FileType
	Format   Format

	// Level is the named preset requested by the caller.
	Level CompressionLevel

	// ExplicitQuality overrides the level's canonical quality when non-nil.
	ExplicitQuality *int
}

// NewRequest builds a CompressionRequest, copying content so later changes
// to the caller's slice cannot leak into the job.
func NewRequest(
	content []byte,
	mediaType, fileName string,
	fileType FileType,
	format Format,
	level CompressionLevel,
	explicitQuality *int,
) *CompressionRequest {
	owned := make([]byte, len(content))
	copy(owned, content)

	var quality *int
	if explicitQuality != nil {
		q := *explicitQuality
		quality = &q
	}

	return &CompressionRequest{
		content:           owned,
		DeclaredMediaType: mediaType,
		FileName:          fileName,
		FileType:          fileType,
		Format:            format,
		Level:             level,
		ExplicitQuality:   quality,
	}
}

// Content returns the request's bytes. Callers must treat the slice as
// read-only.
func (r *CompressionRequest) Content() []byte {
	return r.content
}

// Size returns the length of the original content in bytes.
func (r *CompressionRequest) Size() int {
	return len(r.content)
}

// CompressionOutcome is what the engine hands back for a finished job.
type CompressionOutcome struct {
	// Content holds the bytes to deliver: either the strategy output or,
	// when the Size-Guard intervened, the original upload.
	Content []byte

	// Size is len(Content). It never exceeds OriginalSize.
	Size int

	// OriginalSize is the size of the uploaded content.
	OriginalSize int

	// FileType and Format echo the classifier's verdict for the upload.
	FileType FileType
	Format   Format

	// Strategy names the strategy that produced the result.
	Strategy string

	// Quality is the effective quality the strategy ran with.
	Quality int

	// Nullified is true when the strategy output was not smaller than the
	// original and the original bytes were returned instead.
	Nullified bool
}

// Ratio returns the space saved as a whole percentage, rounded the same way
// the upload API reports it. An empty original yields 0.
func (o *CompressionOutcome) Ratio() int {
	if o.OriginalSize == 0 {
		return 0
	}
	return int(math.Round(float64(o.OriginalSize-o.Size) / float64(o.OriginalSize) * 100))
}

// FormatSize renders a byte count for humans, e.g. "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	sizes := []string{"Bytes", "KB", "MB", "GB"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := float64(bytes) / math.Pow(k, float64(i))
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.2f", value), 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizes[i]
}
