// Package classifier maps an upload's declared media type and file name to
// the (FileType, Format) pair that selects a compression strategy.
package classifier

import (
	"strings"

	"github.com/iamNilotpal/squash/internal/core/domain"
)

var documentExtensions = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"xls":  {},
	"xlsx": {},
	"ppt":  {},
	"pptx": {},
	"txt":  {},
}

var archiveExtensions = map[string]struct{}{
	"zip": {},
	"rar": {},
	"7z":  {},
	"tar": {},
	"gz":  {},
}

// Classification is the classifier's verdict.
type Classification struct {
	FileType domain.FileType
	Format   domain.Format

	// Fallback is true when nothing matched and the DOCUMENT/TXT default was used.
	Fallback bool
}

// Classify derives the file type and format for an upload. It is total:
// every input gets a classification, with DOCUMENT/TXT as the declared
// fallback. Rules are evaluated in order and the first match wins:
//  1. image/*, video/* and audio/* media types, format from the extension
//  2. a known document extension
//  3. a known archive extension
//  4. DOCUMENT/TXT
func Classify(mediaType, fileName string) Classification {
	mime := strings.ToLower(strings.TrimSpace(mediaType))
	name := strings.ToLower(fileName)
	ext := extension(name)

	switch {
	case strings.HasPrefix(mime, "image/"):
		return Classification{FileType: domain.FileTypeImage, Format: formatOf(ext)}
	case strings.HasPrefix(mime, "video/"):
		return Classification{FileType: domain.FileTypeVideo, Format: formatOf(ext)}
	case strings.HasPrefix(mime, "audio/"):
		return Classification{FileType: domain.FileTypeAudio, Format: formatOf(ext)}
	}

	if hasExtension(name, documentExtensions) {
		return Classification{FileType: domain.FileTypeDocument, Format: formatOf(ext)}
	}

	if hasExtension(name, archiveExtensions) {
		return Classification{FileType: domain.FileTypeArchive, Format: formatOf(ext)}
	}

	return Classification{FileType: domain.FileTypeDocument, Format: domain.FormatTXT, Fallback: true}
}

// extension returns everything after the last dot. A name without a dot is
// returned whole, so "README" with an image/* type yields format "README".
func extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// hasExtension requires a real ".ext" suffix; a bare "pdf" is not a document.
func hasExtension(name string, set map[string]struct{}) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	_, ok := set[name[i+1:]]
	return ok
}

func formatOf(ext string) domain.Format {
	return domain.Format(strings.ToUpper(ext))
}
