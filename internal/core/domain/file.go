// Package domain defines the core types shared by the compression engine,
// its strategies and the callers that feed it.
package domain

// FileType is the coarse category an upload is classified into.
// The set is closed; anything the classifier cannot place becomes a
// DOCUMENT/TXT pair rather than an error.
type FileType string

const (
	FileTypeImage    FileType = "IMAGE"
	FileTypeDocument FileType = "DOCUMENT"
	FileTypeVideo    FileType = "VIDEO"
	FileTypeAudio    FileType = "AUDIO"
	FileTypeArchive  FileType = "ARCHIVE"
)

// FileTypes returns every member of the closed FileType set, in
// declaration order. The strategy registry uses it to prove it covers
// every category.
func FileTypes() []FileType {
	return []FileType{FileTypeImage, FileTypeDocument, FileTypeVideo, FileTypeAudio, FileTypeArchive}
}

// IsValid reports whether t is one of the declared file types.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypeImage, FileTypeDocument, FileTypeVideo, FileTypeAudio, FileTypeArchive:
		return true
	default:
		return false
	}
}

// IsMedia reports whether t is handled by the transcoder.
func (t FileType) IsMedia() bool {
	return t == FileTypeVideo || t == FileTypeAudio
}

func (t FileType) String() string {
	return string(t)
}

// Format is the specific encoding inside a FileType, taken from the file
// extension and uppercased. Formats are intentionally not validated against
// the FileType they came with: strategies route unknown values to their own
// default arm.
type Format string

// Image formats.
const (
	FormatJPEG Format = "JPEG"
	FormatJPG  Format = "JPG"
	FormatPNG  Format = "PNG"
	FormatWEBP Format = "WEBP"
	FormatAVIF Format = "AVIF"
	FormatGIF  Format = "GIF"
)

// Document formats.
const (
	FormatPDF  Format = "PDF"
	FormatDOC  Format = "DOC"
	FormatDOCX Format = "DOCX"
	FormatXLS  Format = "XLS"
	FormatXLSX Format = "XLSX"
	FormatPPT  Format = "PPT"
	FormatPPTX Format = "PPTX"
	FormatTXT  Format = "TXT"
)

// Video formats.
const (
	FormatMP4  Format = "MP4"
	FormatWEBM Format = "WEBM"
	FormatAVI  Format = "AVI"
	FormatMOV  Format = "MOV"
)

// Audio formats.
const (
	FormatMP3 Format = "MP3"
	FormatWAV Format = "WAV"
	FormatAAC Format = "AAC"
	FormatOGG Format = "OGG"
)

// Archive formats.
const (
	FormatZIP Format = "ZIP"
	FormatRAR Format = "RAR"
	Format7Z  Format = "7Z"
	FormatTAR Format = "TAR"
	FormatGZ  Format = "GZ"
)

// KnownFormats lists the formats each file type advertises to users.
// It is informational; classification never rejects a format that is
// missing from this table.
var KnownFormats = map[FileType][]Format{
	FileTypeImage:    {FormatJPEG, FormatPNG, FormatWEBP, FormatAVIF, FormatGIF},
	FileTypeDocument: {FormatPDF, FormatDOCX, FormatXLSX, FormatPPTX, FormatTXT},
	FileTypeVideo:    {FormatMP4, FormatWEBM, FormatAVI, FormatMOV},
	FileTypeAudio:    {FormatMP3, FormatWAV, FormatAAC, FormatOGG},
	FileTypeArchive:  {FormatZIP, Format7Z, FormatRAR, FormatTAR},
}

func (f Format) String() string {
	return string(f)
}
