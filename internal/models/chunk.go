package models

// DocumentChunk is one retrievable unit of text extracted from an
// uploaded document. For pdf/txt documents Ordinal is the page number;
// for csv documents it is the row number. Chunks are immutable once
// written to the index.
type DocumentChunk struct {
	// Content is the chunk text. Never empty.
	Content string `json:"content"`

	// Name identifies the source document (the uploaded object key).
	Name string `json:"name"`

	// Ordinal preserves the original document order: page number for
	// pdf/txt, row number for csv. 1-based.
	Ordinal int `json:"ordinal"`
}

// FileType tags the supported upload formats.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeTXT FileType = "txt"
	FileTypeCSV FileType = "csv"
)

// ParseFileType maps a file extension (without the dot) to a FileType.
// The second return value is false for unrecognized extensions.
func ParseFileType(ext string) (FileType, bool) {
	switch FileType(ext) {
	case FileTypePDF, FileTypeTXT, FileTypeCSV:
		return FileType(ext), true
	}
	return "", false
}
