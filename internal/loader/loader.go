// Package loader fetches uploaded documents from blob storage and
// converts them into indexable chunks.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/hyecheol/ragchat/internal/models"
	"github.com/hyecheol/ragchat/internal/splitter"
)

// Sentinel errors for document loading. Check with errors.Is.
var (
	// ErrUnsupportedFileType indicates an extension outside pdf/txt/csv.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrSourceFetch indicates the backing object could not be retrieved.
	ErrSourceFetch = errors.New("source fetch failed")
)

// BlobStore fetches a raw object by key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Loader converts stored objects into document chunks.
type Loader struct {
	blobs BlobStore
	split splitter.Config
}

// New creates a loader that chunks pdf/txt content with the given
// splitter configuration. CSV content is chunked per row instead.
func New(blobs BlobStore, split splitter.Config) *Loader {
	return &Loader{blobs: blobs, split: split}
}

// Load fetches the object and returns its chunks in document order.
// The file type is classified from the key's extension.
func (l *Loader) Load(ctx context.Context, key string) ([]models.DocumentChunk, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	fileType, ok := models.ParseFileType(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	data, err := l.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceFetch, key, err)
	}

	switch fileType {
	case models.FileTypeCSV:
		return loadCSV(key, data)
	case models.FileTypePDF:
		text, err := extractPDFText(data)
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		return l.chunkText(key, text), nil
	default: // txt
		return l.chunkText(key, string(data)), nil
	}
}

// chunkText flattens the text to a single line and splits it. Newlines
// are replaced with spaces before splitting: paragraph boundaries are
// sacrificed for simpler separator-based splitting.
func (l *Loader) chunkText(key, text string) []models.DocumentChunk {
	flat := strings.ReplaceAll(text, "\n", " ")

	pieces := splitter.Split(flat, l.split)
	chunks := make([]models.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, models.DocumentChunk{
			Content: piece,
			Name:    key,
			Ordinal: i + 1,
		})
	}

	slog.Debug("document chunked", "key", key, "chunks", len(chunks))
	return chunks
}

// extractPDFText concatenates the plain text of every page.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

// loadCSV produces one chunk per data row. The header row defines the
// column set; rows with missing trailing fields silently omit them.
func loadCSV(key string, data []byte) ([]models.DocumentChunk, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := records[0]
	chunks := make([]models.DocumentChunk, 0, len(records)-1)
	for rowNum, record := range records[1:] {
		var lines []string
		for i, col := range columns {
			if i >= len(record) {
				break
			}
			lines = append(lines, strings.TrimSpace(col)+": "+strings.TrimSpace(record[i]))
		}
		if len(lines) == 0 {
			continue
		}
		chunks = append(chunks, models.DocumentChunk{
			Content: strings.Join(lines, "\n"),
			Name:    key,
			Ordinal: rowNum + 1,
		})
	}
	return chunks, nil
}
