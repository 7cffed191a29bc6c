package loader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyecheol/ragchat/internal/splitter"
)

// fakeBlobs serves objects from a map.
type fakeBlobs map[string][]byte

func (f fakeBlobs) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := f[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	l := New(fakeBlobs{}, splitter.DocumentConfig())

	for _, key := range []string{"report.docx", "archive.zip", "noext"} {
		_, err := l.Load(context.Background(), key)
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Errorf("Load(%q) error = %v, want ErrUnsupportedFileType", key, err)
		}
	}
}

func TestLoad_MissingObject(t *testing.T) {
	l := New(fakeBlobs{}, splitter.DocumentConfig())

	_, err := l.Load(context.Background(), "missing.txt")
	if !errors.Is(err, ErrSourceFetch) {
		t.Errorf("Load error = %v, want ErrSourceFetch", err)
	}
}

func TestLoad_TxtFlattensAndChunks(t *testing.T) {
	text := "first line\nsecond line\n\nthird paragraph"
	l := New(fakeBlobs{"doc.txt": []byte(text)}, splitter.DocumentConfig())

	chunks, err := l.Load(context.Background(), "doc.txt")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if strings.Contains(chunks[0].Content, "\n") {
		t.Error("txt content should have newlines flattened to spaces")
	}
	if chunks[0].Name != "doc.txt" || chunks[0].Ordinal != 1 {
		t.Errorf("chunk metadata = %q/%d, want doc.txt/1", chunks[0].Name, chunks[0].Ordinal)
	}
}

func TestLoad_TxtLongDocumentOrdinals(t *testing.T) {
	text := strings.Repeat("sentence about nothing in particular. ", 100)
	l := New(fakeBlobs{"long.txt": []byte(text)}, splitter.DocumentConfig())

	chunks, err := l.Load(context.Background(), "long.txt")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if c.Ordinal != i+1 {
			t.Errorf("chunk[%d].Ordinal = %d, want %d", i, c.Ordinal, i+1)
		}
		if c.Content == "" {
			t.Errorf("chunk[%d] is empty", i)
		}
	}
}

func TestLoad_CSVRowsRoundTrip(t *testing.T) {
	data := "a,b\n1,x\n2,y\n3,z\n"
	l := New(fakeBlobs{"table.csv": []byte(data)}, splitter.DocumentConfig())

	chunks, err := l.Load(context.Background(), "table.csv")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	want := []string{"a: 1\nb: x", "a: 2\nb: y", "a: 3\nb: z"}
	for i, c := range chunks {
		if c.Content != want[i] {
			t.Errorf("chunk[%d].Content = %q, want %q", i, c.Content, want[i])
		}
		if c.Ordinal != i+1 {
			t.Errorf("chunk[%d].Ordinal = %d, want %d", i, c.Ordinal, i+1)
		}
	}
}

func TestLoad_CSVMissingFieldsOmitted(t *testing.T) {
	data := "name,age,city\nalice,30\n"
	l := New(fakeBlobs{"people.csv": []byte(data)}, splitter.DocumentConfig())

	chunks, err := l.Load(context.Background(), "people.csv")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "name: alice\nage: 30" {
		t.Errorf("chunk content = %q, want missing city omitted", chunks[0].Content)
	}
}

func TestLoad_CSVQuotedFields(t *testing.T) {
	data := "q,a\n\"what, exactly?\",\"an answer\"\n"
	l := New(fakeBlobs{"faq.csv": []byte(data)}, splitter.DocumentConfig())

	chunks, err := l.Load(context.Background(), "faq.csv")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "q: what, exactly?\na: an answer" {
		t.Errorf("chunk content = %q", chunks[0].Content)
	}
}
