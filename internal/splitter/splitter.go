// Package splitter implements recursive character splitting of large
// text into bounded, optionally overlapping chunks.
package splitter

import "strings"

// Config defines splitting parameters. Lengths are counted in runes so
// that Korean text is bounded the same way as ASCII.
type Config struct {
	// ChunkSize is the maximum chunk length, overlap included.
	ChunkSize int
	// Overlap is the number of runes adjacent chunks share. The last
	// Overlap runes of chunk i are repeated as the prefix of chunk i+1.
	Overlap int
	// Separators is tried coarse to fine. The empty string must appear
	// last: it falls back to character-level cutting, which guarantees
	// every piece fits regardless of content.
	Separators []string
}

// DefaultSeparators returns the standard separator ladder: paragraph,
// line, sentence, word, character.
func DefaultSeparators() []string {
	return []string{"\n\n", "\n", ".", " ", ""}
}

// DocumentConfig returns the configuration used for document ingestion.
func DocumentConfig() Config {
	return Config{ChunkSize: 1000, Overlap: 100, Separators: DefaultSeparators()}
}

// TranscriptConfig returns the configuration used for history
// windowing: it partitions a transcript into ordered, non-overlapping
// pages.
func TranscriptConfig() Config {
	return Config{ChunkSize: 2000, Overlap: 0, Separators: DefaultSeparators()}
}

// Split breaks text into ordered chunks. Separator text stays attached
// to the piece it terminates, so concatenating the chunks (minus each
// chunk's overlap prefix) reconstructs the input exactly. Empty chunks
// are never emitted; an empty input yields nil.
func Split(text string, cfg Config) []string {
	if text == "" {
		return nil
	}

	size := cfg.ChunkSize
	if size <= 0 {
		size = 1000
	}
	overlap := cfg.Overlap
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	seps := cfg.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators()
	}

	// Pieces are budgeted to size-overlap so that prefixing the overlap
	// region keeps every emitted chunk within ChunkSize.
	budget := size - overlap

	pieces := splitRecursive(text, seps, budget)
	base := merge(pieces, budget)

	if overlap == 0 || len(base) <= 1 {
		return base
	}

	out := make([]string, len(base))
	out[0] = base[0]
	for i := 1; i < len(base); i++ {
		out[i] = tail(base[i-1], overlap) + base[i]
	}
	return out
}

// splitRecursive cuts text into pieces of at most budget runes, trying
// separators coarse to fine and keeping each separator attached to the
// piece before it.
func splitRecursive(text string, seps []string, budget int) []string {
	if runeLen(text) <= budget {
		return []string{text}
	}

	sep := seps[0]
	if sep == "" {
		return hardCut(text, budget)
	}

	parts := strings.SplitAfter(text, sep)
	var pieces []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if runeLen(part) <= budget {
			pieces = append(pieces, part)
			continue
		}
		pieces = append(pieces, splitRecursive(part, seps[1:], budget)...)
	}
	return pieces
}

// merge greedily joins adjacent pieces while staying within budget.
func merge(pieces []string, budget int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	for _, piece := range pieces {
		n := runeLen(piece)
		if curLen > 0 && curLen+n > budget {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		cur.WriteString(piece)
		curLen += n
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// hardCut slices text into budget-sized rune windows. This is the ""
// separator fallback and guarantees termination.
func hardCut(text string, budget int) []string {
	runes := []rune(text)
	pieces := make([]string, 0, (len(runes)+budget-1)/budget)
	for start := 0; start < len(runes); start += budget {
		end := start + budget
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

// tail returns the last n runes of s, or all of s when shorter.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func runeLen(s string) int {
	return len([]rune(s))
}
