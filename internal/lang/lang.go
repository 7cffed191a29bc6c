// Package lang classifies query text for bilingual prompt selection.
package lang

// Language is the detected prompt language.
type Language string

const (
	English Language = "en"
	Korean  Language = "ko"
)

// Detect returns Korean if the text contains any Hangul compatibility
// Jamo (U+3131..U+3163) or Hangul syllable (U+AC00..U+D7A3) rune, and
// English otherwise. This is a routing heuristic, not a full language
// detector: a single Hangul rune anywhere forces Korean, even for
// mixed-language input.
func Detect(text string) Language {
	for _, r := range text {
		if (r >= 0x3131 && r <= 0x3163) || (r >= 0xAC00 && r <= 0xD7A3) {
			return Korean
		}
	}
	return English
}
