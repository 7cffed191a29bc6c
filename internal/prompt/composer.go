package prompt

import (
	"strings"

	"github.com/hyecheol/ragchat/internal/lang"
	"github.com/hyecheol/ragchat/internal/models"
)

// excerptMarker delimits the quotable body inside an indexed passage.
// Text before the marker is retrieval metadata and is not quoted.
const excerptMarker = "Document Excerpt:"

// Compose builds the prompt for a query given the windowed history and
// the retrieved passages. Passages are appended to the history as
// synthetic Human turns. When there is no history and no passages, the
// template is bypassed and the bare query is returned.
func Compose(query, history string, passages []models.DocumentChunk) string {
	if history == "" && len(passages) == 0 {
		return Bare(query)
	}

	context := history
	for _, p := range passages {
		context += "\nHuman: " + Excerpt(p.Content)
	}

	return Condense(lang.Detect(query), context, query)
}

// Excerpt returns the passage body after the first excerpt marker, or
// the whole passage when no marker is present.
func Excerpt(content string) string {
	i := strings.Index(content, excerptMarker)
	if i < 0 {
		return content
	}
	return strings.TrimSpace(content[i+len(excerptMarker):])
}
