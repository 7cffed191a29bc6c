package prompt

import (
	"fmt"
	"strings"

	"github.com/hyecheol/ragchat/internal/models"
)

// referenceHeader introduces the citation block appended to an answer.
const referenceHeader = "\n\nFrom\n"

// References renders a trailing citation block listing each passage's
// source document and page. Returns "" when no passages were used.
func References(passages []models.DocumentChunk) string {
	if len(passages) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(referenceHeader)
	for _, p := range passages {
		fmt.Fprintf(&sb, "%dpage in %s\n", p.Ordinal, p.Name)
	}
	return sb.String()
}
