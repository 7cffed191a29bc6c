// Package summary produces a short summary of a newly ingested
// document.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyecheol/ragchat/internal/lang"
	"github.com/hyecheol/ragchat/internal/models"
	"github.com/hyecheol/ragchat/internal/prompt"
)

// summaryChunkLimit bounds how much of a document feeds the summary.
// Longer documents are summarized from their prefix only; this trades
// coverage for cost and latency.
const summaryChunkLimit = 3

// FallbackMessage replaces an empty generation result so callers never
// see an empty summary.
const FallbackMessage = "Fail to summarize the document. Try again..."

// Generator is the generation capability the summarizer needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer builds a document summary from the leading chunks.
type Summarizer struct {
	generator Generator
}

// New creates a summarizer.
func New(generator Generator) *Summarizer {
	return &Summarizer{generator: generator}
}

// Summarize generates a summary from the first chunks of the document.
// The instruction language follows the content: text containing Hangul
// gets the Korean template, which bounds the summary to roughly 500
// characters. An empty generation result becomes FallbackMessage.
func (s *Summarizer) Summarize(ctx context.Context, chunks []models.DocumentChunk) (string, error) {
	selected := chunks
	if len(selected) > summaryChunkLimit {
		selected = selected[:summaryChunkLimit]
	}

	texts := make([]string, 0, len(selected))
	for _, c := range selected {
		texts = append(texts, c.Content)
	}
	text := strings.Join(texts, "\n\n")

	p := prompt.Summarize(lang.Detect(text), text)
	out, err := s.generator.Generate(ctx, p)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	if out == "" {
		return FallbackMessage, nil
	}
	return out, nil
}
