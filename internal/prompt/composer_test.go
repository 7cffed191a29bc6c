package prompt

import (
	"strings"
	"testing"

	"github.com/hyecheol/ragchat/internal/models"
)

func TestCompose_BareWhenNoContext(t *testing.T) {
	got := Compose("hello there", "", nil)
	want := "\n\nHuman:hello there\n\nAssistant:"
	if got != want {
		t.Errorf("Compose = %q, want %q", got, want)
	}
}

func TestCompose_UsesTemplateWithHistory(t *testing.T) {
	got := Compose("what next?", "Human: hi\nAssistant: hello\n", nil)

	if !strings.Contains(got, "Human: hi\nAssistant: hello\n") {
		t.Error("prompt should contain the windowed history")
	}
	if !strings.Contains(got, "Human: what next?") {
		t.Error("prompt should contain the query as the newest question")
	}
	if !strings.Contains(got, "thoughtful advisor") {
		t.Error("english query should use the english condense template")
	}
}

func TestCompose_KoreanQuerySelectsKoreanTemplate(t *testing.T) {
	got := Compose("요약해 줘", "Human: 안녕\nAssistant: 안녕하세요\n", nil)

	if !strings.Contains(got, "친근한 대화입니다") {
		t.Error("korean query should use the korean condense template")
	}
}

func TestCompose_PassagesBecomeHumanTurns(t *testing.T) {
	passages := []models.DocumentChunk{
		{Content: "plain passage text", Name: "a.txt", Ordinal: 1},
		{Content: "meta stuff Document Excerpt: the real body", Name: "b.pdf", Ordinal: 3},
	}

	got := Compose("question?", "", passages)

	if !strings.Contains(got, "\nHuman: plain passage text") {
		t.Error("passage without marker should be quoted whole")
	}
	if !strings.Contains(got, "\nHuman: the real body") {
		t.Error("passage with marker should be quoted from after the marker")
	}
	if strings.Contains(got, "meta stuff") {
		t.Error("text before the excerpt marker must not be quoted")
	}
	// Passages alone still engage the template.
	if strings.HasPrefix(got, "\n\nHuman:question?") {
		t.Error("passages present: the bare path must not be taken")
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no marker", content: "whole thing", want: "whole thing"},
		{name: "marker at start", content: "Document Excerpt: body", want: "body"},
		{name: "marker mid-text", content: "name: x\nDocument Excerpt:\nbody line", want: "body line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.content); got != tt.want {
				t.Errorf("Excerpt(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestReferences(t *testing.T) {
	if got := References(nil); got != "" {
		t.Errorf("References(nil) = %q, want \"\"", got)
	}

	got := References([]models.DocumentChunk{
		{Name: "guide.pdf", Ordinal: 2},
		{Name: "notes.txt", Ordinal: 7},
	})
	want := "\n\nFrom\n2page in guide.pdf\n7page in notes.txt\n"
	if got != want {
		t.Errorf("References = %q, want %q", got, want)
	}
}
