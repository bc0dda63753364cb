// Package offline provides a deterministic, network-free generation
// adapter for tests and as the terminal provider fallback.
package offline

import (
	"context"
	"strings"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.Generator = (*Generator)(nil)

// Model is the name reported by the offline generator.
const Model = "offline-echo"

// ResponsePrefix marks every non-refusal offline answer, so callers and
// tests can tell the canned response from a real completion.
const ResponsePrefix = "(offline simulation)"

// previewLen bounds how much context the canned response echoes back.
const previewLen = 180

// Generator honours the grounding contract without a language model: it
// parses the prompt the builder produced, refuses when the CONTEXT
// block is empty, and otherwise echoes the question with a context
// preview. Same prompt in, same answer out.
type Generator struct{}

// New returns the offline generator.
func New() *Generator {
	return &Generator{}
}

// Generate returns the deterministic canned response for the prompt.
func (g *Generator) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	context := sectionBetween(prompt, domain.PromptContextHeader, domain.PromptRulesHeader)
	if context == "" || context == domain.PromptEmptyContext {
		return domain.RefusalSentence, nil
	}

	question := firstLineAfter(prompt, domain.PromptQuestionHeader)
	if question == "" {
		question = "No question provided."
	}

	// Truncate by rune so a multibyte context is never cut mid-character.
	preview := context
	if runes := []rune(preview); len(runes) > previewLen {
		preview = string(runes[:previewLen])
	}
	preview = strings.ReplaceAll(preview, "\n", " ")

	return ResponsePrefix + " " + question + " | Context: " + preview + "...", nil
}

// ModelName returns the offline model identifier.
func (g *Generator) ModelName() string {
	return Model
}

// Ping always succeeds; there is nothing to reach.
func (g *Generator) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (g *Generator) Close() error {
	return nil
}

// sectionBetween returns the trimmed prompt text between two headers,
// or everything after `from` when `to` is absent.
func sectionBetween(prompt, from, to string) string {
	_, after, found := strings.Cut(prompt, from)
	if !found {
		return ""
	}
	section, _, _ := strings.Cut(after, to)
	return strings.TrimSpace(section)
}

// firstLineAfter returns the first non-empty line following a header.
func firstLineAfter(prompt, header string) string {
	_, after, found := strings.Cut(prompt, header)
	if !found {
		return ""
	}
	for _, line := range strings.Split(after, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
