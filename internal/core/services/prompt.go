package services

import (
	"strings"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

// promptTemplate carries the grounding contract: the retrieved context,
// the rules that forbid outside knowledge, few-shot refusal examples,
// and the question. The refusal sentence appears verbatim so the model
// can repeat it exactly.
const promptTemplate = domain.PromptContextHeader + `
{context}

` + domain.PromptRulesHeader + `
- Answer only based on the CONTEXT.
- If the information is not explicitly in the CONTEXT, reply:
  "` + domain.RefusalSentence + `"
- Never invent or use external knowledge.
- Never produce opinions or interpretations beyond what is written.

EXAMPLES OF OUT-OF-CONTEXT QUESTIONS:
Question: "What is the capital of France?"
Answer: "` + domain.RefusalSentence + `"

Question: "How many customers do we have in 2024?"
Answer: "` + domain.RefusalSentence + `"

Question: "Do you think this is good or bad?"
Answer: "` + domain.RefusalSentence + `"

` + domain.PromptQuestionHeader + `
{question}

ANSWER THE "USER QUESTION"`

// BuildContext joins retrieved chunk contents with blank lines,
// skipping chunks that are empty after trimming.
func BuildContext(chunks []domain.RetrievedChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if content := strings.TrimSpace(chunk.Content); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt renders the grounding prompt for a question. An empty
// context becomes the N/A marker, which the rules turn into a refusal.
func BuildPrompt(question, context string) string {
	if context == "" {
		context = domain.PromptEmptyContext
	}
	prompt := strings.Replace(promptTemplate, "{context}", context, 1)
	return strings.Replace(prompt, "{question}", question, 1)
}
