package domain

// RefusalSentence is the fixed answer when the ingested document does
// not contain the requested fact. The grounding rules instruct the
// generator to reply with exactly this sentence, and callers compare
// against it verbatim. Any real failure must produce a different,
// distinguishable message so refusal is never confused with an error.
const RefusalSentence = "I do not have the necessary information to answer your question."

// Prompt section headers. The prompt builder emits them and the offline
// generator parses them back out, so they are shared here rather than
// duplicated on both sides of the port.
const (
	PromptContextHeader  = "CONTEXT:"
	PromptRulesHeader    = "RULES:"
	PromptQuestionHeader = "USER QUESTION:"
)

// PromptEmptyContext is what the CONTEXT block contains when retrieval
// returned nothing. The rules then force a refusal.
const PromptEmptyContext = "N/A"
