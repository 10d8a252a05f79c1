package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/recall/core"
)

const planResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "queries": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "query": {
            "type": "string"
          },
          "context_type": {
            "type": "string",
            "enum": ["resource", "memory", "skill"]
          },
          "intent": {
            "type": "string"
          },
          "priority": {
            "type": "integer",
            "minimum": 1
          }
        },
        "required": ["query", "context_type", "intent", "priority"],
        "additionalProperties": false
      }
    },
    "reasoning": {
      "type": "string"
    }
  },
  "required": ["queries", "reasoning"],
  "additionalProperties": false
}`

const planPromptTemplate = `You are a retrieval query planner. Given the user's current request and the
conversation context, decompose the request into one or more typed search
queries and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- context_type selects which knowledge store a query targets: "resource" for documents, files, and reference
  material; "memory" for facts distilled from earlier conversations; "skill" for reusable procedures and playbooks.
- priority is an integer starting at 1; lower numbers are dispatched as more urgent. Give the query that most
  directly answers the request priority 1.
- Produce at most %d queries. Prefer fewer, sharper queries over many vague ones.
- intent is a short free-text label describing what the query is for (e.g. "lookup", "recall preference", "how-to").
- Rephrase queries into self-contained search text; resolve pronouns using the conversation context.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input request: "how did we configure the staging cluster last time?"
Output:
{
  "queries": [
    {"query":"staging cluster configuration","context_type":"memory","intent":"recall prior setup","priority":1},
    {"query":"cluster configuration guide","context_type":"resource","intent":"lookup","priority":2}
  ],
  "reasoning": "The user asks about a past action, so conversation memory is primary and reference docs are secondary."
}

Example (procedure request):
Input request: "set up a new release pipeline"
Output:
{
  "queries": [
    {"query":"release pipeline setup","context_type":"skill","intent":"how-to","priority":1},
    {"query":"release pipeline","context_type":"resource","intent":"lookup","priority":2}
  ],
  "reasoning": "A setup request is best served by a stored procedure, with reference material as backup."
}`

// buildSystemPrompt creates the system prompt with the sub-query cap embedded.
func buildSystemPrompt(maxSubQueries int) string {
	return fmt.Sprintf(planPromptTemplate, planResponseSchema, maxSubQueries)
}

// buildUserPrompt renders the classification input: compressed session
// history, recent messages, scope hints, and the current request.
func buildUserPrompt(compressionSummary string, messages []core.Message,
	currentMessage string, hint core.ContextType, targetAbstract string) string {

	var b strings.Builder
	if compressionSummary != "" {
		b.WriteString("Conversation summary:\n")
		b.WriteString(compressionSummary)
		b.WriteString("\n\n")
	}
	if len(messages) > 0 {
		b.WriteString("Recent messages:\n")
		for _, m := range messages {
			b.WriteString(m.Role)
			b.WriteString(": ")
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if hint != 0 {
		b.WriteString("Expected context type: ")
		b.WriteString(hint.String())
		b.WriteString("\n")
	}
	if targetAbstract != "" {
		b.WriteString("Search is confined to: ")
		b.WriteString(targetAbstract)
		b.WriteString("\n")
	}
	b.WriteString("Current request: ")
	b.WriteString(currentMessage)
	return b.String()
}
