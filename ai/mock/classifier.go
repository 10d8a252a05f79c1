package mock

import (
	"context"
	"strings"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

// MockClassifier is a test double for ai.IntentClassifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, uses default keyword-routing behavior.
	AnalyzeFunc func(ctx context.Context, compressionSummary string, messages []core.Message,
		currentMessage string, hint core.ContextType, targetAbstract string) (*core.QueryPlan, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Analyze produces a simple deterministic plan from the current message.
// Default behavior: one resource query for the message verbatim, plus a
// memory query when the message mentions earlier conversation ("we", "last",
// "before"), plus a skill query when it looks like a how-to ("how", "setup").
func (m *MockClassifier) Analyze(ctx context.Context, compressionSummary string, messages []core.Message,
	currentMessage string, hint core.ContextType, targetAbstract string) (*core.QueryPlan, error) {

	m.callCount++

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, compressionSummary, messages, currentMessage, hint, targetAbstract)
	}

	queries := []core.TypedQuery{
		{Query: currentMessage, ContextType: core.ContextTypeResource, Intent: "lookup", Priority: 1},
	}

	// Query text is varied per type: planners reject plans that route the
	// identical query string to conflicting context types.
	lowered := strings.ToLower(currentMessage)
	priority := 2
	for _, marker := range []string{"we ", "last ", "before "} {
		if strings.Contains(lowered, marker) {
			queries = append(queries, core.TypedQuery{
				Query: "recall " + currentMessage, ContextType: core.ContextTypeMemory, Intent: "recall", Priority: priority,
			})
			priority++
			break
		}
	}
	for _, marker := range []string{"how ", "setup", "set up"} {
		if strings.Contains(lowered, marker) {
			queries = append(queries, core.TypedQuery{
				Query: "steps for " + currentMessage, ContextType: core.ContextTypeSkill, Intent: "how-to", Priority: priority,
			})
			break
		}
	}

	return &core.QueryPlan{
		Queries:        queries,
		SessionContext: compressionSummary,
		Reasoning:      "mock plan",
	}, nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.AnalyzeFunc = nil
}

var _ ai.IntentClassifier = (*MockClassifier)(nil)
