// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.IntentClassifier,
// ai.Embedder, and ai.Provider for use in unit tests. The mocks allow tests
// to run without external AI service dependencies and enable controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	plan, err := mockProvider.Classifier().Analyze(ctx, "", nil, "sample", 0, "")
//
//	// Custom behavior injection
//	mockClassifier := mock.NewMockClassifier()
//	mockClassifier.AnalyzeFunc = func(ctx context.Context, summary string, messages []core.Message,
//	    current string, hint core.ContextType, target string) (*core.QueryPlan, error) {
//	    return &core.QueryPlan{}, nil
//	}
//
//	// Check call counts
//	count := mockClassifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockClassifier: Routes the message to stores via simple keyword markers
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockProvider: Aggregates mock classifier and embedder
package mock
