package ai

import (
	"context"

	"github.com/poiesic/recall/core"
)

// IntentClassifier turns a query plus session context into a structured
// query plan. Implementations are external capabilities: they may fail,
// time out, or return degenerate plans, and callers must validate the
// result. Implementations must be thread-safe for concurrent use.
type IntentClassifier interface {
	// Analyze classifies the current message into one or more prioritized,
	// typed sub-queries. compressionSummary is the compressed session
	// history (may be empty), messages are the most recent session
	// exchanges, hint is an optional context type the caller expects
	// (zero value means no hint), and targetAbstract describes the URI
	// scope the caller wants the search confined to (may be empty).
	//
	// The returned plan is raw classifier output; it may be empty or
	// internally inconsistent. Plan validation and fallback are the
	// query planner's job, not the classifier's.
	Analyze(ctx context.Context, compressionSummary string, messages []core.Message,
		currentMessage string, hint core.ContextType, targetAbstract string) (*core.QueryPlan, error)
}

// Embedder generates vector embeddings from text for semantic similarity scoring.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages IntentClassifier and Embedder instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Classifier returns the intent classification service.
	// The returned IntentClassifier is safe for concurrent use.
	Classifier() IntentClassifier

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
