package storage

import (
	"context"

	"github.com/poiesic/recall/core"
)

// DocumentStore provides storage and retrieval for one knowledge partition.
// Implementations must be thread-safe and support concurrent access.
type DocumentStore interface {
	// Fetch retrieves documents relevant to the query, optionally restricted
	// to URIs under the scope prefix. Returns scored items in [0, 1], ordered
	// by score (highest first), up to limit results. Items with zero relevance
	// are not returned.
	Fetch(ctx context.Context, query, scope string, limit int) ([]core.ScoredItem, error)

	// AddDocuments adds one or more documents to storage.
	// For documents with Id=0, derives the ID from the URI content hash.
	// Sets InsertedAt timestamp if not already set.
	// Returns the documents with IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments updates existing documents.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// DeleteDocuments removes documents by their URIs.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, uris ...string) error

	// GetDocument retrieves a single document by URI.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, uri string) (*core.Document, error)

	// Kind reports which knowledge partition this store holds.
	Kind() core.ContextType

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
