package badger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// Relevance weights for blended scoring. When both a query embedding and a
// document vector are available the score blends cosine similarity with
// lexical overlap; otherwise lexical overlap stands alone.
const (
	vectorWeight  = 0.7
	lexicalWeight = 0.3
	verbatimBoost = 0.15
)

// DocumentStore implements storage.DocumentStore for BadgerDB.
// Each instance holds one knowledge partition of a shared backend.
type DocumentStore struct {
	backend  *Backend
	kind     core.ContextType
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ storage.DocumentStore = (*DocumentStore)(nil)

// StoreOption configures a DocumentStore.
type StoreOption func(*DocumentStore)

// WithEmbedder enables vector scoring for fetches. Without an embedder the
// store falls back to lexical overlap only.
func WithEmbedder(embedder ai.Embedder) StoreOption {
	return func(s *DocumentStore) {
		s.embedder = embedder
	}
}

// WithStoreLogger sets a custom logger.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *DocumentStore) {
		s.logger = logger
	}
}

// NewDocumentStore creates a document store for one partition over a backend.
func NewDocumentStore(backend *Backend, kind core.ContextType, opts ...StoreOption) (*DocumentStore, error) {
	if err := core.ValidateContextType(kind); err != nil {
		return nil, err
	}

	s := &DocumentStore{
		backend: backend,
		kind:    kind,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Kind reports which knowledge partition this store holds.
func (s *DocumentStore) Kind() core.ContextType {
	return s.kind
}

// Close releases store resources. The shared backend is closed separately.
func (s *DocumentStore) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (s *DocumentStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// AddDocuments adds one or more documents to storage.
func (s *DocumentStore) AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if err := s.checkKind(doc); err != nil {
				return err
			}

			key := makeDocumentKey(s.kind, doc.URI)
			existing, err := s.readDocument(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: %s", storage.ErrDuplicateKey, doc.URI)
			}

			if doc.Id == 0 {
				doc.Id = core.IDFromContent(doc.URI)
			}
			if doc.InsertedAt.IsZero() {
				doc.InsertedAt = time.Now().UTC()
			}
			doc.UpdatedAt = doc.InsertedAt

			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// UpdateDocuments updates existing documents.
func (s *DocumentStore) UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if err := s.checkKind(doc); err != nil {
				return err
			}

			key := makeDocumentKey(s.kind, doc.URI)
			old, err := s.readDocument(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, doc.URI)
			}

			doc.Id = old.Id
			doc.InsertedAt = old.InsertedAt
			doc.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// DeleteDocuments removes documents by their URIs.
func (s *DocumentStore) DeleteDocuments(ctx context.Context, uris ...string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, uri := range uris {
			key := makeDocumentKey(s.kind, uri)
			doc, err := s.readDocument(tx, key)
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, uri)
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document by URI.
func (s *DocumentStore) GetDocument(ctx context.Context, uri string) (*core.Document, error) {
	var result *core.Document
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(s.kind, uri)
		var err error
		result, err = s.readDocument(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, uri)
		}
		return nil
	}, false)
	return result, err
}

// Fetch retrieves documents relevant to the query within the scope prefix.
// Scores blend cosine similarity against the query embedding with lexical
// word overlap; documents matching every query word get a verbatim boost.
// Items scoring zero are dropped.
func (s *DocumentStore) Fetch(ctx context.Context, query, scope string, limit int) ([]core.ScoredItem, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", storage.ErrInvalidQuery)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	// Embedding the query is best effort. A classifier-planned search must
	// still return lexical matches when the embedding service is down.
	var queryVec []float32
	if s.embedder != nil {
		vec, err := s.embedder.EmbedText(ctx, query)
		if err != nil {
			s.logger.Warn("query embedding failed, falling back to lexical scoring",
				"kind", s.kind, "error", err)
		} else {
			queryVec = vec
		}
	}

	var results []core.ScoredItem
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeScopePrefix(s.kind, scope)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if doc == nil {
				continue
			}

			score := s.scoreDocument(doc, query, queryVec)
			if score > 0 {
				results = append(results, core.ScoredItem{
					URI:      doc.URI,
					Kind:     s.kind,
					Score:    score,
					Document: doc,
				})
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by score descending
	slices.SortFunc(results, func(a, b core.ScoredItem) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// scoreDocument computes the blended relevance score in [0, 1].
func (s *DocumentStore) scoreDocument(doc *core.Document, query string, queryVec []float32) float32 {
	text := doc.Title + " " + doc.Contents
	lexical := lexicalScore(text, query)

	var score float32
	if len(queryVec) > 0 && len(doc.Vector) > 0 {
		similarity := dotProduct(queryVec, doc.Vector)
		if similarity < 0 {
			similarity = 0
		}
		if similarity > 1 {
			similarity = 1
		}
		score = vectorWeight*similarity + lexicalWeight*lexical
	} else {
		score = lexical
	}

	if containsAllQueryWords(text, query) {
		score += verbatimBoost
	}
	if score > 1 {
		score = 1
	}
	return score
}

// checkKind rejects documents whose Kind doesn't match the partition.
// A zero Kind is stamped with the store's partition.
func (s *DocumentStore) checkKind(doc *core.Document) error {
	if doc.Kind == 0 {
		doc.Kind = s.kind
		return nil
	}
	if doc.Kind != s.kind {
		return fmt.Errorf("%w: document %q has kind %s, store holds %s",
			storage.ErrInvalidQuery, doc.URI, doc.Kind, s.kind)
	}
	return nil
}

// readDocument reads a document from the transaction.
// Returns nil without error when the key is absent.
func (s *DocumentStore) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}
