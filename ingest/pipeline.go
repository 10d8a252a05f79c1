package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// Pipeline orchestrates document ingestion into the partition stores.
// Documents are validated and stored synchronously; embedding vectors are
// backfilled asynchronously on a worker pool.
type Pipeline struct {
	stores        map[core.ContextType]storage.DocumentStore
	embedder      ai.Embedder
	embeddingPool *ants.Pool
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for embedding backfill.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	resources storage.DocumentStore,
	memories storage.DocumentStore,
	skills storage.DocumentStore,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if resources == nil || memories == nil || skills == nil {
		return nil, ErrStoresRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		stores: map[core.ContextType]storage.DocumentStore{
			core.ContextTypeResource: resources,
			core.ContextTypeMemory:   memories,
			core.ContextTypeSkill:    skills,
		},
		embedder:      embedder,
		embeddingPool: pool,
		logger:        slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest validates and stores documents in the partition for kind, then
// backfills their embedding vectors asynchronously. Errors during backfill
// are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, kind core.ContextType, docs ...*core.Document) ([]*core.Document, error) {
	if err := core.ValidateContextType(kind); err != nil {
		return nil, err
	}
	store := p.stores[kind]

	for _, doc := range docs {
		if doc.Kind == 0 {
			doc.Kind = kind
		}
		if doc.InsertedAt.IsZero() {
			doc.InsertedAt = time.Now().UTC()
		}
		if err := core.ValidateDocument(doc); err != nil {
			return nil, err
		}
	}

	added, err := store.AddDocuments(ctx, docs...)
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return added, nil
	}

	// Backfill embeddings for documents that arrived without vectors.
	uris := make([]string, 0, len(added))
	for _, doc := range added {
		if len(doc.Vector) == 0 {
			uris = append(uris, doc.URI)
		}
	}
	if len(uris) > 0 {
		p.embeddingPool.Submit(func() {
			p.backfillEmbeddings(context.Background(), store, uris)
		})
	}

	return added, nil
}

// backfillEmbeddings embeds and updates stored documents by URI.
func (p *Pipeline) backfillEmbeddings(ctx context.Context, store storage.DocumentStore, uris []string) {
	for _, uri := range uris {
		doc, err := store.GetDocument(ctx, uri)
		if err != nil {
			p.logger.Error("error reading document for embedding backfill", "uri", uri, "err", err)
			continue
		}

		vector, err := p.embedder.EmbedText(ctx, doc.Title+" "+doc.Contents)
		if err != nil {
			p.logger.Error("error embedding document", "uri", uri, "err", err)
			continue
		}
		doc.Vector = vector

		if _, err := store.UpdateDocuments(ctx, doc); err != nil {
			p.logger.Error("error storing document embedding", "uri", uri, "err", err)
		}
	}
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
