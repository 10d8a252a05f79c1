package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/recall/ai/mock"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
	"github.com/poiesic/recall/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, embedder *mock.MockEmbedder) (*Pipeline, storage.DocumentStore) {
	t.Helper()
	resources, memories, skills, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	pipeline, err := NewPipeline(resources, memories, skills, embedder, WithPoolSize(1))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)
	return pipeline, resources
}

func TestNewPipeline_Validation(t *testing.T) {
	resources, memories, skills, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	t.Run("nil store", func(t *testing.T) {
		_, err := NewPipeline(nil, memories, skills, mock.NewMockEmbedder())
		assert.Equal(t, ErrStoresRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(resources, memories, skills, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestIngest_StoresSynchronously(t *testing.T) {
	pipeline, resources := newTestPipeline(t, mock.NewMockEmbedder())
	ctx := context.Background()

	added, err := pipeline.Ingest(ctx, core.ContextTypeResource,
		&core.Document{URI: "docs/a.md", Contents: "release notes"})
	require.NoError(t, err)
	require.Len(t, added, 1)

	// Retrievable immediately, before any embedding backfill.
	doc, err := resources.GetDocument(ctx, "docs/a.md")
	require.NoError(t, err)
	assert.Equal(t, "release notes", doc.Contents)
}

func TestIngest_RejectsInvalidInput(t *testing.T) {
	pipeline, _ := newTestPipeline(t, mock.NewMockEmbedder())
	ctx := context.Background()

	t.Run("invalid kind", func(t *testing.T) {
		_, err := pipeline.Ingest(ctx, core.ContextType(42),
			&core.Document{URI: "docs/a.md", Contents: "x"})
		assert.ErrorIs(t, err, core.ErrInvalidContextType)
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := pipeline.Ingest(ctx, core.ContextTypeResource,
			&core.Document{URI: "docs/a.md"})
		assert.ErrorIs(t, err, core.ErrInvalidDocument)
	})
}

func TestIngest_BackfillsEmbeddings(t *testing.T) {
	embedded := make(chan string, 4)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		embedded <- text
		return []float32{0.5, 0.5}, nil
	}
	pipeline, resources := newTestPipeline(t, embedder)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, core.ContextTypeResource,
		&core.Document{URI: "docs/a.md", Title: "Notes", Contents: "release notes"})
	require.NoError(t, err)

	select {
	case text := <-embedded:
		assert.Contains(t, text, "release notes")
	case <-time.After(5 * time.Second):
		t.Fatal("embedding backfill never ran")
	}

	// Poll for the updated vector; the backfill updates after embedding.
	require.Eventually(t, func() bool {
		doc, err := resources.GetDocument(ctx, "docs/a.md")
		return err == nil && len(doc.Vector) == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestIngest_EmbeddingFailureDoesNotFailIngestion(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}
	pipeline, resources := newTestPipeline(t, embedder)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, core.ContextTypeResource,
		&core.Document{URI: "docs/a.md", Contents: "release notes"})
	require.NoError(t, err)

	doc, err := resources.GetDocument(ctx, "docs/a.md")
	require.NoError(t, err)
	assert.Empty(t, doc.Vector)
}

func TestIngest_SkipsBackfillForPreEmbeddedDocs(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	pipeline, resources := newTestPipeline(t, embedder)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, core.ContextTypeResource,
		&core.Document{URI: "docs/a.md", Contents: "notes", Vector: []float32{1, 0}})
	require.NoError(t, err)

	doc, err := resources.GetDocument(ctx, "docs/a.md")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, doc.Vector)
	assert.Zero(t, embedder.CallCount())
}
