package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/recall/ai/mock"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T, kind core.ContextType, opts ...StoreOption) *DocumentStore {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	store, err := NewDocumentStore(backend, kind, opts...)
	require.NoError(t, err)
	return store
}

func TestNewDocumentStore_InvalidKind(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewDocumentStore(backend, core.ContextType(99))
	assert.ErrorIs(t, err, core.ErrInvalidContextType)
}

func TestAddDocuments(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeResource)
	ctx := context.Background()

	t.Run("populates id and timestamps", func(t *testing.T) {
		doc := &core.Document{URI: "docs/a.md", Contents: "alpha"}
		added, err := store.AddDocuments(ctx, doc)
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.Equal(t, core.IDFromContent("docs/a.md"), added[0].Id)
		assert.Equal(t, core.ContextTypeResource, added[0].Kind)
		assert.False(t, added[0].InsertedAt.IsZero())
		assert.Equal(t, added[0].InsertedAt, added[0].UpdatedAt)
	})

	t.Run("duplicate URI rejected", func(t *testing.T) {
		_, err := store.AddDocuments(ctx, &core.Document{URI: "docs/a.md", Contents: "again"})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("wrong partition rejected", func(t *testing.T) {
		_, err := store.AddDocuments(ctx, &core.Document{
			URI: "mem/x", Kind: core.ContextTypeMemory, Contents: "misrouted",
		})
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}

func TestGetDocument(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeMemory)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, &core.Document{URI: "mem/one", Contents: "remembered"})
	require.NoError(t, err)

	t.Run("existing", func(t *testing.T) {
		doc, err := store.GetDocument(ctx, "mem/one")
		require.NoError(t, err)
		assert.Equal(t, "remembered", doc.Contents)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.GetDocument(ctx, "mem/absent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUpdateDocuments(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeResource)
	ctx := context.Background()

	added, err := store.AddDocuments(ctx, &core.Document{URI: "docs/a.md", Contents: "v1"})
	require.NoError(t, err)

	t.Run("preserves identity and inserted time", func(t *testing.T) {
		updated, err := store.UpdateDocuments(ctx, &core.Document{URI: "docs/a.md", Contents: "v2"})
		require.NoError(t, err)
		assert.Equal(t, added[0].Id, updated[0].Id)
		// Stored timestamps carry microsecond precision.
		assert.WithinDuration(t, added[0].InsertedAt, updated[0].InsertedAt, time.Millisecond)

		doc, err := store.GetDocument(ctx, "docs/a.md")
		require.NoError(t, err)
		assert.Equal(t, "v2", doc.Contents)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := store.UpdateDocuments(ctx, &core.Document{URI: "docs/absent.md", Contents: "x"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeleteDocuments(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeSkill)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, &core.Document{URI: "skills/one", Contents: "steps"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteDocuments(ctx, "skills/one"))
	_, err = store.GetDocument(ctx, "skills/one")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, store.DeleteDocuments(ctx, "skills/one"), storage.ErrNotFound)
}

func TestFetch_LexicalScoring(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeResource)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx,
		&core.Document{URI: "docs/full.md", Contents: "rotate expiring credentials nightly"},
		&core.Document{URI: "docs/partial.md", Contents: "rotate credentials"},
		&core.Document{URI: "docs/unrelated.md", Contents: "lunch menu for friday"},
	)
	require.NoError(t, err)

	items, err := store.Fetch(ctx, "rotate expiring credentials", "", 10)
	require.NoError(t, err)

	// The unrelated document scores zero and is dropped; the full match with
	// its verbatim boost outranks the partial one.
	require.Len(t, items, 2)
	assert.Equal(t, "docs/full.md", items[0].URI)
	assert.Equal(t, "docs/partial.md", items[1].URI)
	assert.Greater(t, items[0].Score, items[1].Score)
	for _, item := range items {
		assert.Equal(t, core.ContextTypeResource, item.Kind)
		assert.NotNil(t, item.Document)
	}
}

func TestFetch_ScopePrefix(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeResource)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx,
		&core.Document{URI: "docs/a.md", Contents: "release notes"},
		&core.Document{URI: "notes/b.md", Contents: "release notes"},
	)
	require.NoError(t, err)

	items, err := store.Fetch(ctx, "release notes", "docs/", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "docs/a.md", items[0].URI)
}

func TestFetch_LimitTruncates(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeResource)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx,
		&core.Document{URI: "docs/a.md", Contents: "release process"},
		&core.Document{URI: "docs/b.md", Contents: "release process"},
		&core.Document{URI: "docs/c.md", Contents: "release process"},
	)
	require.NoError(t, err)

	items, err := store.Fetch(ctx, "release process", "", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetch_VectorScoring(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	store := newMemoryStore(t, core.ContextTypeResource, WithEmbedder(embedder))
	ctx := context.Background()

	// Same lexical overlap, different vectors: the aligned vector wins.
	_, err := store.AddDocuments(ctx,
		&core.Document{URI: "docs/aligned.md", Contents: "quarterly revenue report", Vector: []float32{1, 0, 0}},
		&core.Document{URI: "docs/distant.md", Contents: "quarterly revenue report", Vector: []float32{0, 1, 0}},
	)
	require.NoError(t, err)

	items, err := store.Fetch(ctx, "quarterly revenue", "", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "docs/aligned.md", items[0].URI)
	assert.Greater(t, items[0].Score, items[1].Score)
}

func TestFetch_EmbedderFailureFallsBackToLexical(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}
	store := newMemoryStore(t, core.ContextTypeResource, WithEmbedder(embedder))
	ctx := context.Background()

	_, err := store.AddDocuments(ctx,
		&core.Document{URI: "docs/a.md", Contents: "billing export schedule", Vector: []float32{1, 0, 0}})
	require.NoError(t, err)

	items, err := store.Fetch(ctx, "billing export", "", 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFetch_InvalidArguments(t *testing.T) {
	store := newMemoryStore(t, core.ContextTypeResource)
	ctx := context.Background()

	_, err := store.Fetch(ctx, "", "", 10)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = store.Fetch(ctx, "query", "", 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestNewMemoryStores(t *testing.T) {
	resources, memories, skills, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	assert.Equal(t, core.ContextTypeResource, resources.Kind())
	assert.Equal(t, core.ContextTypeMemory, memories.Kind())
	assert.Equal(t, core.ContextTypeSkill, skills.Kind())

	// The three stores share one backend but are isolated by key prefix.
	ctx := context.Background()
	_, err = resources.AddDocuments(ctx, &core.Document{URI: "shared/uri", Contents: "resource side"})
	require.NoError(t, err)
	_, err = memories.AddDocuments(ctx, &core.Document{URI: "shared/uri", Contents: "memory side"})
	require.NoError(t, err)

	doc, err := resources.GetDocument(ctx, "shared/uri")
	require.NoError(t, err)
	assert.Equal(t, "resource side", doc.Contents)
}
