// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package recall

import (
	"context"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/ai/openai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/ingest"
	"github.com/poiesic/recall/retrieve"
	"github.com/poiesic/recall/session"
	"github.com/poiesic/recall/storage"
	"github.com/poiesic/recall/storage/badger"
)

// Client is the top-level handle to a knowledge base: three partition
// stores over a shared backend, an AI provider, the retrieval searcher,
// and the ingestion pipeline.
type Client struct {
	backend   *badger.Backend
	resources storage.DocumentStore
	memories  storage.DocumentStore
	skills    storage.DocumentStore
	provider  ai.Provider
	searcher  *retrieve.Searcher
	pipeline  *ingest.Pipeline
	logger    *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) ClientOption {
	return func(o *clientOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI
// provider construction. Used to run against mocks.
func WithProvider(provider ai.Provider) ClientOption {
	return func(o *clientOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the backend in memory, without touching disk.
func WithInMemory() ClientOption {
	return func(o *clientOptions) {
		o.inMemory = true
	}
}

// Open creates a client over the knowledge base at filePath.
func Open(filePath string, opts ...ClientOption) (*Client, error) {
	// Apply options
	options := &clientOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	// Create the three partition stores
	storeOpts := []badger.StoreOption{badger.WithEmbedder(provider.Embedder())}
	resources, err := badger.NewDocumentStore(backend, core.ContextTypeResource, storeOpts...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}
	memories, err := badger.NewDocumentStore(backend, core.ContextTypeMemory, storeOpts...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}
	skills, err := badger.NewDocumentStore(backend, core.ContextTypeSkill, storeOpts...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	searcher, err := retrieve.NewSearcher(resources, memories, skills, provider.Classifier())
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	pipeline, err := ingest.NewPipeline(resources, memories, skills, provider.Embedder())
	if err != nil {
		searcher.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Client{
		backend:   backend,
		resources: resources,
		memories:  memories,
		skills:    skills,
		provider:  provider,
		searcher:  searcher,
		pipeline:  pipeline,
		logger:    slog.Default(),
	}, nil
}

// Find performs a quick direct lookup across all three partitions.
func (c *Client) Find(ctx context.Context, query string, opts *retrieve.FindOptions) (*core.SearchResult, error) {
	return c.searcher.Find(ctx, query, opts)
}

// Search performs context-aware, plan-driven retrieval.
func (c *Client) Search(ctx context.Context, query string, opts *retrieve.SearchOptions) (*core.SearchResult, error) {
	return c.searcher.Search(ctx, query, opts)
}

// NewSession creates an empty conversation session.
func (c *Client) NewSession() *session.Session {
	return session.New()
}

// Ingest adds documents to the given partition.
func (c *Client) Ingest(ctx context.Context, kind core.ContextType, docs ...*core.Document) ([]*core.Document, error) {
	return c.pipeline.Ingest(ctx, kind, docs...)
}

// Searcher exposes the underlying searcher, for monitor variants.
func (c *Client) Searcher() *retrieve.Searcher {
	return c.searcher
}

// Close releases the pipeline, searcher, provider, stores, and backend.
func (c *Client) Close() error {
	c.pipeline.Release()
	c.searcher.Release()

	// Close AI provider first
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	for _, store := range []storage.DocumentStore{c.resources, c.memories, c.skills} {
		if err := store.Close(); err != nil {
			c.logger.Error("error closing document store", "err", err)
			return err
		}
	}

	// Close backend
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
