package retrieve

import (
	"context"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

const (
	defaultPoolSize   = 8
	defaultFetchLimit = 10
)

// Session supplies the conversational context consumed by Search.
// The snapshot must be a read-only copy; the search path never mutates it.
type Session interface {
	ContextForSearch(query string) core.Snapshot
}

// Searcher provides the two retrieval entry points over the partitioned
// knowledge base: quick direct lookup (Find) and context-aware, plan-driven
// search (Search).
type Searcher struct {
	resources  storage.DocumentStore
	memories   storage.DocumentStore
	skills     storage.DocumentStore
	planner    *Planner
	executor   *Executor
	pool       *ants.Pool
	poolSize   int
	fetchLimit int
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the size of the fan-out worker pool.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size > 0 {
			s.poolSize = size
		}
		return nil
	}
}

// WithFetchLimit sets the per-type fetch limit used when the caller
// supplies no limit of their own.
func WithFetchLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit > 0 {
			s.fetchLimit = limit
		}
		return nil
	}
}

// FindOptions tune the quick lookup path. A zero Limit means no cross-type
// cap; a zero ScoreThreshold keeps every positively scored item.
type FindOptions struct {
	Limit          int
	TargetURI      string
	ScoreThreshold float32
}

// SearchOptions tune the context-aware path. Session is optional; without
// one, planning proceeds with empty context.
type SearchOptions struct {
	Session   Session
	Limit     int
	TargetURI string
}

// NewSearcher creates a new searcher over the three partition stores.
func NewSearcher(
	resources storage.DocumentStore,
	memories storage.DocumentStore,
	skills storage.DocumentStore,
	classifier ai.IntentClassifier,
	opts ...Option,
) (*Searcher, error) {
	if resources == nil {
		return nil, ErrResourceStoreRequired
	}
	if memories == nil {
		return nil, ErrMemoryStoreRequired
	}
	if skills == nil {
		return nil, ErrSkillStoreRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	s := &Searcher{
		resources:  resources,
		memories:   memories,
		skills:     skills,
		poolSize:   defaultPoolSize,
		fetchLimit: defaultFetchLimit,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	planner, err := NewPlanner(classifier, s.logger)
	if err != nil {
		return nil, err
	}
	s.planner = planner

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, err
	}
	s.pool = pool
	s.executor = NewExecutor(resources, memories, skills, pool, s.logger)

	return s, nil
}

// Release frees the fan-out worker pool.
func (s *Searcher) Release() {
	s.pool.Release()
}

// Find performs a quick direct lookup against all three content types,
// without classifier-driven planning or session context.
func (s *Searcher) Find(ctx context.Context, query string, opts *FindOptions) (*core.SearchResult, error) {
	return s.FindWithMonitor(ctx, query, opts, nil)
}

// FindWithMonitor is Find with stage callbacks.
func (s *Searcher) FindWithMonitor(ctx context.Context, query string, opts *FindOptions, monitor SearchMonitor) (*core.SearchResult, error) {
	if opts == nil {
		opts = &FindOptions{}
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if query == "" {
		return nil, core.ErrEmptyQuery
	}
	if err := core.ValidateScope(opts.TargetURI); err != nil {
		return nil, err
	}

	monitor.Start(query)

	// One priority-1 query per partition; no compression or classification
	// on this path.
	plan := &core.QueryPlan{
		Queries: []core.TypedQuery{
			{Query: query, ContextType: core.ContextTypeResource, Intent: "find", Priority: 1},
			{Query: query, ContextType: core.ContextTypeMemory, Intent: "find", Priority: 1},
			{Query: query, ContextType: core.ContextTypeSkill, Intent: "find", Priority: 1},
		},
		Reasoning: "find",
	}

	byKind, failed := s.executor.Execute(ctx, plan, opts.TargetURI, s.perTypeLimit(opts.Limit), monitor)
	result := Aggregate(byKind, opts.ScoreThreshold, opts.Limit, opts.TargetURI)
	result.FailedKinds = failed
	result.Partial = len(failed) > 0

	monitor.Finish(result)
	return result, nil
}

// Search performs context-aware retrieval: session compression, intent
// classification into a query plan, concurrent fan-out, and aggregation.
func (s *Searcher) Search(ctx context.Context, query string, opts *SearchOptions) (*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor is Search with stage callbacks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts *SearchOptions, monitor SearchMonitor) (*core.SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if query == "" {
		return nil, core.ErrEmptyQuery
	}
	if err := core.ValidateScope(opts.TargetURI); err != nil {
		return nil, err
	}

	monitor.Start(query)

	var compressed string
	var messages []core.Message
	if opts.Session != nil {
		snapshot := opts.Session.ContextForSearch(query)
		compressed = Compress(snapshot)
		messages = snapshot.RecentMessages
	}
	monitor.AfterCompression(compressed)

	plan := s.planner.Plan(ctx, compressed, messages, query, 0, opts.TargetURI)
	monitor.AfterPlanning(plan)

	byKind, failed := s.executor.Execute(ctx, plan, opts.TargetURI, s.perTypeLimit(opts.Limit), monitor)
	result := Aggregate(byKind, 0, opts.Limit, opts.TargetURI)
	result.FailedKinds = failed
	result.Partial = len(failed) > 0

	monitor.Finish(result)
	return result, nil
}

// perTypeLimit is the fetch limit handed to each store: the caller's limit
// when supplied, the searcher default otherwise.
func (s *Searcher) perTypeLimit(callerLimit int) int {
	if callerLimit > 0 {
		return callerLimit
	}
	return s.fetchLimit
}
