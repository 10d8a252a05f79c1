package retrieve

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// fetchSlot holds the outcome of one planned fetch. Each fetch owns its own
// slot; slots are merged only after the join barrier.
type fetchSlot struct {
	items   []core.ScoredItem
	err     error
	settled bool
}

// Executor dispatches planned queries to their content stores concurrently.
type Executor struct {
	stores map[core.ContextType]storage.DocumentStore
	pool   *ants.Pool
	logger *slog.Logger
}

// NewExecutor creates an executor over the three partition stores.
// The worker pool is owned by the caller.
func NewExecutor(resources, memories, skills storage.DocumentStore, pool *ants.Pool, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		stores: map[core.ContextType]storage.DocumentStore{
			core.ContextTypeResource: resources,
			core.ContextTypeMemory:   memories,
			core.ContextTypeSkill:    skills,
		},
		pool:   pool,
		logger: logger,
	}
}

// Execute issues one fetch per planned query on the worker pool and waits
// for all of them to settle, or for the context deadline.
//
// On deadline, unsettled fetches are treated as failed; settled results are
// still returned. A failed fetch flags its context type in the returned
// slice but never fails the call. Within a type, items follow the priority
// order of the originating queries, then the store's native score order.
func (e *Executor) Execute(ctx context.Context, plan *core.QueryPlan, scope string,
	perTypeLimit int, monitor SearchMonitor) (map[core.ContextType][]core.ScoredItem, []core.ContextType) {

	if monitor == nil {
		monitor = &noopMonitor{}
	}

	var mu sync.Mutex
	slots := make([]fetchSlot, len(plan.Queries))

	var wg sync.WaitGroup
	for i, q := range plan.Queries {
		store := e.stores[q.ContextType]
		query := q.Query

		wg.Add(1)
		idx := i
		err := e.pool.Submit(func() {
			defer wg.Done()
			items, fetchErr := store.Fetch(ctx, query, scope, perTypeLimit)
			mu.Lock()
			slots[idx] = fetchSlot{items: items, err: fetchErr, settled: true}
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			slots[idx] = fetchSlot{err: err, settled: true}
			mu.Unlock()
		}
	}

	// Join barrier with deadline bail-out. Late fetches still write their
	// slots, but we stop waiting once the context is done.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		e.logger.Warn("deadline elapsed before all fetches settled", "error", ctx.Err())
	}

	mu.Lock()
	defer mu.Unlock()

	byKind := make(map[core.ContextType][]core.ScoredItem)
	planned := make(map[core.ContextType]bool)
	kindErr := make(map[core.ContextType]error)
	for i, q := range plan.Queries {
		planned[q.ContextType] = true
		slot := slots[i]
		switch {
		case !slot.settled:
			if kindErr[q.ContextType] == nil {
				kindErr[q.ContextType] = ctx.Err()
			}
		case slot.err != nil:
			e.logger.Warn("fetch failed", "kind", q.ContextType, "query", q.Query, "error", slot.err)
			if kindErr[q.ContextType] == nil {
				kindErr[q.ContextType] = slot.err
			}
		default:
			byKind[q.ContextType] = append(byKind[q.ContextType], slot.items...)
		}
	}

	var failed []core.ContextType
	for _, kind := range core.ContextTypes {
		if !planned[kind] {
			continue
		}
		monitor.AfterFetch(kind, byKind[kind], kindErr[kind])
		if kindErr[kind] != nil {
			failed = append(failed, kind)
		}
	}
	return byKind, failed
}
