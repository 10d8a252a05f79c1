package retrieve

import (
	"context"
	"log/slog"
	"slices"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

// Planner owns the contract with the intent classifier: it builds the
// classifier's input, validates its output, and substitutes a deterministic
// fallback plan when classification is unavailable or degenerate.
// Search availability is prioritized over plan quality, so Plan never
// returns an error.
type Planner struct {
	classifier ai.IntentClassifier
	logger     *slog.Logger
}

// NewPlanner creates a planner over the given classifier.
func NewPlanner(classifier ai.IntentClassifier, logger *slog.Logger) (*Planner, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{classifier: classifier, logger: logger}, nil
}

// Plan produces a query plan for the current query.
//
// The classifier response is validated entry by entry: an empty query text,
// an unknown context type, a priority below 1, or the same query string
// planned under conflicting context types all mark the plan degenerate.
// Degenerate, empty, or errored responses degrade to the fallback plan.
// Surviving queries are sorted by priority (stable, lower value first).
func (p *Planner) Plan(ctx context.Context, compressed string, messages []core.Message,
	query string, hint core.ContextType, scope string) *core.QueryPlan {

	plan, err := p.classifier.Analyze(ctx, compressed, messages, query, hint, scope)
	if err != nil {
		p.logger.Warn("intent classification failed, using fallback plan", "error", err)
		return p.fallbackPlan(query, compressed)
	}
	if plan == nil || len(plan.Queries) == 0 {
		p.logger.Warn("intent classification returned no queries, using fallback plan")
		return p.fallbackPlan(query, compressed)
	}

	if !validPlanQueries(plan.Queries) {
		p.logger.Warn("intent classification returned a malformed plan, using fallback plan",
			"queries", len(plan.Queries))
		return p.fallbackPlan(query, compressed)
	}

	queries := make([]core.TypedQuery, len(plan.Queries))
	copy(queries, plan.Queries)
	slices.SortStableFunc(queries, func(a, b core.TypedQuery) int {
		return a.Priority - b.Priority
	})

	return &core.QueryPlan{
		Queries:        queries,
		SessionContext: compressed,
		Reasoning:      plan.Reasoning,
	}
}

// validPlanQueries reports whether every planned query is well-formed and no
// query string is planned under two different context types.
func validPlanQueries(queries []core.TypedQuery) bool {
	seen := make(map[string]core.ContextType, len(queries))
	for _, q := range queries {
		if q.Query == "" {
			return false
		}
		if core.ValidateContextType(q.ContextType) != nil {
			return false
		}
		if q.Priority < 1 {
			return false
		}
		if prior, ok := seen[q.Query]; ok && prior != q.ContextType {
			return false
		}
		seen[q.Query] = q.ContextType
	}
	return true
}

// fallbackPlan is the deterministic single-query plan used when
// classification cannot be trusted: the caller's query verbatim, against
// resources, at the most urgent priority.
func (p *Planner) fallbackPlan(query, compressed string) *core.QueryPlan {
	return &core.QueryPlan{
		Queries: []core.TypedQuery{
			{Query: query, ContextType: core.ContextTypeResource, Intent: "fallback", Priority: 1},
		},
		SessionContext: compressed,
		Reasoning:      "fallback",
	}
}
