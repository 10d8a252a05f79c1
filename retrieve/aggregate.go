package retrieve

import (
	"slices"
	"strings"

	"github.com/poiesic/recall/core"
)

// Aggregate merges per-type result sets into the unified search envelope.
//
// Steps, in order: scope URI-prefix filtering; per-type URI deduplication
// keeping the highest score; inclusive score-threshold filtering; per-type
// sort by score descending; proportional limit distribution across types.
// Total is set to the surviving count before limit truncation, so callers
// can distinguish "found more than shown" from "found exactly this many".
// A limit of zero or below means no cross-type cap.
func Aggregate(byKind map[core.ContextType][]core.ScoredItem, threshold float32,
	limit int, scope string) *core.SearchResult {

	surviving := make(map[core.ContextType][]core.ScoredItem, len(core.ContextTypes))
	total := 0
	for _, kind := range core.ContextTypes {
		items := filterAndDedupe(byKind[kind], threshold, scope)
		// Stable sort preserves the fan-out priority order among equal scores.
		slices.SortStableFunc(items, func(a, b core.ScoredItem) int {
			if a.Score > b.Score {
				return -1
			}
			if a.Score < b.Score {
				return 1
			}
			return 0
		})
		surviving[kind] = items
		total += len(items)
	}

	quotas := distributeLimit(surviving, limit, total)
	for _, kind := range core.ContextTypes {
		if len(surviving[kind]) > quotas[kind] {
			surviving[kind] = surviving[kind][:quotas[kind]]
		}
	}

	return &core.SearchResult{
		Resources: surviving[core.ContextTypeResource],
		Memories:  surviving[core.ContextTypeMemory],
		Skills:    surviving[core.ContextTypeSkill],
		Total:     total,
	}
}

// filterAndDedupe applies scope filtering, per-URI deduplication keeping the
// highest score, and the inclusive score threshold.
func filterAndDedupe(items []core.ScoredItem, threshold float32, scope string) []core.ScoredItem {
	best := make(map[string]core.ScoredItem, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if scope != "" && !strings.HasPrefix(item.URI, scope) {
			continue
		}
		if item.Score < threshold {
			continue
		}
		prior, ok := best[item.URI]
		if !ok {
			order = append(order, item.URI)
			best[item.URI] = item
		} else if item.Score > prior.Score {
			best[item.URI] = item
		}
	}

	out := make([]core.ScoredItem, 0, len(order))
	for _, uri := range order {
		out = append(out, best[uri])
	}
	return out
}

// distributeLimit splits a global limit across types proportionally to each
// type's surviving count. Remainder slots go one at a time to the type with
// the highest surviving maximum score that still has items beyond its quota,
// ties broken in resource, memory, skill order.
func distributeLimit(surviving map[core.ContextType][]core.ScoredItem, limit, total int) map[core.ContextType]int {
	quotas := make(map[core.ContextType]int, len(core.ContextTypes))

	if limit <= 0 || total <= limit {
		for _, kind := range core.ContextTypes {
			quotas[kind] = len(surviving[kind])
		}
		return quotas
	}

	assigned := 0
	for _, kind := range core.ContextTypes {
		quotas[kind] = limit * len(surviving[kind]) / total
		assigned += quotas[kind]
	}

	for assigned < limit {
		chosen := core.ContextType(0)
		var chosenScore float32 = -1
		for _, kind := range core.ContextTypes {
			if quotas[kind] >= len(surviving[kind]) {
				continue
			}
			// Items are sorted, so the max score is the first one.
			if score := surviving[kind][0].Score; score > chosenScore {
				chosen = kind
				chosenScore = score
			}
		}
		if chosen == 0 {
			break
		}
		quotas[chosen]++
		assigned++
	}

	return quotas
}
