package retrieve

import (
	"github.com/poiesic/recall/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterCompression(summary string)
	AfterPlanning(plan *core.QueryPlan)
	AfterFetch(kind core.ContextType, items []core.ScoredItem, err error)
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                          {}
func (n *noopMonitor) AfterCompression(_ string)                               {}
func (n *noopMonitor) AfterPlanning(_ *core.QueryPlan)                         {}
func (n *noopMonitor) AfterFetch(_ core.ContextType, _ []core.ScoredItem, _ error) {}
func (n *noopMonitor) Finish(_ *core.SearchResult)                             {}
