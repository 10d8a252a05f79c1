package session

import (
	"sync"
	"time"

	"github.com/poiesic/recall/core"
)

// recentMessageWindow is how many trailing messages a snapshot carries.
const recentMessageWindow = 6

// Session tracks one conversation: its messages, an optional compression
// summary, and any summaries restored from an archived session. All methods
// are safe for concurrent use.
type Session struct {
	mu                sync.RWMutex
	messages          []core.Message
	summary           string
	archivedSummaries []string
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// AddMessage appends a message to the conversation, stamped with the
// current time.
func (s *Session) AddMessage(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, core.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

// SetSummary records the compression summary for the live conversation.
// Setting a summary takes precedence over any restored archive summaries.
func (s *Session) SetSummary(summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

// RestoreArchivedSummaries loads summary fragments from an archived session.
// They are used as session context only while no live summary is set.
func (s *Session) RestoreArchivedSummaries(summaries []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archivedSummaries = make([]string, len(summaries))
	copy(s.archivedSummaries, summaries)
}

// Messages returns a copy of the full message history.
func (s *Session) Messages() []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ContextForSearch captures the session state used for context-aware
// search: the summary variant and the most recent messages. The returned
// snapshot is a defensive copy; the search path never mutates the session.
func (s *Session) ContextForSearch(_ string) core.Snapshot {
	return s.snapshot()
}

func (s *Session) snapshot() core.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary core.Summary
	switch {
	case s.summary != "":
		summary = core.CurrentSummary(s.summary)
	case len(s.archivedSummaries) > 0:
		summary = core.LegacySummaries(s.archivedSummaries)
	default:
		summary = core.NoSummary()
	}

	start := 0
	if len(s.messages) > recentMessageWindow {
		start = len(s.messages) - recentMessageWindow
	}
	recent := make([]core.Message, len(s.messages)-start)
	copy(recent, s.messages[start:])

	return core.Snapshot{
		Summary:        summary,
		RecentMessages: recent,
	}
}
