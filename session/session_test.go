package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextForSearch_SummaryVariants(t *testing.T) {
	t.Run("no summary", func(t *testing.T) {
		s := New()
		snapshot := s.ContextForSearch("query")
		assert.True(t, snapshot.Summary.IsAbsent())
	})

	t.Run("current summary", func(t *testing.T) {
		s := New()
		s.SetSummary("the conversation so far")
		snapshot := s.ContextForSearch("query")
		text, ok := snapshot.Summary.Current()
		require.True(t, ok)
		assert.Equal(t, "the conversation so far", text)
	})

	t.Run("legacy summaries when no current summary", func(t *testing.T) {
		s := New()
		s.RestoreArchivedSummaries([]string{"part one", "part two"})
		snapshot := s.ContextForSearch("query")
		parts, ok := snapshot.Summary.Legacy()
		require.True(t, ok)
		assert.Equal(t, []string{"part one", "part two"}, parts)
	})

	t.Run("current summary takes precedence over legacy", func(t *testing.T) {
		s := New()
		s.RestoreArchivedSummaries([]string{"old"})
		s.SetSummary("new")
		snapshot := s.ContextForSearch("query")
		text, ok := snapshot.Summary.Current()
		require.True(t, ok)
		assert.Equal(t, "new", text)
	})
}

func TestContextForSearch_RecentMessageWindow(t *testing.T) {
	s := New()
	for _, content := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8"} {
		s.AddMessage("user", content)
	}

	snapshot := s.ContextForSearch("query")
	require.Len(t, snapshot.RecentMessages, 6)
	assert.Equal(t, "m3", snapshot.RecentMessages[0].Content)
	assert.Equal(t, "m8", snapshot.RecentMessages[5].Content)
}

func TestContextForSearch_SnapshotIsImmutableView(t *testing.T) {
	s := New()
	s.AddMessage("user", "original")
	s.RestoreArchivedSummaries([]string{"archive"})

	snapshot := s.ContextForSearch("query")
	snapshot.RecentMessages[0].Content = "mutated"
	if parts, ok := snapshot.Summary.Legacy(); ok {
		parts[0] = "mutated"
	}

	fresh := s.ContextForSearch("query")
	assert.Equal(t, "original", fresh.RecentMessages[0].Content)
	parts, ok := fresh.Summary.Legacy()
	require.True(t, ok)
	assert.Equal(t, "archive", parts[0])
}

func TestRestoreArchivedSummaries_CopiesInput(t *testing.T) {
	s := New()
	input := []string{"a", "b"}
	s.RestoreArchivedSummaries(input)
	input[0] = "mutated"

	parts, ok := s.ContextForSearch("q").Summary.Legacy()
	require.True(t, ok)
	assert.Equal(t, "a", parts[0])
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.AddMessage("user", "hello")
				s.ContextForSearch("q")
				s.Messages()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, s.Messages(), 400)
}
