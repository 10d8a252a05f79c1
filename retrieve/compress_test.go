package retrieve

import (
	"testing"

	"github.com/poiesic/recall/core"
	"github.com/stretchr/testify/assert"
)

func TestCompress(t *testing.T) {
	t.Run("current summary used verbatim", func(t *testing.T) {
		snapshot := core.Snapshot{Summary: core.CurrentSummary("we discussed deployment")}
		assert.Equal(t, "we discussed deployment", Compress(snapshot))
	})

	t.Run("legacy summaries joined in order", func(t *testing.T) {
		snapshot := core.Snapshot{
			Summary: core.LegacySummaries([]string{"archive summary one", "archive summary two"}),
		}
		got := Compress(snapshot)
		assert.Equal(t, "archive summary one\n\narchive summary two", got)
	})

	t.Run("absent summary yields empty text", func(t *testing.T) {
		snapshot := core.Snapshot{Summary: core.NoSummary()}
		assert.Equal(t, "", Compress(snapshot))
	})

	t.Run("zero value snapshot yields empty text", func(t *testing.T) {
		assert.Equal(t, "", Compress(core.Snapshot{}))
	})

	t.Run("messages do not affect compression", func(t *testing.T) {
		snapshot := core.Snapshot{
			Summary:        core.CurrentSummary("summary"),
			RecentMessages: []core.Message{{Role: "user", Content: "hello"}},
		}
		assert.Equal(t, "summary", Compress(snapshot))
	})
}
