package retrieve

import (
	"strings"

	"github.com/poiesic/recall/core"
)

// legacySummarySeparator joins archived summary fragments when compressing
// a session written by an older version.
const legacySummarySeparator = "\n\n"

// Compress reduces a session snapshot into the planning context blob.
//
// A current-format summary is used verbatim. Legacy archived summaries are
// joined in order so no content from an older session is dropped by the
// field migration. A snapshot with neither yields an empty string, which
// downstream planning tolerates.
func Compress(snapshot core.Snapshot) string {
	if text, ok := snapshot.Summary.Current(); ok {
		return text
	}
	if parts, ok := snapshot.Summary.Legacy(); ok {
		return strings.Join(parts, legacySummarySeparator)
	}
	return ""
}
