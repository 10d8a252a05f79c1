package core

// summaryKind discriminates the Summary variants.
type summaryKind int

const (
	summaryAbsent summaryKind = iota
	summaryCurrent
	summaryLegacy
)

// Summary is the session summary in one of three formats.
//
// Sessions written by current code carry a single summary text. Sessions
// persisted by older versions carry a sequence of archive summaries instead.
// Modeling the two formats as a tagged variant keeps the fallback exhaustive:
// consumers switch on the variant rather than probing optional fields, so no
// legacy summary content can be silently dropped.
type Summary struct {
	kind  summaryKind
	text  string
	parts []string
}

// NoSummary returns the absent variant.
func NoSummary() Summary {
	return Summary{kind: summaryAbsent}
}

// CurrentSummary returns the current-format variant holding a single text.
func CurrentSummary(text string) Summary {
	return Summary{kind: summaryCurrent, text: text}
}

// LegacySummaries returns the legacy variant holding ordered archive summaries.
// The parts slice is copied; the variant is immutable afterwards.
func LegacySummaries(parts []string) Summary {
	copied := make([]string, len(parts))
	copy(copied, parts)
	return Summary{kind: summaryLegacy, parts: copied}
}

// Current returns the current-format summary text, if this is that variant.
func (s Summary) Current() (string, bool) {
	return s.text, s.kind == summaryCurrent
}

// Legacy returns a copy of the legacy archive summaries, if this is that variant.
func (s Summary) Legacy() ([]string, bool) {
	if s.kind != summaryLegacy {
		return nil, false
	}
	copied := make([]string, len(s.parts))
	copy(copied, s.parts)
	return copied, true
}

// IsAbsent reports whether no summary is present in either format.
func (s Summary) IsAbsent() bool {
	return s.kind == summaryAbsent
}

// Snapshot is a read-only view of session history handed to the search path.
// It is constructed as a defensive copy; the search path never mutates it.
type Snapshot struct {
	Summary        Summary
	RecentMessages []Message
}
