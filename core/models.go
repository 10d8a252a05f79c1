package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing of the entity URI.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContextType partitions the knowledge base into independently queryable stores.
type ContextType int

const (
	// ContextTypeResource identifies the resource store (documents, files, references).
	ContextTypeResource ContextType = iota + 1
	// ContextTypeMemory identifies the memory store (distilled conversational knowledge).
	ContextTypeMemory
	// ContextTypeSkill identifies the skill store (reusable procedures and playbooks).
	ContextTypeSkill
)

// String returns the lowercase wire name of the context type.
func (t ContextType) String() string {
	switch t {
	case ContextTypeResource:
		return "resource"
	case ContextTypeMemory:
		return "memory"
	case ContextTypeSkill:
		return "skill"
	default:
		return "unknown"
	}
}

// ContextTypes lists all valid context types in canonical order.
var ContextTypes = []ContextType{ContextTypeResource, ContextTypeMemory, ContextTypeSkill}

// ParseContextType converts a wire name to a ContextType.
// Returns ErrInvalidContextType for unrecognized names.
func ParseContextType(name string) (ContextType, error) {
	switch name {
	case "resource", "RESOURCE":
		return ContextTypeResource, nil
	case "memory", "MEMORY":
		return ContextTypeMemory, nil
	case "skill", "SKILL":
		return ContextTypeSkill, nil
	default:
		return 0, ErrInvalidContextType
	}
}

// Document is the stored unit of knowledge.
// It may be enriched with an embedding vector after ingestion.
type Document struct {
	Id         ID
	URI        string
	Kind       ContextType
	Title      string
	Contents   string
	Vector     []float32         // Embedding vector for semantic scoring (populated by the ingest pipeline)
	Metadata   map[string]string // Optional metadata (e.g., "source", "mime")
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// TypedQuery is a single prioritized sub-query produced by intent classification.
// Immutable once produced by planning.
type TypedQuery struct {
	Query       string
	ContextType ContextType
	Intent      string // Free-text label, diagnostic only
	Priority    int    // Lower value = more urgent
}

// QueryPlan is the structured output of intent classification: one or more
// prioritized, typed sub-queries plus diagnostic metadata.
// Produced once per search call; not persisted.
type QueryPlan struct {
	Queries        []TypedQuery
	SessionContext string
	Reasoning      string // Diagnostic, never behavior-affecting
}

// ScoredItem is a single scored hit from a content store.
// Produced by a store, passed by value through aggregation, never mutated.
type ScoredItem struct {
	URI      string
	Kind     ContextType
	Score    float32 // Relevance in [0,1], comparable within a single aggregation
	Document *Document
}

// SearchResult is the unified result envelope returned by Find and Search.
//
// Total is the count of items surviving scope, dedupe, and threshold
// filtering before any limit truncation, so callers can distinguish
// "found more than shown" from "found exactly this many".
type SearchResult struct {
	Resources []ScoredItem
	Memories  []ScoredItem
	Skills    []ScoredItem
	Total     int

	// Partial is set when one or more content stores failed to fetch.
	// The envelope is still populated from the stores that succeeded.
	Partial     bool
	FailedKinds []ContextType
}

// Returned returns the number of items actually present in the envelope.
func (r *SearchResult) Returned() int {
	return len(r.Resources) + len(r.Memories) + len(r.Skills)
}

// Message is a single session exchange record.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}
