package badger

import (
	"fmt"

	"github.com/poiesic/recall/core"
)

// Key prefix for document records. Full key format: docrec:<kind>:<uri>.
// URIs under a common scope prefix share a key prefix, so scoped fetches
// reduce to prefix iteration.
const documentRecordPrefix = "docrec"

// makeDocumentKey generates a key for a document by partition and URI.
func makeDocumentKey(kind core.ContextType, uri string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentRecordPrefix, kind, uri))
}

// makeScopePrefix generates the iteration prefix for all documents of a
// partition whose URIs start with scope. An empty scope covers the whole
// partition.
func makeScopePrefix(kind core.ContextType, scope string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentRecordPrefix, kind, scope))
}
