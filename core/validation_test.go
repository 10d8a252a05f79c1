package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScope(t *testing.T) {
	t.Run("empty scope is unscoped", func(t *testing.T) {
		assert.NoError(t, ValidateScope(""))
	})

	t.Run("clean prefixes", func(t *testing.T) {
		for _, scope := range []string{"docs/", "resources/guides", "skills/deploy/prod"} {
			assert.NoError(t, ValidateScope(scope), scope)
		}
	})

	t.Run("whitespace rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateScope("docs/ guides"), ErrInvalidScope)
	})

	t.Run("control characters rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateScope("docs/\x00"), ErrInvalidScope)
	})

	t.Run("parent segments rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateScope("docs/../secrets"), ErrInvalidScope)
	})
}

func TestValidateDocument(t *testing.T) {
	valid := func() *Document {
		return &Document{
			URI:      "resources/guide.md",
			Kind:     ContextTypeResource,
			Title:    "Guide",
			Contents: "getting started",
		}
	}

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(valid()))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("empty URI", func(t *testing.T) {
		doc := valid()
		doc.URI = ""
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrEmptyURI)
	})

	t.Run("malformed URI", func(t *testing.T) {
		doc := valid()
		doc.URI = "resources/../guide.md"
		assert.ErrorIs(t, ValidateDocument(doc), ErrInvalidScope)
	})

	t.Run("invalid kind", func(t *testing.T) {
		doc := valid()
		doc.Kind = ContextType(9)
		assert.ErrorIs(t, ValidateDocument(doc), ErrInvalidContextType)
	})

	t.Run("empty contents", func(t *testing.T) {
		doc := valid()
		doc.Contents = ""
		assert.ErrorIs(t, ValidateDocument(doc), ErrEmptyContent)
	})
}
