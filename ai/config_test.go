package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
	assert.Equal(t, 4, cfg.MaxSubQueries)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://classifier:8080/v1"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithClassifierModel("gpt-4o-mini"),
		WithMaxSubQueries(6),
	)
	assert.Equal(t, "http://classifier:8080/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://classifier:8080/v1", cfg.ClassifierHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ClassifierModel)
	assert.Equal(t, 6, cfg.MaxSubQueries)
}

func TestNewConfig_SplitHosts(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://embed:8080/v1"),
		WithClassifierHost("http://classify:8080/v1"),
	)
	assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://classify:8080/v1", cfg.ClassifierHost)
}

func TestNormalize_AddsV1Suffix(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)

	cfg = NewConfig(WithHost("http://localhost:11434/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
}

func TestValidate(t *testing.T) {
	t.Run("missing embedding host", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing classifier model", func(t *testing.T) {
		cfg := NewConfig(WithClassifierModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("sub-query cap out of range", func(t *testing.T) {
		assert.Error(t, NewConfig(WithMaxSubQueries(0)).Validate())
		assert.Error(t, NewConfig(WithMaxSubQueries(9)).Validate())
		assert.NoError(t, NewConfig(WithMaxSubQueries(8)).Validate())
	})
}
