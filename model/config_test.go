package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkConfigValidate(t *testing.T) {
	t.Run("Valid default configuration", func(t *testing.T) {
		config := DefaultChunkConfig()
		require.NoError(t, config.Validate())
		assert.Equal(t, 500, config.ChunkSize)
		assert.Equal(t, 50, config.ChunkOverlap)
	})

	t.Run("Valid with zero overlap", func(t *testing.T) {
		config := ChunkConfig{ChunkSize: 100, ChunkOverlap: 0}
		assert.NoError(t, config.Validate())
	})

	t.Run("Invalid with zero chunk size", func(t *testing.T) {
		config := ChunkConfig{ChunkSize: 0, ChunkOverlap: 0}
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Invalid with negative overlap", func(t *testing.T) {
		config := ChunkConfig{ChunkSize: 100, ChunkOverlap: -1}
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be negative")
	})

	t.Run("Invalid with overlap equal to chunk size", func(t *testing.T) {
		config := ChunkConfig{ChunkSize: 100, ChunkOverlap: 100}
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be smaller than chunk size")
	})

	t.Run("Invalid with overlap above chunk size", func(t *testing.T) {
		config := ChunkConfig{ChunkSize: 100, ChunkOverlap: 150}
		assert.Error(t, config.Validate())
	})
}
