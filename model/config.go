package model

import "fmt"

// ChunkConfig holds the chunking policy for a pipeline run.
type ChunkConfig struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `json:"chunk_size"`
	// ChunkOverlap is the overlap between consecutive fixed-window chunks.
	// It must stay below ChunkSize so the window stride is positive.
	ChunkOverlap int `json:"chunk_overlap"`
}

// DefaultChunkConfig returns a sensible default configuration
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize:    500,
		ChunkOverlap: 50,
	}
}

// Validate checks the configuration before any chunk is produced.
// An overlap equal to or larger than the chunk size would make the
// fixed-window stride non-positive and is rejected as a configuration error.
func (c ChunkConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk overlap must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}
