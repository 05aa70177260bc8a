package model

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a bounded contiguous slice of one RecipeDocument's content.
// ChunkID is unique across the whole corpus of a pipeline run; ChunkIndex
// is the 0-based position within the parent document and TotalChunks is
// identical for all chunks sharing a ParentID.
//
// ID, RID and CreatedAt are assigned by the corpus store on insert.
// Embedding stays nil until the external embedding collaborator fills it.
type Chunk struct {
	ID          int       `json:"id,omitempty"`
	RID         uuid.UUID `json:"rid,omitempty"`
	ChunkID     string    `json:"chunk_id"`
	ParentID    string    `json:"parent_id"`
	Content     string    `json:"content"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
	ChunkSize   int       `json:"chunk_size"`
	Embedding   []float32 `json:"embedding,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
