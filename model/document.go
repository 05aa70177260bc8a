package model

import (
	"time"

	"github.com/google/uuid"
)

// RecipeDocument is the composite document assembled for one recipe node.
// Content is markdown-like structured text starting with a level-1 heading
// containing the recipe name. Documents are created once per pipeline run
// and never mutated afterwards.
//
// ID, RID and CreatedAt are assigned by the corpus store on insert and are
// zero for in-memory documents.
type RecipeDocument struct {
	ID         int64     `json:"id,omitempty"`
	RID        uuid.UUID `json:"rid,omitempty"`
	NodeID     string    `json:"node_id"`
	RecipeName string    `json:"recipe_name"`
	Content    string    `json:"content"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
