package model

// CorpusStatistics describes the current document/chunk corpus. It is
// recomputed on demand and never persisted.
type CorpusStatistics struct {
	TotalRecipes      int `json:"total_recipes"`
	TotalIngredients  int `json:"total_ingredients"`
	TotalCookingSteps int `json:"total_cooking_steps"`
	TotalDocuments    int `json:"total_documents"`
	TotalChunks       int `json:"total_chunks"`

	// Histograms keyed by the corresponding document metadata field.
	// Only populated when documents exist.
	Categories   map[string]int `json:"categories,omitempty"`
	Cuisines     map[string]int `json:"cuisines,omitempty"`
	Difficulties map[string]int `json:"difficulties,omitempty"`

	AvgContentLength float64 `json:"avg_content_length,omitempty"`
	AvgChunkSize     float64 `json:"avg_chunk_size,omitempty"`
}
