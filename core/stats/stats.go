// Package stats computes descriptive statistics over the assembled corpus.
package stats

import (
	"strconv"

	"github.com/siherrmann/cookgraph/model"
)

// Compute derives the corpus statistics from the current state of a
// pipeline run. It is a pure read: empty collections yield zeroed counts
// and no histograms, and the chunk-size mean is 0 when no chunks exist.
func Compute(corpus *model.Corpus) *model.CorpusStatistics {
	statistics := &model.CorpusStatistics{
		TotalRecipes:      len(corpus.Recipes),
		TotalIngredients:  len(corpus.Ingredients),
		TotalCookingSteps: len(corpus.CookingSteps),
		TotalDocuments:    len(corpus.Documents),
		TotalChunks:       len(corpus.Chunks),
	}

	if len(corpus.Documents) == 0 {
		return statistics
	}

	categories := make(map[string]int)
	cuisines := make(map[string]int)
	difficulties := make(map[string]int)

	totalContentLength := 0
	for _, doc := range corpus.Documents {
		categories[doc.Metadata.StringOr("category", "unknown")]++
		cuisines[doc.Metadata.StringOr("cuisine_type", "unknown")]++
		difficulties[strconv.Itoa(doc.Metadata.IntOr("difficulty", 0))]++

		totalContentLength += doc.Metadata.IntOr("content_length", 0)
	}

	statistics.Categories = categories
	statistics.Cuisines = cuisines
	statistics.Difficulties = difficulties
	statistics.AvgContentLength = float64(totalContentLength) / float64(len(corpus.Documents))

	if len(corpus.Chunks) > 0 {
		totalChunkSize := 0
		for _, chunk := range corpus.Chunks {
			totalChunkSize += chunk.Metadata.IntOr("chunk_size", 0)
		}
		statistics.AvgChunkSize = float64(totalChunkSize) / float64(len(corpus.Chunks))
	}

	return statistics
}
