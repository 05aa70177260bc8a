package stats

import (
	"testing"

	"github.com/siherrmann/cookgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func document(category string, cuisine string, difficulty int, contentLength int) *model.RecipeDocument {
	return &model.RecipeDocument{
		Metadata: model.Metadata{
			"category":       category,
			"cuisine_type":   cuisine,
			"difficulty":     difficulty,
			"content_length": contentLength,
		},
	}
}

func TestCompute(t *testing.T) {
	t.Run("Empty corpus yields zeroed statistics", func(t *testing.T) {
		statistics := Compute(model.NewCorpus())

		assert.Equal(t, 0, statistics.TotalRecipes)
		assert.Equal(t, 0, statistics.TotalDocuments)
		assert.Equal(t, 0, statistics.TotalChunks)
		assert.Nil(t, statistics.Categories)
		assert.Equal(t, float64(0), statistics.AvgContentLength)
		assert.Equal(t, float64(0), statistics.AvgChunkSize)
	})

	t.Run("Node counts reflect collection sizes", func(t *testing.T) {
		corpus := model.NewCorpus()
		corpus.Recipes = []*model.GraphNode{{NodeID: "200000001"}, {NodeID: "200000002"}}
		corpus.Ingredients = []*model.GraphNode{{NodeID: "200000101"}}
		corpus.CookingSteps = []*model.GraphNode{{NodeID: "200000201"}, {NodeID: "200000202"}, {NodeID: "200000203"}}

		statistics := Compute(corpus)

		assert.Equal(t, 2, statistics.TotalRecipes)
		assert.Equal(t, 1, statistics.TotalIngredients)
		assert.Equal(t, 3, statistics.TotalCookingSteps)
	})

	t.Run("Histograms and content mean over documents", func(t *testing.T) {
		corpus := model.NewCorpus()
		corpus.Documents = []*model.RecipeDocument{
			document("家常菜", "中餐", 2, 100),
			document("家常菜", "川菜", 3, 200),
			document("硬菜", "中餐", 2, 300),
		}

		statistics := Compute(corpus)

		assert.Equal(t, 3, statistics.TotalDocuments)
		assert.Equal(t, map[string]int{"家常菜": 2, "硬菜": 1}, statistics.Categories)
		assert.Equal(t, map[string]int{"中餐": 2, "川菜": 1}, statistics.Cuisines)
		assert.Equal(t, map[string]int{"2": 2, "3": 1}, statistics.Difficulties)
		assert.Equal(t, float64(200), statistics.AvgContentLength)
	})

	t.Run("Missing metadata falls back to unknown buckets", func(t *testing.T) {
		corpus := model.NewCorpus()
		corpus.Documents = []*model.RecipeDocument{
			{Metadata: model.Metadata{}},
		}

		statistics := Compute(corpus)

		assert.Equal(t, map[string]int{"unknown": 1}, statistics.Categories)
		assert.Equal(t, map[string]int{"unknown": 1}, statistics.Cuisines)
		assert.Equal(t, map[string]int{"0": 1}, statistics.Difficulties)
	})

	t.Run("Chunk-size mean only with chunks present", func(t *testing.T) {
		corpus := model.NewCorpus()
		corpus.Documents = []*model.RecipeDocument{document("家常菜", "中餐", 2, 100)}

		statistics := Compute(corpus)
		require.Equal(t, float64(0), statistics.AvgChunkSize)

		corpus.Chunks = []*model.Chunk{
			{Metadata: model.Metadata{"chunk_size": 400}},
			{Metadata: model.Metadata{"chunk_size": 200}},
		}

		statistics = Compute(corpus)
		assert.Equal(t, 2, statistics.TotalChunks)
		assert.Equal(t, float64(300), statistics.AvgChunkSize)
	})
}
