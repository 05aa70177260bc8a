package loader

import (
	"context"
	"fmt"
	"testing"

	"github.com/siherrmann/cookgraph/graph"
	"github.com/siherrmann/cookgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeRecord(nodeID string, name string, mainCategory string, allCategories []interface{}) graph.Record {
	return graph.Record{
		"nodeId": nodeID,
		"labels": []interface{}{"Recipe"},
		"name":   name,
		"properties": map[string]interface{}{
			"nodeId":     nodeID,
			"name":       name,
			"difficulty": int64(2),
		},
		"mainCategory":  mainCategory,
		"allCategories": allCategories,
	}
}

func nodeRecord(nodeID string, label string, name string) graph.Record {
	return graph.Record{
		"nodeId": nodeID,
		"labels": []interface{}{label},
		"name":   name,
		"properties": map[string]interface{}{
			"nodeId": nodeID,
			"name":   name,
		},
	}
}

func TestLoad(t *testing.T) {
	t.Run("Loads all three node collections", func(t *testing.T) {
		source := graph.NewMockSource()
		source.AddQueryResult("MATCH (r:Recipe)", []graph.Record{
			recipeRecord("200000001", "番茄炒蛋", "家常菜", []interface{}{"家常菜", "快手菜"}),
			recipeRecord("200000002", "红烧肉", "硬菜", []interface{}{"硬菜"}),
		})
		source.AddQueryResult("MATCH (i:Ingredient)", []graph.Record{
			nodeRecord("200000101", "Ingredient", "番茄"),
			nodeRecord("200000102", "Ingredient", "鸡蛋"),
			nodeRecord("200000103", "Ingredient", "五花肉"),
		})
		source.AddQueryResult("MATCH (s:CookingStep)", []graph.Record{
			nodeRecord("200000201", "CookingStep", "切配"),
		})

		corpus := model.NewCorpus()
		result, err := New(source, nil).Load(context.Background(), corpus)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Recipes)
		assert.Equal(t, 3, result.Ingredients)
		assert.Equal(t, 1, result.CookingSteps)
		require.Len(t, corpus.Recipes, 2)
		assert.Equal(t, "番茄炒蛋", corpus.Recipes[0].Name)
		assert.Equal(t, []string{"Recipe"}, corpus.Recipes[0].Labels)
		assert.Equal(t, "鸡蛋", corpus.Ingredients[1].Name)
	})

	t.Run("Merges resolved categories into recipe properties", func(t *testing.T) {
		source := graph.NewMockSource()
		source.AddQueryResult("MATCH (r:Recipe)", []graph.Record{
			recipeRecord("200000001", "番茄炒蛋", "家常菜", []interface{}{"家常菜", "快手菜"}),
		})

		corpus := model.NewCorpus()
		_, err := New(source, nil).Load(context.Background(), corpus)

		require.NoError(t, err)
		assert.Equal(t, "家常菜", corpus.Recipes[0].Properties.StringOr("category", ""))
		assert.Equal(t, []interface{}{"家常菜", "快手菜"}, corpus.Recipes[0].Properties["all_categories"])
	})

	t.Run("Passes the watermark to every query", func(t *testing.T) {
		source := graph.NewMockSource()

		corpus := model.NewCorpus()
		_, err := New(source, nil).Load(context.Background(), corpus)

		require.NoError(t, err)
		calls := source.Calls()
		require.Len(t, calls, 3)
		for _, call := range calls {
			assert.Contains(t, call.Query, "$watermark")
			assert.Equal(t, NodeIDWatermark, call.Params["watermark"])
		}
	})

	t.Run("Custom watermark overrides the default", func(t *testing.T) {
		source := graph.NewMockSource()

		l := New(source, nil)
		l.Watermark = "300000000"
		_, err := l.Load(context.Background(), model.NewCorpus())

		require.NoError(t, err)
		assert.Equal(t, "300000000", source.Calls()[0].Params["watermark"])
	})

	t.Run("Empty store yields empty collections without error", func(t *testing.T) {
		source := graph.NewMockSource()

		corpus := model.NewCorpus()
		result, err := New(source, nil).Load(context.Background(), corpus)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Recipes)
		assert.Empty(t, corpus.Recipes)
		assert.Empty(t, corpus.Ingredients)
		assert.Empty(t, corpus.CookingSteps)
	})

	t.Run("Query failure aborts the whole load", func(t *testing.T) {
		source := graph.NewMockSource()
		source.AddQueryError("MATCH (i:Ingredient)", fmt.Errorf("connection reset"))

		corpus := model.NewCorpus()
		_, err := New(source, nil).Load(context.Background(), corpus)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "load ingredient nodes")
		assert.Empty(t, corpus.CookingSteps, "loading must stop at the first failure")
	})

	t.Run("Category merge does not mutate driver-owned properties", func(t *testing.T) {
		driverProps := map[string]interface{}{"nodeId": "200000001", "name": "番茄炒蛋"}
		source := graph.NewMockSource()
		source.AddQueryResult("MATCH (r:Recipe)", []graph.Record{{
			"nodeId":        "200000001",
			"labels":        []interface{}{"Recipe"},
			"name":          "番茄炒蛋",
			"properties":    driverProps,
			"mainCategory":  "家常菜",
			"allCategories": []interface{}{"家常菜"},
		}})

		_, err := New(source, nil).Load(context.Background(), model.NewCorpus())

		require.NoError(t, err)
		assert.NotContains(t, driverProps, "category")
	})
}
