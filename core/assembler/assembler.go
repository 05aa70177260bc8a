// Package assembler composes one structured-text document per recipe node
// by joining the recipe's properties with its related ingredients and
// ordered cooking steps.
package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/siherrmann/cookgraph/graph"
	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
)

// The REQUIRES and CONTAINS_STEP traversals are fetched once for the whole
// corpus and grouped by recipe id in memory, instead of two round trips per
// recipe. ORDER BY r.nodeId plus the per-recipe sort key keeps the grouped
// output identical to per-recipe queries.
const ingredientsQuery = `
MATCH (r:Recipe)-[req:REQUIRES]->(i:Ingredient)
WHERE r.nodeId >= $watermark
RETURN r.nodeId AS recipeId, i.name AS name, i.category AS category,
       req.amount AS amount, req.unit AS unit,
       i.description AS description
ORDER BY r.nodeId, i.name`

const stepsQuery = `
MATCH (r:Recipe)-[c:CONTAINS_STEP]->(s:CookingStep)
WHERE r.nodeId >= $watermark
RETURN r.nodeId AS recipeId, s.name AS name, s.description AS description,
       s.stepNumber AS stepNumber, s.methods AS methods,
       s.tools AS tools, s.timeEstimate AS timeEstimate,
       c.stepOrder AS stepOrder
ORDER BY r.nodeId, coalesce(c.stepOrder, s.stepNumber, 999)`

// Assembler builds recipe documents from loaded recipe nodes and the
// relationship traversals of the graph source.
type Assembler struct {
	// Watermark must match the loader's watermark so the traversals cover
	// exactly the loaded recipe set.
	Watermark string

	source graph.Source
	log    *slog.Logger
}

// New creates an assembler reading traversals from the given source.
func New(source graph.Source, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assembler{
		Watermark: "200000000",
		source:    source,
		log:       logger,
	}
}

// BuildRecipeDocuments assembles one document per loaded recipe node and
// stores them on the corpus. A single malformed recipe is logged and
// skipped; only traversal query failures abort the batch.
func (a *Assembler) BuildRecipeDocuments(ctx context.Context, corpus *model.Corpus) ([]*model.RecipeDocument, error) {
	a.log.Info("Building recipe documents", "recipes", len(corpus.Recipes))

	params := map[string]interface{}{"watermark": a.Watermark}

	ingredientRecords, err := a.source.RunQuery(ctx, ingredientsQuery, params)
	if err != nil {
		return nil, helper.NewError("load ingredient relations", err)
	}
	ingredientsByRecipe := groupIngredients(ingredientRecords)

	stepRecords, err := a.source.RunQuery(ctx, stepsQuery, params)
	if err != nil {
		return nil, helper.NewError("load step relations", err)
	}
	stepsByRecipe := groupSteps(stepRecords)

	documents := make([]*model.RecipeDocument, 0, len(corpus.Recipes))
	for _, recipe := range corpus.Recipes {
		doc, err := a.composeDocument(recipe, ingredientsByRecipe[recipe.NodeID], stepsByRecipe[recipe.NodeID])
		if err != nil {
			a.log.Warn("Failed to build recipe document",
				"recipe", recipe.Name, "node_id", recipe.NodeID, "error", err)
			continue
		}
		documents = append(documents, doc)
	}

	corpus.Documents = documents
	a.log.Info("Built recipe documents", "count", len(documents))

	return documents, nil
}

// groupIngredients renders each REQUIRES record as a single ingredient line
// and groups the lines by recipe id, preserving query order.
func groupIngredients(records []graph.Record) map[string][]string {
	grouped := make(map[string][]string)
	for _, record := range records {
		recipeID, _ := record["recipeId"].(string)
		name, _ := record["name"].(string)

		text := name
		if present(record["amount"]) && present(record["unit"]) {
			text += fmt.Sprintf("(%v%v)", record["amount"], record["unit"])
		}
		if present(record["description"]) {
			text += fmt.Sprintf(" - %v", record["description"])
		}

		grouped[recipeID] = append(grouped[recipeID], text)
	}
	return grouped
}

// groupSteps renders each CONTAINS_STEP record as a multi-line step block
// and groups the blocks by recipe id, preserving query order.
func groupSteps(records []graph.Record) map[string][]string {
	grouped := make(map[string][]string)
	for _, record := range records {
		recipeID, _ := record["recipeId"].(string)

		text := fmt.Sprintf("步骤: %v", record["name"])
		if present(record["description"]) {
			text += fmt.Sprintf("\n描述: %v", record["description"])
		}
		if present(record["methods"]) {
			text += fmt.Sprintf("\n方法: %v", record["methods"])
		}
		if present(record["tools"]) {
			text += fmt.Sprintf("\n工具: %v", record["tools"])
		}
		if present(record["timeEstimate"]) {
			text += fmt.Sprintf("\n时间: %v", record["timeEstimate"])
		}

		grouped[recipeID] = append(grouped[recipeID], text)
	}
	return grouped
}

// composeDocument renders the full document content for one recipe and
// attaches the provenance metadata.
func (a *Assembler) composeDocument(recipe *model.GraphNode, ingredients []string, steps []string) (*model.RecipeDocument, error) {
	if recipe.NodeID == "" {
		return nil, fmt.Errorf("recipe node has no node id")
	}
	if recipe.Name == "" {
		return nil, fmt.Errorf("recipe node %v has no name", recipe.NodeID)
	}

	props := recipe.Properties
	contentParts := []string{fmt.Sprintf("# %v", recipe.Name)}

	if present(props["description"]) {
		contentParts = append(contentParts, fmt.Sprintf("\n## 菜品描述\n%v", props["description"]))
	}

	if present(props["cuisineType"]) {
		contentParts = append(contentParts, fmt.Sprintf("\n菜系: %v", props["cuisineType"]))
	}

	if present(props["difficulty"]) {
		contentParts = append(contentParts, fmt.Sprintf("难度: %v星", props["difficulty"]))
	}

	if present(props["prepTime"]) || present(props["cookTime"]) {
		var timeInfo []string
		if present(props["prepTime"]) {
			timeInfo = append(timeInfo, fmt.Sprintf("准备时间: %v", props["prepTime"]))
		}
		if present(props["cookTime"]) {
			timeInfo = append(timeInfo, fmt.Sprintf("烹饪时间: %v", props["cookTime"]))
		}
		contentParts = append(contentParts, fmt.Sprintf("\n时间信息: %v", strings.Join(timeInfo, ", ")))
	}

	if present(props["servings"]) {
		contentParts = append(contentParts, fmt.Sprintf("份量: %v", props["servings"]))
	}

	if len(ingredients) > 0 {
		contentParts = append(contentParts, "\n## 所需食材")
		for i, ingredient := range ingredients {
			contentParts = append(contentParts, fmt.Sprintf("%d. %v", i+1, ingredient))
		}
	}

	if len(steps) > 0 {
		contentParts = append(contentParts, "\n## 制作步骤")
		for i, step := range steps {
			contentParts = append(contentParts, fmt.Sprintf("\n### 第%d步\n%v", i+1, step))
		}
	}

	if present(props["tags"]) {
		contentParts = append(contentParts, fmt.Sprintf("\n## 标签\n%v", props["tags"]))
	}

	fullContent := strings.Join(contentParts, "\n")

	metadata := model.Metadata{
		"node_id":           recipe.NodeID,
		"recipe_name":       recipe.Name,
		"node_type":         "Recipe",
		"category":          propOr(props, "category", "unknown"),
		"cuisine_type":      propOr(props, "cuisineType", "unknown"),
		"difficulty":        propOr(props, "difficulty", 0),
		"prep_time":         propOr(props, "prepTime", ""),
		"cook_time":         propOr(props, "cookTime", ""),
		"servings":          propOr(props, "servings", ""),
		"ingredients_count": len(ingredients),
		"steps_count":       len(steps),
		"doc_type":          "recipe",
		"content_length":    utf8.RuneCountInString(fullContent),
	}

	return &model.RecipeDocument{
		NodeID:     recipe.NodeID,
		RecipeName: recipe.Name,
		Content:    fullContent,
		Metadata:   metadata,
	}, nil
}

// propOr returns the raw property value when present, else the fallback.
func propOr(props model.Properties, key string, fallback interface{}) interface{} {
	if present(props[key]) {
		return props[key]
	}
	return fallback
}

// present mirrors the truthiness rules of the source data: nil, empty
// strings, zero numbers and empty lists all count as absent.
func present(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []interface{}:
		return len(v) > 0
	case []string:
		return len(v) > 0
	default:
		return true
	}
}
