// Package loader pulls the recipe, ingredient and cooking step node
// collections out of the graph store and normalizes them into in-memory
// records for the document assembler.
package loader

import (
	"context"
	"log/slog"

	"github.com/siherrmann/cookgraph/graph"
	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
)

// NodeIDWatermark is the default node-id threshold separating this corpus's
// node-id space from other data in the same store. Node ids below the
// watermark belong to foreign datasets and are never loaded.
const NodeIDWatermark = "200000000"

const recipesQuery = `
MATCH (r:Recipe)
WHERE r.nodeId >= $watermark
OPTIONAL MATCH (r)-[:BELONGS_TO_CATEGORY]->(c:Category)
WITH r, collect(c.name) AS categories
RETURN r.nodeId AS nodeId, labels(r) AS labels, r.name AS name,
       properties(r) AS properties,
       CASE WHEN size(categories) > 0
            THEN categories[0]
            ELSE coalesce(r.category, 'unknown') END AS mainCategory,
       CASE WHEN size(categories) > 0
            THEN categories
            ELSE [coalesce(r.category, 'unknown')] END AS allCategories
ORDER BY r.nodeId`

const ingredientsQuery = `
MATCH (i:Ingredient)
WHERE i.nodeId >= $watermark
RETURN i.nodeId AS nodeId, labels(i) AS labels, i.name AS name,
       properties(i) AS properties
ORDER BY i.nodeId`

const stepsQuery = `
MATCH (s:CookingStep)
WHERE s.nodeId >= $watermark
RETURN s.nodeId AS nodeId, labels(s) AS labels, s.name AS name,
       properties(s) AS properties
ORDER BY s.nodeId`

// Result holds the cardinalities of the loaded node collections.
type Result struct {
	Recipes      int `json:"recipes"`
	Ingredients  int `json:"ingredients"`
	CookingSteps int `json:"cooking_steps"`
}

// Loader loads graph nodes into a corpus. A query failure is fatal for the
// whole load; there is no partial loading.
type Loader struct {
	// Watermark filters the in-scope node-id space. Defaults to
	// NodeIDWatermark and can be overridden before Load.
	Watermark string

	source graph.Source
	log    *slog.Logger
}

// New creates a loader reading from the given source.
func New(source graph.Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		Watermark: NodeIDWatermark,
		source:    source,
		log:       logger,
	}
}

// Load populates the corpus node collections and returns their
// cardinalities. Documents and chunks are left untouched.
func (l *Loader) Load(ctx context.Context, corpus *model.Corpus) (*Result, error) {
	l.log.Info("Loading graph data", "watermark", l.Watermark)

	params := map[string]interface{}{"watermark": l.Watermark}

	records, err := l.source.RunQuery(ctx, recipesQuery, params)
	if err != nil {
		return nil, helper.NewError("load recipe nodes", err)
	}

	corpus.Recipes = make([]*model.GraphNode, 0, len(records))
	for _, record := range records {
		node := nodeFromRecord(record)
		// Merge resolved category information into the property bag.
		node.Properties["category"] = record["mainCategory"]
		node.Properties["all_categories"] = record["allCategories"]
		corpus.Recipes = append(corpus.Recipes, node)
	}

	l.log.Info("Loaded recipe nodes", "count", len(corpus.Recipes))

	records, err = l.source.RunQuery(ctx, ingredientsQuery, params)
	if err != nil {
		return nil, helper.NewError("load ingredient nodes", err)
	}

	corpus.Ingredients = make([]*model.GraphNode, 0, len(records))
	for _, record := range records {
		corpus.Ingredients = append(corpus.Ingredients, nodeFromRecord(record))
	}

	l.log.Info("Loaded ingredient nodes", "count", len(corpus.Ingredients))

	records, err = l.source.RunQuery(ctx, stepsQuery, params)
	if err != nil {
		return nil, helper.NewError("load cooking step nodes", err)
	}

	corpus.CookingSteps = make([]*model.GraphNode, 0, len(records))
	for _, record := range records {
		corpus.CookingSteps = append(corpus.CookingSteps, nodeFromRecord(record))
	}

	l.log.Info("Loaded cooking step nodes", "count", len(corpus.CookingSteps))

	return &Result{
		Recipes:      len(corpus.Recipes),
		Ingredients:  len(corpus.Ingredients),
		CookingSteps: len(corpus.CookingSteps),
	}, nil
}

// nodeFromRecord converts a query record into a GraphNode. Properties are
// cloned so later category merging never mutates driver-owned maps.
func nodeFromRecord(record graph.Record) *model.GraphNode {
	properties := model.Properties{}
	if m, ok := record["properties"].(map[string]interface{}); ok {
		properties = model.Properties(m).Clone()
	}

	name, _ := record["name"].(string)
	nodeID, _ := record["nodeId"].(string)

	return &model.GraphNode{
		NodeID:     nodeID,
		Labels:     toStringSlice(record["labels"]),
		Name:       name,
		Properties: properties,
	}
}

func toStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}
