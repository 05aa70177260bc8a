package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/cookgraph"
	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
)

func main() {
	ctx := context.Background()

	// Connection parameters come from the environment (or a .env file):
	// NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD, NEO4J_DATABASE.
	graphConfig, err := helper.NewGraphConfiguration()
	if err != nil {
		log.Fatalf("Failed to load graph configuration: %v", err)
	}

	cg, err := cookgraph.NewCookGraph(ctx, graphConfig)
	if err != nil {
		log.Fatalf("Failed to connect to graph store: %v", err)
	}
	defer cg.Close(ctx)

	// Build the document/chunk corpus for the whole recipe graph.
	statistics, err := cg.BuildCorpus(ctx, model.DefaultChunkConfig())
	if err != nil {
		log.Fatalf("Failed to build corpus: %v", err)
	}

	fmt.Printf("Recipes:    %d\n", statistics.TotalRecipes)
	fmt.Printf("Documents:  %d\n", statistics.TotalDocuments)
	fmt.Printf("Chunks:     %d\n", statistics.TotalChunks)
	fmt.Printf("Avg length: %.1f\n", statistics.AvgContentLength)

	for category, count := range statistics.Categories {
		fmt.Printf("  category %s: %d\n", category, count)
	}

	if len(cg.Corpus.Chunks) > 0 {
		first := cg.Corpus.Chunks[0]
		fmt.Printf("\nFirst chunk (%s, %d/%d):\n%s\n",
			first.ChunkID, first.ChunkIndex+1, first.TotalChunks, first.Content)
	}
}
