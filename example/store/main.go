package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/cookgraph"
	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
	loadSql "github.com/siherrmann/cookgraph/sql"
)

// Builds the corpus and persists it into a PostgreSQL store so the external
// embedding/indexing collaborators can pick it up.
func main() {
	ctx := context.Background()

	graphConfig, err := helper.NewGraphConfiguration()
	if err != nil {
		log.Fatalf("Failed to load graph configuration: %v", err)
	}

	dbConfig, err := helper.NewDatabaseConfiguration()
	if err != nil {
		log.Fatalf("Failed to load database configuration: %v", err)
	}

	cg, err := cookgraph.NewCookGraph(ctx, graphConfig)
	if err != nil {
		log.Fatalf("Failed to connect to graph store: %v", err)
	}
	defer cg.Close(ctx)

	db := helper.NewDatabase("cookgraph", dbConfig, nil)
	defer db.Close()

	if err := loadSql.Init(db.Instance); err != nil {
		log.Fatalf("Failed to initialize database extensions: %v", err)
	}

	if err := cg.UseStore(db); err != nil {
		log.Fatalf("Failed to attach corpus store: %v", err)
	}

	statistics, err := cg.BuildCorpus(ctx, model.DefaultChunkConfig())
	if err != nil {
		log.Fatalf("Failed to build corpus: %v", err)
	}

	if err := cg.PersistCorpus(); err != nil {
		log.Fatalf("Failed to persist corpus: %v", err)
	}

	fmt.Printf("Persisted %d documents and %d chunks\n",
		statistics.TotalDocuments, statistics.TotalChunks)
}
