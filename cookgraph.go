// Package cookgraph turns a Neo4j property graph of recipes, ingredients
// and cooking steps into a corpus of linear text chunks for downstream
// embedding and retrieval.
package cookgraph

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/siherrmann/cookgraph/core/assembler"
	"github.com/siherrmann/cookgraph/core/chunker"
	"github.com/siherrmann/cookgraph/core/loader"
	"github.com/siherrmann/cookgraph/core/stats"
	"github.com/siherrmann/cookgraph/database"
	"github.com/siherrmann/cookgraph/graph"
	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
)

var errNoStore = errors.New("no corpus store attached, call UseStore first")

// CookGraph provides a unified interface to the corpus building pipeline
type CookGraph struct {
	Source    graph.Source
	Loader    *loader.Loader
	Assembler *assembler.Assembler
	Corpus    *model.Corpus
	// Optional corpus store, set via UseStore
	Documents *database.DocumentsDBHandler
	Chunks    *database.ChunksDBHandler
	// Logging
	log *slog.Logger
}

// NewCookGraph connects to the configured Neo4j instance and creates a
// pipeline around it. The connection probe failure is fatal and returned.
func NewCookGraph(ctx context.Context, config *helper.GraphConfiguration) (*CookGraph, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	source, err := graph.NewNeo4jSource(ctx, config, logger)
	if err != nil {
		return nil, helper.NewError("create neo4j source", err)
	}

	return NewCookGraphWithSource(source, logger), nil
}

// NewCookGraphWithSource creates a pipeline over an existing graph source.
// Used by tests and callers that manage the source themselves.
func NewCookGraphWithSource(source graph.Source, logger *slog.Logger) *CookGraph {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &CookGraph{
		Source:    source,
		Loader:    loader.New(source, logger),
		Assembler: assembler.New(source, logger),
		Corpus:    model.NewCorpus(),
		log:       logger,
	}
}

// UseStore attaches a PostgreSQL corpus store so built documents and chunks
// can be persisted for the external indexing collaborator.
func (c *CookGraph) UseStore(db *helper.Database) error {
	documents, err := database.NewDocumentsDBHandler(db, false)
	if err != nil {
		return helper.NewError("create documents handler", err)
	}

	chunks, err := database.NewChunksDBHandler(db, database.DefaultEmbeddingDim, false)
	if err != nil {
		return helper.NewError("create chunks handler", err)
	}

	c.Documents = documents
	c.Chunks = chunks

	return nil
}

// BuildCorpus runs the full pipeline for one invocation: node loading,
// document assembly and chunking, strictly in sequence on a fresh corpus.
// It returns the statistics of the built corpus; the corpus itself is
// available on the Corpus field afterwards. Not safe for concurrent
// re-entrant invocation on the same instance.
func (c *CookGraph) BuildCorpus(ctx context.Context, config model.ChunkConfig) (*model.CorpusStatistics, error) {
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("chunk configuration validation", err)
	}

	corpus := model.NewCorpus()

	if _, err := c.Loader.Load(ctx, corpus); err != nil {
		return nil, helper.NewError("load graph data", err)
	}

	if _, err := c.Assembler.BuildRecipeDocuments(ctx, corpus); err != nil {
		return nil, helper.NewError("build recipe documents", err)
	}

	if len(corpus.Documents) > 0 {
		if _, err := chunker.New(config, c.log).ChunkDocuments(corpus); err != nil {
			return nil, helper.NewError("chunk documents", err)
		}
	}

	// The finished corpus supersedes the previous run's collections.
	c.Corpus = corpus

	return stats.Compute(corpus), nil
}

// PersistCorpus writes the current corpus into the attached store.
// Requires UseStore and a built corpus.
func (c *CookGraph) PersistCorpus() error {
	if c.Documents == nil || c.Chunks == nil {
		return helper.NewError("persist corpus", errNoStore)
	}

	documentIDs := make(map[string]int64, len(c.Corpus.Documents))
	for _, doc := range c.Corpus.Documents {
		if err := c.Documents.InsertDocument(doc); err != nil {
			return helper.NewError("insert document", err)
		}
		documentIDs[doc.NodeID] = doc.ID
	}

	for _, chunk := range c.Corpus.Chunks {
		if err := c.Chunks.InsertChunk(chunk, documentIDs[chunk.ParentID]); err != nil {
			return helper.NewError("insert chunk", err)
		}
	}

	c.log.Info("Persisted corpus",
		"documents", len(c.Corpus.Documents),
		"chunks", len(c.Corpus.Chunks))

	return nil
}

// Statistics recomputes the statistics of the current corpus.
func (c *CookGraph) Statistics() *model.CorpusStatistics {
	return stats.Compute(c.Corpus)
}

// Close releases the graph connection. Safe to call multiple times.
func (c *CookGraph) Close(ctx context.Context) error {
	return c.Source.Close(ctx)
}
