package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
	loadSql "github.com/siherrmann/cookgraph/sql"
)

// DefaultEmbeddingDim is the dimension of the embedding column when the
// caller does not specify one. It matches the vector index the external
// embedding collaborator populates.
const DefaultEmbeddingDim = 512

// ChunksDBHandlerFunctions defines the interface for Chunks database operations.
type ChunksDBHandlerFunctions interface {
	InsertChunk(chunk *model.Chunk, documentID int64) error
	SelectChunk(chunkID string) (*model.Chunk, error)
	SelectChunksByParent(parentID string) ([]*model.Chunk, error)
	UpdateChunkEmbedding(chunkID string, embedding []float32) error
	DeleteChunk(chunkID string) error
}

// ChunksDBHandler handles chunk-related database operations
type ChunksDBHandler struct {
	db *helper.Database
}

// NewChunksDBHandler creates a new chunks database handler.
// It initializes the database connection and loads chunk-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewChunksDBHandler(db *helper.Database, embeddingDim int, force bool) (*ChunksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if embeddingDim <= 0 {
		embeddingDim = DefaultEmbeddingDim
	}

	chunksDbHandler := &ChunksDBHandler{
		db: db,
	}

	err := loadSql.LoadChunksSql(chunksDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load chunks sql", err)
	}

	err = chunksDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ChunksDBHandler")

	return chunksDbHandler, nil
}

// CreateTable creates the 'chunks' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary extensions and indexes.
func (h *ChunksDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use the SQL init() function to create all tables and indexes
	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_chunks($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing chunks table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table chunks")

	return nil
}

// InsertChunk inserts a chunk under its parent document row. The embedding
// stays NULL until the external embedding collaborator fills it.
func (h *ChunksDBHandler) InsertChunk(chunk *model.Chunk, documentID int64) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_chunk($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		documentID,
		chunk.ChunkID,
		chunk.ParentID,
		chunk.Content,
		chunk.ChunkIndex,
		chunk.TotalChunks,
		chunk.ChunkSize,
		pq.Array(chunk.Embedding),
		chunk.Metadata,
	)

	var docID int64
	err := row.Scan(
		&chunk.ID,
		&chunk.RID,
		&docID,
		&chunk.ChunkID,
		&chunk.ParentID,
		&chunk.Content,
		&chunk.ChunkIndex,
		&chunk.TotalChunks,
		&chunk.ChunkSize,
		pq.Array(&chunk.Embedding),
		&chunk.Metadata,
		&chunk.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectChunk retrieves a chunk by its chunk id
func (h *ChunksDBHandler) SelectChunk(chunkID string) (*model.Chunk, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_chunk($1)`,
		chunkID,
	)

	chunk := &model.Chunk{}
	var docID int64
	err := row.Scan(
		&chunk.ID,
		&chunk.RID,
		&docID,
		&chunk.ChunkID,
		&chunk.ParentID,
		&chunk.Content,
		&chunk.ChunkIndex,
		&chunk.TotalChunks,
		&chunk.ChunkSize,
		pq.Array(&chunk.Embedding),
		&chunk.Metadata,
		&chunk.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return chunk, nil
}

// SelectChunksByParent retrieves all chunks of one parent document ordered
// by chunk index
func (h *ChunksDBHandler) SelectChunksByParent(parentID string) ([]*model.Chunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_chunks_by_parent($1)`,
		parentID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var chunks []*model.Chunk
	for rows.Next() {
		chunk := &model.Chunk{}
		var docID int64
		err := rows.Scan(
			&chunk.ID,
			&chunk.RID,
			&docID,
			&chunk.ChunkID,
			&chunk.ParentID,
			&chunk.Content,
			&chunk.ChunkIndex,
			&chunk.TotalChunks,
			&chunk.ChunkSize,
			pq.Array(&chunk.Embedding),
			&chunk.Metadata,
			&chunk.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// UpdateChunkEmbedding sets the embedding vector of a chunk
func (h *ChunksDBHandler) UpdateChunkEmbedding(chunkID string, embedding []float32) error {
	embeddingVector := pgvector.NewVector(embedding)
	_, err := h.db.Instance.Exec(
		`SELECT update_chunk_embedding($1, $2)`,
		chunkID,
		embeddingVector,
	)
	if err != nil {
		return helper.NewError("update chunk embedding", err)
	}

	return nil
}

// DeleteChunk deletes a chunk by its chunk id
func (h *ChunksDBHandler) DeleteChunk(chunkID string) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_chunk($1)`,
		chunkID,
	)
	if err != nil {
		return helper.NewError("delete chunk", err)
	}

	return nil
}
