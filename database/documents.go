// Package database persists the built corpus into PostgreSQL for the
// external embedding/indexing collaborators.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
	loadSql "github.com/siherrmann/cookgraph/sql"
)

// DocumentsDBHandlerFunctions defines the interface for Documents database operations.
type DocumentsDBHandlerFunctions interface {
	InsertDocument(doc *model.RecipeDocument) error
	SelectDocument(nodeID string) (*model.RecipeDocument, error)
	SelectAllDocuments(limit int) ([]*model.RecipeDocument, error)
	DeleteDocument(nodeID string) error
}

// DocumentsDBHandler handles document-related database operations
type DocumentsDBHandler struct {
	db *helper.Database
}

// NewDocumentsDBHandler creates a new documents database handler.
// It initializes the database connection and loads document-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewDocumentsDBHandler(db *helper.Database, force bool) (*DocumentsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	documentsDbHandler := &DocumentsDBHandler{
		db: db,
	}

	err := loadSql.LoadDocumentsSql(documentsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load documents sql", err)
	}

	err = documentsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized DocumentsDBHandler")

	return documentsDbHandler, nil
}

// CreateTable creates the 'documents' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *DocumentsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use the SQL init() function to create all tables and indexes
	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_documents();`)
	if err != nil {
		log.Panicf("error initializing documents table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table documents")

	return nil
}

// InsertDocument inserts a document, superseding the stored version of the
// same recipe node from a previous pipeline run.
func (h *DocumentsDBHandler) InsertDocument(doc *model.RecipeDocument) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_document($1, $2, $3, $4)`,
		doc.NodeID,
		doc.RecipeName,
		doc.Content,
		doc.Metadata,
	)

	err := row.Scan(
		&doc.ID,
		&doc.RID,
		&doc.NodeID,
		&doc.RecipeName,
		&doc.Content,
		&doc.Metadata,
		&doc.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectDocument retrieves a document by its recipe node id
func (h *DocumentsDBHandler) SelectDocument(nodeID string) (*model.RecipeDocument, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_document($1)`,
		nodeID,
	)

	doc := &model.RecipeDocument{}
	err := row.Scan(
		&doc.ID,
		&doc.RID,
		&doc.NodeID,
		&doc.RecipeName,
		&doc.Content,
		&doc.Metadata,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return doc, nil
}

// SelectAllDocuments retrieves up to limit documents ordered by node id
func (h *DocumentsDBHandler) SelectAllDocuments(limit int) ([]*model.RecipeDocument, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_documents($1)`,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var documents []*model.RecipeDocument
	for rows.Next() {
		doc := &model.RecipeDocument{}
		err := rows.Scan(
			&doc.ID,
			&doc.RID,
			&doc.NodeID,
			&doc.RecipeName,
			&doc.Content,
			&doc.Metadata,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// DeleteDocument deletes a document by its recipe node id
func (h *DocumentsDBHandler) DeleteDocument(nodeID string) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_document($1)`,
		nodeID,
	)
	if err != nil {
		return helper.NewError("delete document", err)
	}

	return nil
}
