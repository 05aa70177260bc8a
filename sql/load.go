// Package sql loads the corpus store's SQL functions into PostgreSQL and
// verifies they exist.
package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed chunks.sql
var chunksSQL string

//go:embed documents.sql
var documentsSQL string

// Function lists for verification
var ChunksFunctions = []string{
	"init_chunks",
	"insert_chunk",
	"select_chunk",
	"select_chunks_by_parent",
	"update_chunk_embedding",
	"delete_chunk",
}

var DocumentsFunctions = []string{
	"init_documents",
	"insert_document",
	"select_document",
	"select_all_documents",
	"delete_document",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadChunksSql loads chunk-related SQL functions
func LoadChunksSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, ChunksFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing chunks functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(chunksSQL)
	if err != nil {
		return fmt.Errorf("error executing chunks SQL: %w", err)
	}

	exist, err := checkFunctions(db, ChunksFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL chunks functions loaded successfully")
	return nil
}

// LoadDocumentsSql loads document-related SQL functions
func LoadDocumentsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, DocumentsFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing documents functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(documentsSQL)
	if err != nil {
		return fmt.Errorf("error executing documents SQL: %w", err)
	}

	exist, err := checkFunctions(db, DocumentsFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL documents functions loaded successfully")
	return nil
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadDocumentsSql(db, force); err != nil {
		return err
	}

	if err := LoadChunksSql(db, force); err != nil {
		return err
	}

	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
