package helper

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DatabaseConfiguration holds the connection parameters for the
// PostgreSQL corpus store.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// GraphConfiguration holds the connection parameters for the Neo4j
// graph source.
type GraphConfiguration struct {
	URI      string
	Username string
	Password string
	Database string
}

// NewDatabaseConfiguration creates a database configuration from environment
// variables (DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME, DB_PASSWORD,
// DB_SCHEMA, DB_SSLMODE). A .env file in the working directory is loaded
// first if present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Schema:   getEnv("DB_SCHEMA", "public"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	if config.Database == "" || config.Username == "" {
		return nil, NewError("database configuration validation", fmt.Errorf("DB_DATABASE and DB_USERNAME must be set"))
	}

	return config, nil
}

// NewGraphConfiguration creates a graph source configuration from environment
// variables (NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD, NEO4J_DATABASE).
// A .env file in the working directory is loaded first if present.
func NewGraphConfiguration() (*GraphConfiguration, error) {
	_ = godotenv.Load()

	config := &GraphConfiguration{
		URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Username: getEnv("NEO4J_USERNAME", "neo4j"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: getEnv("NEO4J_DATABASE", "neo4j"),
	}

	if config.Password == "" {
		return nil, NewError("graph configuration validation", fmt.Errorf("NEO4J_PASSWORD must be set"))
	}

	return config, nil
}

func getEnv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
