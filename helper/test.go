package helper

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabaseName     = "database"
	testDatabaseUser     = "user"
	testDatabasePassword = "password"
	testGraphPassword    = "cookgraph-test"
)

// MustStartPostgresContainer starts a PostgreSQL container with the pgvector
// image for tests. It returns the terminate function and the mapped port.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"pgvector/pgvector:pg16",
		postgres.WithDatabase(testDatabaseName),
		postgres.WithUsername(testDatabaseUser),
		postgres.WithPassword(testDatabasePassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", NewError("start postgres container", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return container.Terminate, "", NewError("get mapped port", err)
	}

	return container.Terminate, mappedPort.Port(), nil
}

// MustStartNeo4jContainer starts a Neo4j container for tests. It returns the
// terminate function and the bolt URI of the running instance.
func MustStartNeo4jContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	container, err := tcneo4j.Run(
		ctx,
		"neo4j:5",
		tcneo4j.WithAdminPassword(testGraphPassword),
	)
	if err != nil {
		return nil, "", NewError("start neo4j container", err)
	}

	boltURL, err := container.BoltUrl(ctx)
	if err != nil {
		return container.Terminate, "", NewError("get bolt url", err)
	}

	return container.Terminate, boltURL, nil
}

// SetTestDatabaseConfigEnvs sets the database configuration environment
// variables matching the test container credentials.
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", port)
	t.Setenv("DB_DATABASE", testDatabaseName)
	t.Setenv("DB_USERNAME", testDatabaseUser)
	t.Setenv("DB_PASSWORD", testDatabasePassword)
	t.Setenv("DB_SCHEMA", "public")
	t.Setenv("DB_SSLMODE", "disable")
}

// SetTestGraphConfigEnvs sets the graph configuration environment variables
// matching the test container credentials.
func SetTestGraphConfigEnvs(t *testing.T, uri string) {
	t.Setenv("NEO4J_URI", uri)
	t.Setenv("NEO4J_USERNAME", "neo4j")
	t.Setenv("NEO4J_PASSWORD", testGraphPassword)
	t.Setenv("NEO4J_DATABASE", "neo4j")
}
