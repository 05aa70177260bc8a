// Package graph provides the read-only source adapter for the property
// graph store. The primary implementation connects to Neo4j; a mock
// implementation backs the pipeline unit tests.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/siherrmann/cookgraph/helper"
)

// Record is one row of a query result, keyed by the returned column names.
type Record map[string]interface{}

// Source defines the read-only contract against the graph store.
// Implementations must make Close safe to call multiple times.
type Source interface {
	RunQuery(ctx context.Context, query string, params map[string]interface{}) ([]Record, error)
	Close(ctx context.Context) error
}

// Neo4jSource is the production Source backed by the Neo4j Go driver.
// It owns a single long-lived driver whose lifecycle belongs to the caller.
type Neo4jSource struct {
	driver   neo4j.DriverWithContext
	database string
	log      *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewNeo4jSource connects to the configured Neo4j instance and verifies the
// connection with a liveness probe query. A failed probe is fatal and
// returned to the caller; retry policy is an external concern.
func NewNeo4jSource(ctx context.Context, config *helper.GraphConfiguration, logger *slog.Logger) (*Neo4jSource, error) {
	if config == nil {
		return nil, helper.NewError("graph configuration validation", fmt.Errorf("graph configuration is nil"))
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	driver, err := neo4j.NewDriverWithContext(config.URI, neo4j.BasicAuth(config.Username, config.Password, ""))
	if err != nil {
		return nil, helper.NewError("create neo4j driver", err)
	}

	source := &Neo4jSource{
		driver:   driver,
		database: config.Database,
		log:      logger,
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, helper.NewError("verify neo4j connectivity", err)
	}

	if _, err := source.RunQuery(ctx, "RETURN 1 AS test", nil); err != nil {
		_ = driver.Close(ctx)
		return nil, helper.NewError("liveness probe", err)
	}

	logger.Info("Connected to Neo4j", "uri", config.URI, "database", config.Database)

	return source, nil
}

// RunQuery executes a parameterized read query and collects all records.
func (s *Neo4jSource) RunQuery(ctx context.Context, query string, params map[string]interface{}) ([]Record, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, helper.NewError("run query", fmt.Errorf("source is closed"))
	}
	s.mu.Unlock()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, helper.NewError("run query", err)
	}

	collected, err := result.Collect(ctx)
	if err != nil {
		return nil, helper.NewError("collect records", err)
	}

	records := make([]Record, 0, len(collected))
	for _, record := range collected {
		records = append(records, Record(record.AsMap()))
	}

	return records, nil
}

// Close releases the driver. It is idempotent and must be called on all
// exit paths by the owner of the source.
func (s *Neo4jSource) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.driver.Close(ctx); err != nil {
		return helper.NewError("close neo4j driver", err)
	}

	s.log.Info("Closed Neo4j connection")

	return nil
}
