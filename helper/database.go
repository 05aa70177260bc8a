package helper

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Database wraps a sql.DB instance together with its logger.
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens a connection to the configured PostgreSQL database and
// verifies it with a ping. Connection failure is unrecoverable and panics.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	if logger == nil {
		opts := PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level: slog.LevelInfo,
			},
		}
		logger = slog.New(NewPrettyHandler(os.Stdout, opts))
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s search_path=%s sslmode=%s",
		config.Host,
		config.Port,
		config.Database,
		config.Username,
		config.Password,
		config.Schema,
		config.SSLMode,
	)

	instance, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Panicf("error opening database connection: %v", err)
	}

	instance.SetMaxOpenConns(25)
	instance.SetMaxIdleConns(25)
	instance.SetConnMaxLifetime(5 * time.Minute)

	if err := instance.Ping(); err != nil {
		log.Panicf("error pinging database: %v", err)
	}

	logger.Info("Connected to database", "name", name, "host", config.Host, "port", config.Port)

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}
}

// NewTestDatabase opens a connection for tests with a discarding logger.
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(slog.DiscardHandler)
	return NewDatabase("test", config, logger)
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}
