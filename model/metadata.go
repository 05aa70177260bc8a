package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/siherrmann/cookgraph/helper"
)

// Metadata represents JSONB metadata stored in PostgreSQL
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface for database storage
func (m Metadata) Value() (driver.Value, error) {
	return m.Marshal()
}

// Scan implements the sql.Scanner interface for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	return m.Unmarshal(value)
}

// Marshal converts Metadata to JSON bytes
func (m Metadata) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal converts JSON bytes or Metadata to Metadata
func (m *Metadata) Unmarshal(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}

	if s, ok := value.(Metadata); ok {
		*m = Metadata(s)
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, m)
}

// Clone returns a shallow copy of the metadata. Chunks inherit a clone of
// their parent document's metadata so overrides never leak back into it.
func (m Metadata) Clone() Metadata {
	clone := make(Metadata, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// StringOr returns the value for key as a string, or fallback if the key is
// unset or not a string.
func (m Metadata) StringOr(key string, fallback string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return fallback
}

// IntOr returns the value for key as an int, or fallback if the key is unset
// or not numeric. JSON round trips deliver numbers as float64 and Neo4j
// records as int64, so both are accepted.
func (m Metadata) IntOr(key string, fallback int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}
