package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSource(t *testing.T) {
	t.Run("Returns registered records for matching queries", func(t *testing.T) {
		source := NewMockSource()
		source.AddQueryResult("MATCH (r:Recipe)", []Record{{"name": "番茄炒蛋"}})

		records, err := source.RunQuery(context.Background(), "MATCH (r:Recipe) RETURN r.name AS name", nil)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "番茄炒蛋", records[0]["name"])
	})

	t.Run("First registered matching stub wins", func(t *testing.T) {
		source := NewMockSource()
		source.AddQueryResult("MATCH", []Record{{"name": "first"}})
		source.AddQueryResult("MATCH (r:Recipe)", []Record{{"name": "second"}})

		records, err := source.RunQuery(context.Background(), "MATCH (r:Recipe) RETURN r", nil)

		require.NoError(t, err)
		assert.Equal(t, "first", records[0]["name"])
	})

	t.Run("Unmatched query returns empty result", func(t *testing.T) {
		source := NewMockSource()

		records, err := source.RunQuery(context.Background(), "MATCH (n) RETURN n", nil)

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Registered error is returned", func(t *testing.T) {
		source := NewMockSource()
		source.AddQueryError("MATCH", fmt.Errorf("connection reset"))

		_, err := source.RunQuery(context.Background(), "MATCH (n) RETURN n", nil)

		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("Records calls with their parameters", func(t *testing.T) {
		source := NewMockSource()

		_, err := source.RunQuery(context.Background(), "RETURN $value", map[string]interface{}{"value": 1})
		require.NoError(t, err)

		calls := source.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "RETURN $value", calls[0].Query)
		assert.Equal(t, 1, calls[0].Params["value"])
	})

	t.Run("Queries fail after close", func(t *testing.T) {
		source := NewMockSource()

		require.NoError(t, source.Close(context.Background()))
		assert.True(t, source.Closed())

		_, err := source.RunQuery(context.Background(), "RETURN 1", nil)
		assert.ErrorContains(t, err, "source is closed")
	})
}
