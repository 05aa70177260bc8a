package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/siherrmann/cookgraph/helper"
)

// QueryCall records one RunQuery invocation for verification in tests.
type QueryCall struct {
	Query  string
	Params map[string]interface{}
}

type mockStub struct {
	contains string
	records  []Record
	err      error
}

// MockSource is a deterministic in-memory Source for tests. Results are
// registered against a query substring; the first registered stub whose
// substring occurs in the executed query wins.
type MockSource struct {
	mu     sync.Mutex
	stubs  []mockStub
	calls  []QueryCall
	closed bool
}

// NewMockSource creates an empty mock source.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// AddQueryResult registers records to return for queries containing the
// given substring.
func (m *MockSource) AddQueryResult(contains string, records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, mockStub{contains: contains, records: records})
}

// AddQueryError registers an error to return for queries containing the
// given substring.
func (m *MockSource) AddQueryError(contains string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, mockStub{contains: contains, err: err})
}

// RunQuery implements Source.
func (m *MockSource) RunQuery(_ context.Context, query string, params map[string]interface{}) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, helper.NewError("run query", fmt.Errorf("source is closed"))
	}

	m.calls = append(m.calls, QueryCall{Query: query, Params: params})

	for _, stub := range m.stubs {
		if strings.Contains(query, stub.contains) {
			if stub.err != nil {
				return nil, stub.err
			}
			return stub.records, nil
		}
	}

	return []Record{}, nil
}

// Close implements Source. It is idempotent.
func (m *MockSource) Close(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls returns all recorded query calls.
func (m *MockSource) Calls() []QueryCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]QueryCall(nil), m.calls...)
}

// Closed reports whether Close has been called.
func (m *MockSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
