package model

// Properties is the open-ended key/value property bag of a graph node.
// Recipe property sets vary between nodes, so values are accessed through
// typed helpers instead of a fixed schema.
type Properties map[string]interface{}

// GraphNode represents a Recipe, Ingredient or CookingStep vertex loaded
// from the graph store. Node IDs are externally assigned strings and are
// treated as opaque identifiers.
type GraphNode struct {
	NodeID     string     `json:"node_id"`
	Labels     []string   `json:"labels"`
	Name       string     `json:"name"`
	Properties Properties `json:"properties"`
}

// Has reports whether key is set to a non-nil value.
func (p Properties) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the value for key as a string and whether it was present
// and non-empty.
func (p Properties) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok && v != ""
}

// StringOr returns the value for key as a string, or fallback if the key is
// unset, empty or not a string.
func (p Properties) StringOr(key string, fallback string) string {
	if v, ok := p.String(key); ok {
		return v
	}
	return fallback
}

// Int returns the value for key as an int and whether it was present and
// numeric. The Neo4j driver delivers integer properties as int64.
func (p Properties) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// IntOr returns the value for key as an int, or fallback if the key is unset
// or not numeric.
func (p Properties) IntOr(key string, fallback int) int {
	if v, ok := p.Int(key); ok {
		return v
	}
	return fallback
}

// Clone returns a shallow copy of the property bag.
func (p Properties) Clone() Properties {
	clone := make(Properties, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}
