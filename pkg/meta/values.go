package meta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"
)

// Values is an insertion-ordered key to scalar table. It is the Go stand-in
// for the value side of an enumeration definition.
//
// A nil *Values behaves as an empty table.
type Values struct {
	m *orderedmap.OrderedMap
}

// NewValues creates an empty table
func NewValues() *Values {
	return &Values{m: orderedmap.New()}
}

// Set stores value under key. Re-setting an existing key keeps its position.
// Set returns the receiver so definitions can be chained.
func (v *Values) Set(key string, value any) *Values {
	if v.m == nil {
		v.m = orderedmap.New()
	}
	v.m.Set(key, value)
	return v
}

// Value returns the scalar stored under key
func (v *Values) Value(key string) (any, bool) {
	if v == nil || v.m == nil {
		return nil, false
	}
	return v.m.Get(key)
}

// Keys returns the keys in insertion order
func (v *Values) Keys() []string {
	if v == nil || v.m == nil {
		return nil
	}
	keys := v.m.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Len returns the number of keys
func (v *Values) Len() int {
	if v == nil || v.m == nil {
		return 0
	}
	return len(v.m.Keys())
}

// Clone returns a shallow copy with the same key order
func (v *Values) Clone() *Values {
	out := NewValues()
	for _, k := range v.Keys() {
		val, _ := v.m.Get(k)
		out.m.Set(k, val)
	}
	return out
}

// Map returns the table as a plain map. Order is lost.
func (v *Values) Map() map[string]any {
	out := make(map[string]any, v.Len())
	for _, k := range v.Keys() {
		val, _ := v.m.Get(k)
		out[k] = val
	}
	return out
}

// Equal reports whether both tables hold the same keys in the same order
// with equal scalar values.
func (v *Values) Equal(other *Values) bool {
	a, b := v.Keys(), other.Keys()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
		x, _ := v.Value(a[i])
		y, _ := other.Value(b[i])
		if !reflect.DeepEqual(x, y) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the table as a JSON object preserving key order
func (v *Values) MarshalJSON() ([]byte, error) {
	if v == nil || v.m == nil {
		return []byte("{}"), nil
	}
	data, err := v.m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	// orderedmap emits a newline after every key and value
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order
func (v *Values) UnmarshalJSON(data []byte) error {
	m := orderedmap.New()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	v.m = m
	return nil
}

// MarshalYAML encodes the table as an ordered YAML mapping
func (v *Values) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range v.Keys() {
		val, _ := v.m.Get(k)
		var valNode yaml.Node
		if err := valNode.Encode(val); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&valNode,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping preserving document order
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("values must be a mapping, got line %d", node.Line)
	}
	m := orderedmap.New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var val any
		if err := valNode.Decode(&val); err != nil {
			return fmt.Errorf("value for %q: %w", keyNode.Value, err)
		}
		m.Set(keyNode.Value, val)
	}
	v.m = m
	return nil
}
