// Package model defines the core documentation data types.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Ordered is a string-keyed map that remembers insertion order.
// The zero value is an empty map ready to use.
type Ordered[V any] struct {
	keys []string
	vals map[string]V
}

// Set stores v under k. A new key is appended; an existing key keeps its position.
func (o *Ordered[V]) Set(k string, v V) {
	if o.vals == nil {
		o.vals = make(map[string]V)
	}
	if _, ok := o.vals[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.vals[k] = v
}

// Get returns the value stored under k.
func (o Ordered[V]) Get(k string) (V, bool) {
	v, ok := o.vals[k]
	return v, ok
}

// Has reports whether k is present.
func (o Ordered[V]) Has(k string) bool {
	_, ok := o.vals[k]
	return ok
}

// Len returns the number of entries.
func (o Ordered[V]) Len() int {
	return len(o.keys)
}

// Declared reports whether the map was decoded from a mapping node or has
// had entries set. An empty "{}" mapping is declared; an absent key is not.
func (o Ordered[V]) Declared() bool {
	return o.vals != nil
}

// Keys returns a copy of the keys in insertion order.
func (o Ordered[V]) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// All iterates entries in insertion order.
func (o Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// Values iterates values in insertion order.
func (o Ordered[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, k := range o.keys {
			if !yield(o.vals[k]) {
				return
			}
		}
	}
}

// UnmarshalYAML decodes a mapping node, keeping document key order.
func (o *Ordered[V]) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if isNull(value) {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}
	if o.vals == nil {
		o.vals = make(map[string]V)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		var v V
		if err := value.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.Set(key, v)
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}
