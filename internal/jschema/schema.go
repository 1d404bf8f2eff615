// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema provides the JSON Schema document model used by the
// crash-report translator: loading, parsing, and traversal utilities.
//
// The model is deliberately narrow. It understands the constructs the
// translator acts on ($ref, type, properties, items, definitions) and keeps
// every other key verbatim in Extra, so reference markers hiding under
// unrecognized keys stay visible to the resolver.
package jschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// TypeSet is the value of a schema's "type" key. JSON Schema allows both the
// scalar form ("string") and the union form (["string", "null"]); both decode
// to a TypeSet.
type TypeSet []string

// UnmarshalJSON accepts a string or an array of strings.
func (t *TypeSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TypeSet{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("type must be a string or array of strings: %w", err)
	}
	*t = many
	return nil
}

// MarshalJSON emits the scalar form for single-element sets.
func (t TypeSet) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// Contains reports whether name is one of the set's types.
func (t TypeSet) Contains(name string) bool {
	for _, v := range t {
		if v == name {
			return true
		}
	}
	return false
}

// Nullable reports whether the set admits null alongside its primary type.
func (t TypeSet) Nullable() bool {
	return t.Contains("null")
}

// Schema is one node of a JSON Schema tree.
type Schema struct {
	Ref        string
	Type       TypeSet
	Properties map[string]*Schema
	Items      *Schema

	// Extra holds every key the model does not interpret, verbatim.
	Extra map[string]json.RawMessage
}

// recognized keys pulled out of the raw object during unmarshaling.
const (
	keyRef        = "$ref"
	keyType       = "type"
	keyProperties = "properties"
	keyItems      = "items"
)

// UnmarshalJSON decodes the recognized schema keys and stashes the rest in
// Extra.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Schema{}
	for key, val := range raw {
		switch key {
		case keyRef:
			if err := json.Unmarshal(val, &s.Ref); err != nil {
				return fmt.Errorf("$ref: %w", err)
			}
		case keyType:
			if err := json.Unmarshal(val, &s.Type); err != nil {
				return fmt.Errorf("type: %w", err)
			}
		case keyProperties:
			if err := json.Unmarshal(val, &s.Properties); err != nil {
				return fmt.Errorf("properties: %w", err)
			}
		case keyItems:
			if err := json.Unmarshal(val, &s.Items); err != nil {
				return fmt.Errorf("items: %w", err)
			}
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]json.RawMessage)
			}
			s.Extra[key] = val
		}
	}
	return nil
}

// MarshalJSON re-serializes the node, Extra keys included, with keys in
// sorted order so the output is deterministic.
func (s *Schema) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(s.Extra)+4)
	if s.Ref != "" {
		fields[keyRef] = s.Ref
	}
	if len(s.Type) > 0 {
		fields[keyType] = s.Type
	}
	if s.Properties != nil {
		fields[keyProperties] = s.Properties
	}
	if s.Items != nil {
		fields[keyItems] = s.Items
	}
	for key, val := range s.Extra {
		fields[key] = val
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the schema node.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{
		Ref:  s.Ref,
		Type: append(TypeSet(nil), s.Type...),
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, sub := range s.Properties {
			out.Properties[name] = sub.Clone()
		}
	}
	out.Items = s.Items.Clone()
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for key, val := range s.Extra {
			out.Extra[key] = append(json.RawMessage(nil), val...)
		}
	}
	return out
}

// PropertyNames returns the schema's property names sorted ascending.
func (s *Schema) PropertyNames() []string {
	return SortedKeys(s.Properties)
}

// SortedKeys returns map keys sorted alphabetically.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
