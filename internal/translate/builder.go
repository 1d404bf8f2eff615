// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"

	"github.com/dacolabs/crashpipe/internal/jschema"
)

// DefaultTypePriority is the scalar classification order. A type union
// carrying several scalar types resolves to the first match, so a field
// typed ["string", "integer"] becomes a String. That bias is historical;
// callers wanting stricter behavior supply their own order via
// WithTypePriority.
var DefaultTypePriority = []string{"string", "integer", "boolean"}

var scalarKinds = map[string]Kind{
	"string":  KindString,
	"integer": KindInteger,
	"boolean": KindBoolean,
}

// builder converts a fully-resolved schema tree into typed schema nodes.
type builder struct {
	priority []string
}

// structFields translates a struct-level schema into its ordered child
// nodes. A properties map is mandatory wherever fields are expected.
func (b *builder) structFields(s *jschema.Schema) ([]Node, error) {
	if s.Properties == nil {
		return nil, &InvalidSchemaError{
			Reason:   "properties field is missing",
			Fragment: fragment(s),
		}
	}

	fields := make([]Node, 0, len(s.Properties))
	for _, name := range s.PropertyNames() {
		node, err := b.field(name, s.Properties[name])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		fields = append(fields, node)
	}
	return fields, nil
}

func (b *builder) field(name string, s *jschema.Schema) (Node, error) {
	for _, typ := range b.priority {
		if s.Type.Contains(typ) {
			return Node{
				Name:     name,
				Kind:     scalarKinds[typ],
				Nullable: s.Type.Nullable(),
			}, nil
		}
	}

	switch {
	case s.Type.Contains("array") && s.Items == nil:
		// Bare arrays are assumed to hold scalar strings.
		return Node{Name: name, Kind: KindArrayOfString, Nullable: true}, nil

	case s.Type.Contains("array"):
		children, err := b.structFields(s.Items)
		if err != nil {
			return Node{}, err
		}
		return Node{Name: name, Kind: KindArrayOfStruct, Nullable: true, Children: children}, nil

	case s.Type.Contains("object"):
		children, err := b.structFields(s)
		if err != nil {
			return Node{}, err
		}
		return Node{Name: name, Kind: KindStruct, Nullable: true, Children: children}, nil

	default:
		return Node{}, &InvalidSchemaError{
			Reason:   "unrecognized type",
			Fragment: fragment(s),
		}
	}
}
