// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate converts JSON Schema documents into the typed nested
// columnar schema that drives crash-report parsing.
package translate

// Kind classifies a typed schema node.
type Kind int

// Node kinds, in rough order of how often crash-report schemas use them.
const (
	KindString Kind = iota
	KindInteger
	KindBoolean
	KindArrayOfString
	KindArrayOfStruct
	KindStruct
)

var kindNames = map[Kind]string{
	KindString:        "string",
	KindInteger:       "integer",
	KindBoolean:       "boolean",
	KindArrayOfString: "array<string>",
	KindArrayOfStruct: "array<struct>",
	KindStruct:        "struct",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one field of the translated schema. The root of a translation is
// an unnamed Struct whose Children are the document's top-level properties.
type Node struct {
	// Name is the field identifier; empty for the root and for array
	// element wrappers.
	Name string

	Kind     Kind
	Nullable bool

	// Children is non-empty only for Struct and ArrayOfStruct nodes and is
	// always sorted ascending by Name.
	Children []Node
}

// IsComposite reports whether the node carries child fields.
func (n *Node) IsComposite() bool {
	return n.Kind == KindStruct || n.Kind == KindArrayOfStruct
}
