// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import "iter"

// Traverse returns an iterator over every node of the schema tree, the node
// itself included. It visits properties in sorted name order and then the
// items schema, so iteration order is deterministic. Cycles are broken by
// tracking visited nodes.
func Traverse(schema *Schema) iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		visited := make(map[*Schema]struct{})
		walk(schema, yield, visited)
	}
}

func walk(schema *Schema, yield func(*Schema) bool, visited map[*Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(schema) {
		return false
	}

	for _, name := range schema.PropertyNames() {
		if !walk(schema.Properties[name], yield, visited) {
			return false
		}
	}
	return walk(schema.Items, yield, visited)
}
