// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package columnar materializes typed schema trees as parquet output. It is
// the local implementation of the pipeline's processing engine.
package columnar

import (
	"github.com/parquet-go/parquet-go"

	"github.com/dacolabs/crashpipe/internal/translate"
)

// ParquetSchema converts a translated schema tree into a parquet schema.
func ParquetSchema(root *translate.Node) *parquet.Schema {
	return parquet.NewSchema("crash_report", group(root.Children))
}

func group(children []translate.Node) parquet.Group {
	g := make(parquet.Group, len(children))
	for _, child := range children {
		g[child.Name] = fieldNode(child)
	}
	return g
}

func fieldNode(n translate.Node) parquet.Node {
	var node parquet.Node
	switch n.Kind {
	case translate.KindString:
		node = parquet.String()
	case translate.KindInteger:
		node = parquet.Int(64)
	case translate.KindBoolean:
		node = parquet.Leaf(parquet.BooleanType)
	case translate.KindArrayOfString:
		node = parquet.List(parquet.String())
	case translate.KindArrayOfStruct:
		node = parquet.List(group(n.Children))
	case translate.KindStruct:
		node = group(n.Children)
	default:
		// The translator only emits the kinds above.
		node = parquet.String()
	}

	if n.Nullable {
		node = parquet.Optional(node)
	}
	return node
}
