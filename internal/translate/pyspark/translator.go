// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pyspark renders typed schema trees as PySpark StructType source,
// for inspection and for wiring the schema into external Spark jobs.
package pyspark

import (
	"fmt"
	"strings"

	"github.com/dacolabs/crashpipe/internal/translate"
)

const header = `from pyspark.sql.types import (
    ArrayType,
    BooleanType,
    LongType,
    StringType,
    StructField,
    StructType,
)

`

// Render emits Python source defining the schema as a _schema() function.
func Render(root *translate.Node) []byte {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("def _schema():\n")
	sb.WriteString("    return ")
	writeStruct(&sb, root.Children, 1)
	sb.WriteString("\n")
	return []byte(sb.String())
}

func writeStruct(sb *strings.Builder, fields []translate.Node, indent int) {
	if len(fields) == 0 {
		sb.WriteString("StructType([])")
		return
	}

	baseIndent := strings.Repeat("    ", indent)
	fieldIndent := strings.Repeat("    ", indent+1)

	sb.WriteString("StructType([\n")
	for i := range fields {
		f := &fields[i]
		sb.WriteString(fieldIndent)
		fmt.Fprintf(sb, `StructField("%s", `, f.Name)
		writeType(sb, f, indent+1)
		fmt.Fprintf(sb, ", nullable=%s)", boolToStr(f.Nullable))
		if i < len(fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(baseIndent)
	sb.WriteString("])")
}

func writeType(sb *strings.Builder, f *translate.Node, indent int) {
	switch f.Kind {
	case translate.KindString:
		sb.WriteString("StringType()")
	case translate.KindInteger:
		sb.WriteString("LongType()")
	case translate.KindBoolean:
		sb.WriteString("BooleanType()")
	case translate.KindArrayOfString:
		sb.WriteString("ArrayType(StringType())")
	case translate.KindArrayOfStruct:
		sb.WriteString("ArrayType(")
		writeStruct(sb, f.Children, indent)
		sb.WriteString(")")
	case translate.KindStruct:
		writeStruct(sb, f.Children, indent)
	}
}

func boolToStr(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
