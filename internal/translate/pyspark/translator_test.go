// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pyspark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacolabs/crashpipe/internal/jschema"
	"github.com/dacolabs/crashpipe/internal/translate"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode []string // Expected code snippets
	}{
		{
			name: "scalars",
			doc: `{"properties": {
				"crash_id": {"type": "string"},
				"uptime": {"type": ["integer", "null"]},
				"is_startup": {"type": "boolean"}
			}}`,
			wantCode: []string{
				"from pyspark.sql.types import",
				"def _schema():",
				`StructField("crash_id", StringType(), nullable=False)`,
				`StructField("uptime", LongType(), nullable=True)`,
				`StructField("is_startup", BooleanType(), nullable=False)`,
			},
		},
		{
			name: "bare array",
			doc:  `{"properties": {"modules": {"type": "array"}}}`,
			wantCode: []string{
				`StructField("modules", ArrayType(StringType()), nullable=True)`,
			},
		},
		{
			name: "array of struct",
			doc: `{"properties": {
				"threads": {
					"type": "array",
					"items": {"properties": {"ip": {"type": "string"}}}
				}
			}}`,
			wantCode: []string{
				`StructField("threads", ArrayType(StructType([`,
				`StructField("ip", StringType(), nullable=False)`,
			},
		},
		{
			name: "nested object",
			doc: `{"properties": {
				"env": {
					"type": "object",
					"properties": {"os": {"type": "string"}}
				}
			}}`,
			wantCode: []string{
				`StructField("env", StructType([`,
				`StructField("os", StringType(), nullable=False)`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := jschema.Parse([]byte(tt.doc))
			require.NoError(t, err)
			root, err := translate.New().Translate(doc)
			require.NoError(t, err)

			got := string(Render(root))
			for _, want := range tt.wantCode {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n\n%s", want, got)
				}
			}
		})
	}
}

func TestRender_EmptySchema(t *testing.T) {
	got := string(Render(&translate.Node{Kind: translate.KindStruct}))
	require.Contains(t, got, "StructType([])")
}
