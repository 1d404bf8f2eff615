// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeSet_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want TypeSet
	}{
		{"scalar", `"string"`, TypeSet{"string"}},
		{"union", `["string", "null"]`, TypeSet{"string", "null"}},
		{"empty union", `[]`, TypeSet{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TypeSet
			require.NoError(t, json.Unmarshal([]byte(tt.data), &ts))
			assert.Equal(t, tt.want, ts)
		})
	}

	var ts TypeSet
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTypeSet_Nullable(t *testing.T) {
	assert.True(t, TypeSet{"string", "null"}.Nullable())
	assert.False(t, TypeSet{"string"}.Nullable())
	assert.False(t, TypeSet(nil).Nullable())
}

func TestSchema_UnmarshalKeepsUnknownKeys(t *testing.T) {
	var s Schema
	err := json.Unmarshal([]byte(`{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"description": "a crash",
		"oneOf": [{"$ref": "#/definitions/x"}]
	}`), &s)
	require.NoError(t, err)

	assert.Equal(t, TypeSet{"object"}, s.Type)
	require.Contains(t, s.Properties, "a")
	assert.Contains(t, s.Extra, "description")
	assert.Contains(t, s.Extra, "oneOf")
}

func TestSchema_MarshalRoundTripsExtra(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": ["string", "null"],
		"format": "uri"
	}`), &s))

	data, err := json.Marshal(&s)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type": ["string", "null"], "format": "uri"}`, string(data))
}

func TestSchema_CloneIsDeep(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{
		"properties": {
			"a": {"type": "array", "items": {"$ref": "#/definitions/x"}}
		}
	}`), &s))

	clone := s.Clone()
	clone.Properties["a"].Items.Ref = "#/definitions/other"

	assert.Equal(t, "#/definitions/x", s.Properties["a"].Items.Ref)
}

func TestParse_DefinitionsAndVersion(t *testing.T) {
	doc, err := Parse([]byte(`{
		"$target_version": 4,
		"definitions": {"x": {"type": "string"}},
		"properties": {"a": {"type": "string"}}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 4, doc.Version())
	require.Contains(t, doc.Definitions, "x")
	// definitions and $target_version are lifted out of the root's Extra.
	assert.NotContains(t, doc.Root.Extra, "definitions")
	assert.NotContains(t, doc.Root.Extra, "$target_version")
}

func TestParse_VersionDefaultsToZero(t *testing.T) {
	doc, err := Parse([]byte(`{"properties": {}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Version())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestTraverse_Order(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{
		"properties": {
			"b": {"type": "string"},
			"a": {"type": "array", "items": {"type": "integer"}}
		}
	}`), &s))

	var count int
	for range Traverse(&s) {
		count++
	}
	// root, a, a.items, b
	assert.Equal(t, 4, count)
}
