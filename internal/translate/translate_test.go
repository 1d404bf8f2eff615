// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/crashpipe/internal/jschema"
)

func mustParse(t *testing.T, data string) *jschema.Document {
	t.Helper()
	doc, err := jschema.Parse([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestTranslate_ResolvesDefinitionReference(t *testing.T) {
	doc := mustParse(t, `{
		"definitions": {
			"X": {"properties": {"z": {"type": "string"}}}
		},
		"properties": {
			"y": {"type": "array", "items": {"$ref": "#/definitions/X"}}
		}
	}`)

	root, err := New().Translate(doc)
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	y := root.Children[0]
	assert.Equal(t, "y", y.Name)
	assert.Equal(t, KindArrayOfStruct, y.Kind)
	assert.True(t, y.Nullable)

	require.Len(t, y.Children, 1)
	z := y.Children[0]
	assert.Equal(t, "z", z.Name)
	assert.Equal(t, KindString, z.Kind)
	assert.False(t, z.Nullable)
}

func TestTranslate_MissingDefinition(t *testing.T) {
	doc := mustParse(t, `{
		"definitions": {},
		"properties": {
			"y": {"type": "array", "items": {"$ref": "#/definitions/missing"}}
		}
	}`)

	_, err := New().Translate(doc)

	var refErr *UnresolvedReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "missing", refErr.Target)
	assert.Contains(t, err.Error(), "missing")
}

func TestTranslate_RefInUnsupportedPosition(t *testing.T) {
	// A bare $ref directly under a property is outside the two positions
	// the resolver recognizes.
	doc := mustParse(t, `{
		"definitions": {
			"X": {"properties": {"z": {"type": "string"}}}
		},
		"properties": {
			"y": {"$ref": "#/definitions/X"}
		}
	}`)

	_, err := New().Translate(doc)

	var refErr *UnresolvedReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Empty(t, refErr.Target)
}

func TestTranslate_RefHiddenUnderUnknownKey(t *testing.T) {
	// The resolver's structural walk skips unrecognized keys, so a marker
	// buried there must trip the post-condition, not pass silently.
	doc := mustParse(t, `{
		"properties": {
			"a": {
				"type": "object",
				"properties": {"b": {"type": "string"}},
				"oneOf": [{"$ref": "#/definitions/X"}]
			}
		}
	}`)

	_, err := New().Translate(doc)
	require.ErrorIs(t, err, ErrUnresolvedResidue)
}

func TestTranslate_InputDocumentNotMutated(t *testing.T) {
	doc := mustParse(t, `{
		"definitions": {
			"X": {"properties": {"z": {"type": "string"}}}
		},
		"properties": {
			"y": {"type": "array", "items": {"$ref": "#/definitions/X"}}
		}
	}`)

	_, err := New().Translate(doc)
	require.NoError(t, err)

	assert.Equal(t, "#/definitions/X", doc.Root.Properties["y"].Items.Ref)
}

func TestTranslate_Deterministic(t *testing.T) {
	raw := `{
		"definitions": {
			"frame": {"properties": {
				"module": {"type": ["string", "null"]},
				"ip": {"type": "string"},
				"trust": {"type": "string"}
			}}
		},
		"properties": {
			"crash_id": {"type": "string"},
			"uptime": {"type": ["integer", "null"]},
			"frames": {"type": "array", "items": {"$ref": "#/definitions/frame"}},
			"async_shutdown": {"type": "boolean"}
		}
	}`

	first, err := New().Translate(mustParse(t, raw))
	require.NoError(t, err)
	second, err := New().Translate(mustParse(t, raw))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assertSortedChildren(t, first)
}

func assertSortedChildren(t *testing.T, n *Node) {
	t.Helper()
	for i := 1; i < len(n.Children); i++ {
		assert.LessOrEqual(t, n.Children[i-1].Name, n.Children[i].Name,
			"children of %q not sorted", n.Name)
	}
	for i := range n.Children {
		assertSortedChildren(t, &n.Children[i])
	}
}

func TestTranslate_NestedArrayOfObjects(t *testing.T) {
	doc := mustParse(t, `{
		"properties": {
			"a": {
				"type": "array",
				"items": {"properties": {"b": {"type": "integer"}}}
			}
		}
	}`)

	root, err := New().Translate(doc)
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	a := root.Children[0]
	assert.Equal(t, KindArrayOfStruct, a.Kind)
	require.Len(t, a.Children, 1)
	b := a.Children[0]
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, KindInteger, b.Kind)
	assert.False(t, b.Nullable)
}

func TestTranslate_MissingProperties(t *testing.T) {
	doc := mustParse(t, `{"type": "object"}`)

	_, err := New().Translate(doc)

	var invalidErr *InvalidSchemaError
	require.ErrorAs(t, err, &invalidErr)
	assert.Contains(t, err.Error(), "properties field is missing")
}

func TestTranslate_UnsupportedType(t *testing.T) {
	doc := mustParse(t, `{
		"properties": {"p": {"type": "null_pointer_fantasy"}}
	}`)

	_, err := New().Translate(doc)

	var invalidErr *InvalidSchemaError
	require.ErrorAs(t, err, &invalidErr)
	assert.Contains(t, err.Error(), "null_pointer_fantasy")
}

func TestTranslate_ErrorFragmentBounded(t *testing.T) {
	long := `{"properties": {"p": {"type": "bogus", "description": "`
	for range 40 {
		long += "crash crash "
	}
	long += `"}}}`

	_, err := New().Translate(mustParse(t, long))

	var invalidErr *InvalidSchemaError
	require.ErrorAs(t, err, &invalidErr)
	assert.LessOrEqual(t, len(invalidErr.Fragment), fragmentLimit+len("..."))
}

func TestTranslate_SharedDefinitionNotAliased(t *testing.T) {
	doc := mustParse(t, `{
		"definitions": {
			"X": {"properties": {"z": {"type": "string"}}}
		},
		"properties": {
			"a": {"type": "array", "items": {"$ref": "#/definitions/X"}},
			"b": {"type": "array", "items": {"$ref": "#/definitions/X"}}
		}
	}`)

	root, err := New().Translate(doc)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, root.Children[0].Children, root.Children[1].Children)
}

func TestTranslate_DeepError(t *testing.T) {
	doc := mustParse(t, `{
		"properties": {
			"outer": {
				"type": "object",
				"properties": {"inner": {"type": "flux_capacitor"}}
			}
		}
	}`)

	_, err := New().Translate(doc)
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*InvalidSchemaError)))
	assert.Contains(t, err.Error(), `property "inner"`)
}
