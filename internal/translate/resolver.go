// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"bytes"
	"strings"

	"github.com/dacolabs/crashpipe/internal/jschema"
)

// refMarker is the serialized form scanned for in values the model does not
// interpret structurally.
var refMarker = []byte(`"$ref"`)

// resolver eliminates $ref indirection from a schema tree in place,
// resolving against the document's top-level definitions table.
type resolver struct {
	defs map[string]*jschema.Schema
}

// resolve walks the tree. References are recognized in exactly two
// positions: inside a properties map (by recursing into each property) and
// as an items schema (replaced by the looked-up definition). A reference
// reachable anywhere else fails resolution.
func (r *resolver) resolve(s *jschema.Schema) error {
	switch {
	case len(s.Properties) > 0:
		for _, name := range s.PropertyNames() {
			if err := r.resolve(s.Properties[name]); err != nil {
				return err
			}
		}
		return nil

	case s.Items != nil:
		if ref := s.Items.Ref; ref != "" {
			target := refTarget(ref)
			def, ok := r.defs[target]
			if !ok {
				return &UnresolvedReferenceError{Ref: ref, Target: target}
			}
			// Clone so two references to the same definition never
			// alias one subtree.
			s.Items = def.Clone()
		}
		return r.resolve(s.Items)

	default:
		if node := findRef(s); node != nil {
			return &UnresolvedReferenceError{Ref: node.Ref, Fragment: fragment(node)}
		}
		return nil
	}
}

// refTarget extracts the definitions key from a reference string by taking
// the last path segment, e.g. "#/definitions/crash" -> "crash".
func refTarget(ref string) string {
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

// findRef returns the first node under s (s included) that carries a
// reference marker, or nil. Known fields are walked structurally; values
// under unrecognized keys are scanned in serialized form, which is coarse
// but catches references the model cannot see.
func findRef(s *jschema.Schema) *jschema.Schema {
	for node := range jschema.Traverse(s) {
		if node.Ref != "" {
			return node
		}
		for _, raw := range node.Extra {
			if bytes.Contains(raw, refMarker) {
				return node
			}
		}
	}
	return nil
}
