// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dacolabs/crashpipe/internal/jschema"
)

// fragmentLimit bounds how much of an offending schema fragment error
// messages carry, so a single bad node cannot flood logs.
const fragmentLimit = 100

// ErrUnresolvedResidue reports that a resolved schema tree still contained a
// reference marker. It indicates a gap in the resolver itself, not bad input,
// and is deliberately distinct from UnresolvedReferenceError.
var ErrUnresolvedResidue = errors.New("resolved schema still contains a $ref marker")

// UnresolvedReferenceError reports a $ref that could not be eliminated:
// either its target is missing from the definitions table, or it sits in a
// position the resolver does not recognize.
type UnresolvedReferenceError struct {
	// Ref is the reference string, when one was identified.
	Ref string
	// Target is the definitions key the reference named, when known.
	Target string
	// Fragment is a bounded excerpt of the offending schema node.
	Fragment string
}

func (e *UnresolvedReferenceError) Error() string {
	switch {
	case e.Target != "":
		return fmt.Sprintf("unresolved reference %q: no definition named %q", e.Ref, e.Target)
	case e.Ref != "":
		return fmt.Sprintf("unresolved reference %q in unsupported position: %s", e.Ref, e.Fragment)
	default:
		return fmt.Sprintf("unresolved reference in schema fragment: %s", e.Fragment)
	}
}

// InvalidSchemaError reports a schema shape the builder cannot translate.
type InvalidSchemaError struct {
	Reason   string
	Fragment string
}

func (e *InvalidSchemaError) Error() string {
	if e.Fragment == "" {
		return "invalid schema: " + e.Reason
	}
	return fmt.Sprintf("invalid schema: %s: %s", e.Reason, e.Fragment)
}

// fragment renders a bounded excerpt of a schema node for error messages.
func fragment(s *jschema.Schema) string {
	data, err := json.Marshal(s)
	if err != nil {
		return "<unserializable schema node>"
	}
	if len(data) > fragmentLimit {
		return string(data[:fragmentLimit]) + "..."
	}
	return string(data)
}
