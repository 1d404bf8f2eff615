// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dacolabs/crashpipe/internal/jschema"
)

// Translator turns JSON Schema documents into typed schema trees. The zero
// options are right for production use; tests and strict callers adjust via
// Option values.
type Translator struct {
	logger   zerolog.Logger
	priority []string
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger injects a structured logger for the translator's error paths.
// The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Translator) { t.logger = logger }
}

// WithTypePriority overrides the scalar classification order used when a
// type union names more than one scalar type.
func WithTypePriority(priority []string) Option {
	return func(t *Translator) { t.priority = priority }
}

// New creates a Translator.
func New(opts ...Option) *Translator {
	t := &Translator{
		logger:   zerolog.Nop(),
		priority: DefaultTypePriority,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate converts a schema document into its typed schema tree, rooted at
// an unnamed Struct. The input document is left untouched; resolution runs
// over a private clone, so one document may be translated repeatedly and
// concurrently.
//
// Failures are never partial: any UnresolvedReferenceError or
// InvalidSchemaError aborts the whole translation.
func (t *Translator) Translate(doc *jschema.Document) (*Node, error) {
	working := doc.Clone()

	r := &resolver{defs: working.Definitions}
	if err := r.resolve(working.Root); err != nil {
		t.logger.Error().Err(err).Msg("schema reference resolution failed")
		return nil, err
	}

	// Resolution is complete only if no marker survives anywhere in the
	// tree. A leftover here is a resolver defect, not a bad document.
	if node := findRef(working.Root); node != nil {
		err := fmt.Errorf("%w: %s", ErrUnresolvedResidue, fragment(node))
		t.logger.Error().Err(err).Msg("schema resolver post-condition violated")
		return nil, err
	}

	b := &builder{priority: t.priority}
	children, err := b.structFields(working.Root)
	if err != nil {
		t.logger.Error().Err(err).Msg("typed schema construction failed")
		return nil, err
	}

	return &Node{Kind: KindStruct, Children: children}, nil
}
