// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"encoding/json"
	"fmt"
)

// Document is a top-level JSON Schema document: a root schema plus the
// definitions table that internal "#/definitions/<name>" references resolve
// against.
type Document struct {
	Root        *Schema
	Definitions map[string]*Schema

	targetVersion int
}

const (
	keyDefinitions   = "definitions"
	keyTargetVersion = "$target_version"
)

// Parse decodes a JSON Schema document from raw bytes.
func Parse(data []byte) (*Document, error) {
	var root Schema
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}

	doc := &Document{Root: &root}

	if raw, ok := root.Extra[keyDefinitions]; ok {
		if err := json.Unmarshal(raw, &doc.Definitions); err != nil {
			return nil, fmt.Errorf("parse definitions: %w", err)
		}
		delete(root.Extra, keyDefinitions)
	}
	if raw, ok := root.Extra[keyTargetVersion]; ok {
		if err := json.Unmarshal(raw, &doc.targetVersion); err != nil {
			return nil, fmt.Errorf("parse %s: %w", keyTargetVersion, err)
		}
		delete(root.Extra, keyTargetVersion)
	}

	return doc, nil
}

// Version returns the document's declared $target_version, or 0 when the
// field is absent.
func (d *Document) Version() int {
	return d.targetVersion
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Root:          d.Root.Clone(),
		targetVersion: d.targetVersion,
	}
	if d.Definitions != nil {
		out.Definitions = make(map[string]*Schema, len(d.Definitions))
		for name, def := range d.Definitions {
			out.Definitions[name] = def.Clone()
		}
	}
	return out
}
