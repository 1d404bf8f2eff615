// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package columnar

import (
	"github.com/dacolabs/crashpipe/internal/translate"
)

// CoerceRecord filters and coerces one decoded JSON record to the typed
// schema. Fields the schema does not know are dropped; values whose shape
// does not match become null when the field is nullable and the type's zero
// value otherwise, so a single corrupt record never sinks a batch.
func CoerceRecord(schema *translate.Node, record map[string]any) map[string]any {
	return coerceStruct(schema.Children, record)
}

func coerceStruct(fields []translate.Node, record map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for i := range fields {
		f := &fields[i]
		out[f.Name] = coerceValue(f, record[f.Name])
	}
	return out
}

func coerceValue(f *translate.Node, v any) any {
	switch f.Kind {
	case translate.KindString:
		if s, ok := v.(string); ok {
			return s
		}
		return missing(f, "")

	case translate.KindInteger:
		// encoding/json decodes every number as float64.
		if n, ok := v.(float64); ok {
			return int64(n)
		}
		return missing(f, int64(0))

	case translate.KindBoolean:
		if b, ok := v.(bool); ok {
			return b
		}
		return missing(f, false)

	case translate.KindArrayOfString:
		items, ok := v.([]any)
		if !ok {
			return nil
		}
		strs := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				strs = append(strs, s)
			}
		}
		return strs

	case translate.KindArrayOfStruct:
		items, ok := v.([]any)
		if !ok {
			return nil
		}
		structs := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				structs = append(structs, coerceStruct(f.Children, m))
			}
		}
		return structs

	case translate.KindStruct:
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		return coerceStruct(f.Children, m)

	default:
		return nil
	}
}

// missing picks the null-or-zero replacement for an absent or mismatched
// scalar.
func missing(f *translate.Node, zero any) any {
	if f.Nullable {
		return nil
	}
	return zero
}
