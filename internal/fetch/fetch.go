// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package fetch retrieves the crash-report schema document from its primary
// object-storage location with an HTTP fallback.
//
// Sources report an explicit status instead of driving control flow through
// error types: Found carries the document bytes, NotFound means the source
// answered but has no document (the only condition that triggers fallback),
// and Transient covers everything that might succeed on a later run.
package fetch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Status classifies a fetch attempt.
type Status int

// Fetch statuses.
const (
	Found Status = iota
	NotFound
	Transient
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Transient:
		return "transient error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one fetch attempt. Err is set for NotFound and
// Transient results and carries the underlying cause.
type Result struct {
	Status Status
	Body   []byte
	Err    error
}

// Source fetches the schema document from one location.
type Source interface {
	// Fetch attempts retrieval once. Implementations never retry.
	Fetch(ctx context.Context) Result
	// Name identifies the source in logs and errors.
	Name() string
}

// Fetcher combines a primary Source with an optional fallback. The fallback
// is consulted only when the primary reports NotFound; a Transient primary
// failure surfaces as-is so callers can distinguish "missing" from "broken".
type Fetcher struct {
	primary  Source
	fallback Source
	logger   zerolog.Logger
}

// NewFetcher creates a Fetcher. fallback may be nil.
func NewFetcher(primary, fallback Source, logger zerolog.Logger) *Fetcher {
	return &Fetcher{primary: primary, fallback: fallback, logger: logger}
}

// Document fetches the schema document bytes.
func (f *Fetcher) Document(ctx context.Context) ([]byte, error) {
	res := f.primary.Fetch(ctx)
	switch res.Status {
	case Found:
		f.logger.Debug().Str("source", f.primary.Name()).Msg("schema document fetched")
		return res.Body, nil
	case Transient:
		return nil, fmt.Errorf("schema source %s: %w", f.primary.Name(), res.Err)
	}

	if f.fallback == nil {
		return nil, fmt.Errorf("schema source %s: %w", f.primary.Name(), res.Err)
	}

	f.logger.Warn().
		Str("source", f.primary.Name()).
		AnErr("cause", res.Err).
		Msg("schema document missing from primary, trying fallback")

	res = f.fallback.Fetch(ctx)
	if res.Status != Found {
		return nil, fmt.Errorf("schema fallback %s: %w", f.fallback.Name(), res.Err)
	}
	f.logger.Debug().Str("source", f.fallback.Name()).Msg("schema document fetched")
	return res.Body, nil
}
