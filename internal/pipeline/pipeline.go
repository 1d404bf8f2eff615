// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pipeline orchestrates a crash-report conversion run: fetch the
// schema document once, translate it once, then convert each target date
// through the processing engine.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dacolabs/crashpipe/internal/config"
	"github.com/dacolabs/crashpipe/internal/jschema"
	"github.com/dacolabs/crashpipe/internal/translate"
)

// DateLayout is the partition date format.
const DateLayout = "2006-01-02"

// Job is one date's unit of work handed to the engine. The schema is
// translated once per run and shared read-only across jobs.
type Job struct {
	Date       time.Time
	Schema     *translate.Node
	SourcePath string
	DestPath   string
	Partitions int
}

// Engine is the external data-processing collaborator. It reads raw records
// for the job's date and writes columnar output, overwriting any previous
// output for that date.
type Engine interface {
	ProcessDate(ctx context.Context, job Job) error
}

// DocumentSource supplies the raw schema document bytes.
type DocumentSource interface {
	Document(ctx context.Context) ([]byte, error)
}

// Outcome records how one date fared.
type Outcome struct {
	Date time.Time
	Err  error
}

// Succeeded reports whether the date converted cleanly.
func (o Outcome) Succeeded() bool { return o.Err == nil }

// Summary aggregates a whole run.
type Summary struct {
	RunID         string
	SchemaVersion int
	Outcomes      []Outcome
}

// Failed counts dates that did not convert.
func (s *Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if !o.Succeeded() {
			n++
		}
	}
	return n
}

// Succeeded counts dates that converted cleanly.
func (s *Summary) Succeeded() int {
	return len(s.Outcomes) - s.Failed()
}

// Runner drives a conversion run.
type Runner struct {
	cfg        *config.Config
	source     DocumentSource
	engine     Engine
	translator *translate.Translator
	logger     zerolog.Logger
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, source DocumentSource, engine Engine, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		source:     source,
		engine:     engine,
		translator: translate.New(translate.WithLogger(logger)),
		logger:     logger,
	}
}

// Run converts every date in dates. A schema fetch, parse, or translation
// failure aborts the whole run, since every date depends on the one shared
// schema. Per-date engine failures are recorded in the summary and do not
// stop later dates.
func (r *Runner) Run(ctx context.Context, dates []time.Time) (*Summary, error) {
	raw, err := r.source.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch schema document: %w", err)
	}

	doc, err := jschema.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}

	schema, err := r.translator.Translate(doc)
	if err != nil {
		return nil, fmt.Errorf("translate schema: %w", err)
	}

	summary := &Summary{
		RunID:         uuid.NewString(),
		SchemaVersion: doc.Version(),
	}

	log := r.logger.With().Str("run_id", summary.RunID).Logger()
	log.Info().
		Int("schema_version", summary.SchemaVersion).
		Int("dates", len(dates)).
		Msg("starting conversion run")

	for _, date := range dates {
		job := Job{
			Date:       date,
			Schema:     schema,
			SourcePath: expandPath(r.cfg.Source.Path, date, summary.SchemaVersion),
			DestPath:   expandPath(r.cfg.Dest.Path, date, summary.SchemaVersion),
			Partitions: r.cfg.Partitions,
		}

		err := r.engine.ProcessDate(ctx, job)
		if err != nil {
			log.Error().Err(err).Str("date", date.Format(DateLayout)).Msg("date conversion failed")
		} else {
			log.Info().Str("date", date.Format(DateLayout)).Msg("date converted")
		}
		summary.Outcomes = append(summary.Outcomes, Outcome{Date: date, Err: err})
	}

	log.Info().
		Int("succeeded", summary.Succeeded()).
		Int("failed", summary.Failed()).
		Msg("conversion run finished")

	return summary, nil
}

// expandPath substitutes {date} and {version} placeholders.
func expandPath(tmpl string, date time.Time, version int) string {
	out := strings.ReplaceAll(tmpl, "{date}", date.Format(DateLayout))
	return strings.ReplaceAll(out, "{version}", strconv.Itoa(version))
}
