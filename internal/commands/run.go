// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dacolabs/crashpipe/internal/columnar"
	"github.com/dacolabs/crashpipe/internal/fetch"
	"github.com/dacolabs/crashpipe/internal/pipeline"
	"github.com/dacolabs/crashpipe/internal/prompts"
	"github.com/dacolabs/crashpipe/internal/session"
)

type runOptions struct {
	days    int
	baseDir string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:               "run",
		Short:             "Convert crash-report batches for the target dates",
		PersistentPreRunE: session.PreRunLoad,
		Long: `Fetch the crash-report schema document, translate it to a typed columnar
schema, and convert each target date's raw JSON batch.

The target date defaults to yesterday (UTC). A "date" environment value
(YYYY-MM-DD) overrides it, and --days extends the window backwards for
backfills.`,
		Example: `  # Convert yesterday's batch
  crashpipe run

  # Convert a specific date
  date=2026-08-15 crashpipe run

  # Backfill the last week
  crashpipe run --days 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.days, "days", 1, "Number of dates to convert, ending at the target date")
	cmd.Flags().StringVar(&opts.baseDir, "base-dir", ".", "Base directory for source and destination paths")

	return cmd
}

func runRun(cmd *cobra.Command, opts *runOptions) error {
	sc, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	dates, err := pipeline.TargetDates(os.Getenv, nowUTC(), opts.days)
	if err != nil {
		return err
	}

	fetcher, err := buildFetcher(ctx, sc)
	if err != nil {
		return err
	}

	engine := columnar.NewLocal(opts.baseDir, sc.Logger)
	runner := pipeline.NewRunner(sc.Config, fetcher, engine, sc.Logger)

	summary, err := runner.Run(ctx, dates)
	if err != nil {
		return err
	}

	fields := []prompts.ResultField{
		{Label: "Run", Value: summary.RunID},
		{Label: "Schema version", Value: strconv.Itoa(summary.SchemaVersion)},
		{Label: "Dates converted", Value: strconv.Itoa(summary.Succeeded())},
	}
	if summary.Failed() == 0 {
		prompts.PrintResult(fields, "Conversion completed")
		return nil
	}

	prompts.PrintResult(fields, "")
	for _, o := range summary.Outcomes {
		if !o.Succeeded() {
			prompts.PrintFailure(fmt.Sprintf("%s: %v", o.Date.Format(pipeline.DateLayout), o.Err))
		}
	}
	return fmt.Errorf("%d of %d dates failed", summary.Failed(), len(summary.Outcomes))
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// buildFetcher wires the configured primary object-storage source and the
// optional HTTP fallback.
func buildFetcher(ctx context.Context, sc *session.Context) (*fetch.Fetcher, error) {
	cfg := sc.Config
	primary, err := fetch.NewS3SourceFromRegion(ctx, cfg.Schema.Region, cfg.Schema.Bucket, cfg.Schema.Key)
	if err != nil {
		return nil, err
	}

	var fallback fetch.Source
	if cfg.Schema.FallbackURL != "" {
		fallback = fetch.NewHTTPSource(http.DefaultClient, cfg.Schema.FallbackURL)
	}

	return fetch.NewFetcher(primary, fallback, sc.Logger), nil
}
