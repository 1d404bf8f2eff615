// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dacolabs/crashpipe/internal/config"
	"github.com/dacolabs/crashpipe/internal/prompts"
	"github.com/dacolabs/crashpipe/internal/session"
)

type initOptions struct {
	region         string
	bucket         string
	key            string
	fallbackURL    string
	partitions     int
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new crashpipe project",
		Long: `Initialize a new crashpipe project with a crashpipe.yaml configuration file
pointing at the crash-report schema document and output locations.`,
		Example: `  # Interactive mode
  crashpipe init

  # Non-interactive with defaults
  crashpipe init --non-interactive

  # Non-interactive, custom bucket
  crashpipe init --bucket my-crash-bucket --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.region, "region", defaults.Schema.Region, "Schema bucket region")
	cmd.Flags().StringVar(&opts.bucket, "bucket", defaults.Schema.Bucket, "Schema bucket")
	cmd.Flags().StringVar(&opts.key, "key", defaults.Schema.Key, "Schema object key")
	cmd.Flags().StringVar(&opts.fallbackURL, "fallback-url", "", "HTTP fallback URL for the schema document")
	cmd.Flags().IntVar(&opts.partitions, "partitions", defaults.Partitions, "Output partitions per date")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("crashpipe.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive {
		partitions := strconv.Itoa(opts.partitions)
		if err := prompts.RunInitForm(
			&opts.region,
			&opts.bucket,
			&opts.key,
			&opts.fallbackURL,
			&partitions,
		); err != nil {
			return err
		}
		if opts.partitions, err = strconv.Atoi(partitions); err != nil {
			return fmt.Errorf("invalid partition count: %w", err)
		}
	}

	cfg := config.Default()
	cfg.Schema.Region = opts.region
	cfg.Schema.Bucket = opts.bucket
	cfg.Schema.Key = opts.key
	cfg.Schema.FallbackURL = opts.fallbackURL
	cfg.Partitions = opts.partitions

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to write crashpipe.yaml: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Schema", Value: fmt.Sprintf("s3://%s/%s (%s)", cfg.Schema.Bucket, cfg.Schema.Key, cfg.Schema.Region)},
		{Label: "Partitions", Value: strconv.Itoa(cfg.Partitions)},
		{Label: "Config", Value: cfgPath},
	}, "Initialization completed")
	return nil
}
