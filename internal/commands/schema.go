// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dacolabs/crashpipe/internal/jschema"
	"github.com/dacolabs/crashpipe/internal/prompts"
	"github.com/dacolabs/crashpipe/internal/session"
	"github.com/dacolabs/crashpipe/internal/translate"
	"github.com/dacolabs/crashpipe/internal/translate/pyspark"
)

func registerSchemaCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "schema",
		Short:             "Inspect and export the translated crash-report schema",
		PersistentPreRunE: session.PreRunLoad,
	}

	cmd.AddCommand(newSchemaShowCmd())
	cmd.AddCommand(newSchemaExportCmd())

	parent.AddCommand(cmd)
}

type schemaOptions struct {
	file string
}

func newSchemaShowCmd() *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch, translate, and display the typed schema",
		Example: `  # From the configured sources
  crashpipe schema show

  # From a local schema document
  crashpipe schema show --file crash_report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, opts.file)
			if err != nil {
				return err
			}

			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}

			root, err := translate.New(translate.WithLogger(sc.Logger)).Translate(doc)
			if err != nil {
				return err
			}

			fmt.Println("version:", strconv.Itoa(doc.Version()))
			fmt.Print(prompts.RenderSchema(root))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the schema document from a local file instead of the configured sources")
	return cmd
}

type schemaExportOptions struct {
	schemaOptions
	format string
	output string
}

func newSchemaExportCmd() *cobra.Command {
	opts := &schemaExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the typed schema to a target format",
		Example: `  # PySpark StructType to stdout
  crashpipe schema export --format pyspark

  # Write to a file
  crashpipe schema export --format pyspark --output schema.py`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, opts.file)
			if err != nil {
				return err
			}

			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}

			root, err := translate.New(translate.WithLogger(sc.Logger)).Translate(doc)
			if err != nil {
				return err
			}

			var rendered []byte
			switch opts.format {
			case "pyspark":
				rendered = pyspark.Render(root)
			default:
				return fmt.Errorf("unknown format: %s", opts.format)
			}

			if opts.output == "" {
				_, err = cmd.OutOrStdout().Write(rendered)
				return err
			}
			if err := os.WriteFile(opts.output, rendered, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			prompts.PrintResult([]prompts.ResultField{
				{Label: "Format", Value: opts.format},
				{Label: "Output", Value: opts.output},
			}, "Schema exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the schema document from a local file instead of the configured sources")
	cmd.Flags().StringVar(&opts.format, "format", "pyspark", "Export format")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (stdout when empty)")
	return cmd
}

// loadDocument reads the schema document either from a local file or from
// the configured primary/fallback sources.
func loadDocument(cmd *cobra.Command, file string) (*jschema.Document, error) {
	if file != "" {
		loader := jschema.NewLoader(os.DirFS(filepath.Dir(file)))
		return loader.LoadFile(filepath.Base(file))
	}

	sc, err := session.RequireFromCommand(cmd)
	if err != nil {
		return nil, err
	}

	fetcher, err := buildFetcher(cmd.Context(), sc)
	if err != nil {
		return nil, err
	}
	raw, err := fetcher.Document(cmd.Context())
	if err != nil {
		return nil, err
	}
	return jschema.Parse(raw)
}
