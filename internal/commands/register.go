// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crashpipe",
		Short: "Convert daily crash-report JSON batches into columnar output",
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newRunCmd())
	registerSchemaCmd(rootCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
