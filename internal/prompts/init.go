// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"
)

// RunInitForm collects the project configuration interactively.
func RunInitForm(region, bucket, key, fallbackURL, partitions *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schema bucket region").
				Value(region).
				Validate(required("region")),
			huh.NewInput().
				Title("Schema bucket").
				Value(bucket).
				Validate(required("bucket")),
			huh.NewInput().
				Title("Schema object key").
				Value(key).
				Validate(required("key")),
			huh.NewInput().
				Title("Fallback URL (optional)").
				Value(fallbackURL),
			huh.NewInput().
				Title("Output partitions per date").
				Value(partitions).
				Validate(positiveInt),
		),
	).WithTheme(Theme())

	return form.Run()
}

func required(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return errors.New("must be a positive integer")
	}
	return nil
}
