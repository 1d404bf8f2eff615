// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles the crashpipe project configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultPartitions is the output fan-out per date when unset.
const DefaultPartitions = 10

// Config represents the crashpipe.yaml project configuration file.
type Config struct {
	Version    int          `yaml:"version"`
	Schema     SchemaSource `yaml:"schema"`
	Source     PathTemplate `yaml:"source"`
	Dest       PathTemplate `yaml:"dest"`
	Partitions int          `yaml:"partitions,omitempty" validate:"omitempty,gte=1"`
	LogLevel   string       `yaml:"log_level,omitempty"`
}

// SchemaSource locates the crash-report schema document: an object-storage
// primary plus an HTTP fallback used only when the primary reports the
// document missing.
type SchemaSource struct {
	Region      string `yaml:"region" validate:"required"`
	Bucket      string `yaml:"bucket" validate:"required"`
	Key         string `yaml:"key" validate:"required"`
	FallbackURL string `yaml:"fallback_url,omitempty" validate:"omitempty,url"`
}

// PathTemplate is a storage path with {date} and {version} placeholders.
type PathTemplate struct {
	Path string `yaml:"path" validate:"required"`
}

// Default returns a Config pre-filled with the standard crash-report
// locations.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Schema: SchemaSource{
			Region: "us-west-2",
			Bucket: "org-mozilla-telemetry-crashes",
			Key:    "crash_report.json",
		},
		Source:     PathTemplate{Path: "crash_report/{date}"},
		Dest:       PathTemplate{Path: "v{version}/crash_date={date}"},
		Partitions: DefaultPartitions,
	}
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.Partitions == 0 {
		cfg.Partitions = DefaultPartitions
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
