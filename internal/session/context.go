// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dacolabs/crashpipe/internal/config"
	"github.com/dacolabs/crashpipe/internal/logger"
)

var (
	// ErrNotInitialized indicates no crashpipe.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a crashpipe project (crashpipe.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigFileName is the name of the crashpipe configuration file.
const ConfigFileName = "crashpipe.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration and the run logger.
type Context struct {
	Config *config.Config
	Logger zerolog.Logger
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the crashpipe Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	sc := &Context{
		Config: cfg,
		Logger: logger.New(logger.Options{Level: cfg.LogLevel}),
	}
	return context.WithValue(ctx, contextKey{}, sc), nil
}

// From extracts the crashpipe Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	sc, _ := ctx.Value(contextKey{}).(*Context)
	return sc
}
