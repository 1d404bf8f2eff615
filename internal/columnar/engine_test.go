// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package columnar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/crashpipe/internal/pipeline"
)

const engineSchema = `{
	"properties": {
		"crash_id": {"type": "string"},
		"uptime": {"type": ["integer", "null"]}
	}
}`

func writeBatch(t *testing.T, dir string, lines ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	var data []byte
	for _, l := range lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), data, 0o600))
}

func testJob(t *testing.T, partitions int) pipeline.Job {
	t.Helper()
	return pipeline.Job{
		Date:       time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Schema:     translated(t, engineSchema),
		SourcePath: "crash_report/2026-08-30",
		DestPath:   "v1/crash_date=2026-08-30",
		Partitions: partitions,
	}
}

func TestLocal_ProcessDate(t *testing.T) {
	base := t.TempDir()
	writeBatch(t, filepath.Join(base, "crash_report", "2026-08-30"),
		`{"crash_id": "a", "uptime": 10}`,
		`{"crash_id": "b"}`,
		`not json at all`,
		`{"crash_id": "c", "uptime": 33}`,
	)

	engine := NewLocal(base, zerolog.Nop())
	require.NoError(t, engine.ProcessDate(context.Background(), testJob(t, 3)))

	dstDir := filepath.Join(base, "v1", "crash_date=2026-08-30")
	entries, err := os.ReadDir(dstDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dstDir, entry.Name())) //nolint:gosec
		require.NoError(t, err)
		assert.Equal(t, "PAR1", string(data[:4]), "%s is not a parquet file", entry.Name())
	}
}

func TestLocal_OverwritesPreviousOutput(t *testing.T) {
	base := t.TempDir()
	writeBatch(t, filepath.Join(base, "crash_report", "2026-08-30"),
		`{"crash_id": "a"}`,
	)

	dstDir := filepath.Join(base, "v1", "crash_date=2026-08-30")
	require.NoError(t, os.MkdirAll(dstDir, 0o750))
	stale := filepath.Join(dstDir, "stale.parquet")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	engine := NewLocal(base, zerolog.Nop())
	require.NoError(t, engine.ProcessDate(context.Background(), testJob(t, 2)))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "previous output must be removed")
}

func TestLocal_MissingSourceFails(t *testing.T) {
	engine := NewLocal(t.TempDir(), zerolog.Nop())
	err := engine.ProcessDate(context.Background(), testJob(t, 1))
	require.Error(t, err)
}

func TestLocal_CancelledContext(t *testing.T) {
	base := t.TempDir()
	writeBatch(t, filepath.Join(base, "crash_report", "2026-08-30"),
		`{"crash_id": "a"}`,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewLocal(base, zerolog.Nop())
	err := engine.ProcessDate(ctx, testJob(t, 1))
	require.ErrorIs(t, err, context.Canceled)
}
