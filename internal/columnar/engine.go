// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package columnar

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/dacolabs/crashpipe/internal/pipeline"
)

// maxRecordBytes bounds a single raw crash-report line.
const maxRecordBytes = 16 << 20

// Local converts one date's raw JSON-lines batch into parquet part-files on
// the local filesystem. Paths from the job are resolved under a base
// directory.
type Local struct {
	baseDir string
	logger  zerolog.Logger
}

// NewLocal creates a Local engine rooted at baseDir.
func NewLocal(baseDir string, logger zerolog.Logger) *Local {
	return &Local{baseDir: baseDir, logger: logger}
}

// ProcessDate reads every .json file under the job's source path and writes
// the job's partition count of parquet part-files to the destination path,
// replacing whatever a previous run left there.
func (e *Local) ProcessDate(ctx context.Context, job pipeline.Job) error {
	srcDir := filepath.Join(e.baseDir, filepath.FromSlash(job.SourcePath))
	dstDir := filepath.Join(e.baseDir, filepath.FromSlash(job.DestPath))

	inputs, err := listInputs(srcDir)
	if err != nil {
		return err
	}

	// Full overwrite per date.
	if err := os.RemoveAll(dstDir); err != nil {
		return fmt.Errorf("clear destination: %w", err)
	}
	if err := os.MkdirAll(dstDir, 0o750); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	schema := ParquetSchema(job.Schema)
	parts, err := openParts(dstDir, job.Partitions, schema)
	if err != nil {
		return err
	}
	defer closeParts(parts)

	var written, skipped, next int
	for _, input := range inputs {
		w, s, err := e.copyRecords(ctx, input, job, schema, parts, &next)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		written += w
		skipped += s
	}

	for _, p := range parts {
		if err := p.close(); err != nil {
			return err
		}
	}

	e.logger.Info().
		Str("date", job.Date.Format(pipeline.DateLayout)).
		Int("records", written).
		Int("skipped", skipped).
		Int("partitions", len(parts)).
		Msg("batch written")
	return nil
}

// copyRecords streams one JSON-lines file into the part writers, fanning
// records out round-robin.
func (e *Local) copyRecords(ctx context.Context, path string, job pipeline.Job, schema *parquet.Schema, parts []*partWriter, next *int) (written, skipped int, err error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the job's source dir
	if err != nil {
		return 0, 0, err
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64<<10), maxRecordBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return written, skipped, err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			skipped++
			e.logger.Debug().Err(err).Str("file", path).Msg("skipping undecodable record")
			continue
		}

		row := schema.Deconstruct(nil, CoerceRecord(job.Schema, record))
		if err := parts[*next%len(parts)].write(row); err != nil {
			return written, skipped, err
		}
		*next++
		written++
	}
	return written, skipped, scanner.Err()
}

func listInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, entry.Name()))
	}
	return inputs, nil
}

// partWriter pairs a parquet writer with its backing file.
type partWriter struct {
	file   *os.File
	writer *parquet.Writer
	closed bool
}

func openParts(dir string, count int, schema *parquet.Schema) ([]*partWriter, error) {
	if count < 1 {
		count = 1
	}
	parts := make([]*partWriter, 0, count)
	for i := range count {
		name := filepath.Join(dir, fmt.Sprintf("part-%05d.parquet", i))
		f, err := os.Create(name) //nolint:gosec // dir was created above
		if err != nil {
			closeParts(parts)
			return nil, fmt.Errorf("create part file: %w", err)
		}
		parts = append(parts, &partWriter{file: f, writer: parquet.NewWriter(f, schema)})
	}
	return parts, nil
}

func (p *partWriter) write(row parquet.Row) error {
	_, err := p.writer.WriteRows([]parquet.Row{row})
	return err
}

func (p *partWriter) close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.writer.Close(); err != nil {
		p.file.Close() //nolint:errcheck
		return fmt.Errorf("close part file: %w", err)
	}
	return p.file.Close()
}

func closeParts(parts []*partWriter) {
	for _, p := range parts {
		_ = p.close()
	}
}
