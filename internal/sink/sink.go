// Package sink delivers search record events to their destinations: the
// terminal, an append-only CSV log, and a SQLite record store.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"number-persistence/internal/search"
)

// Printer writes human-readable record lines.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Emit prints "Found a new record: <value> has a persistence of <p>".
func (p *Printer) Emit(_ context.Context, rec search.Record) error {
	_, err := fmt.Fprintf(p.w, "Found a new record: %s has a persistence of %d\n", rec.Value, rec.Persistence)
	return err
}

// CSVLog appends "<value>,<persistence>" lines to a file. The file is opened
// in append mode (and created if absent) for every record, so a failed write
// never leaves a handle open across candidates.
type CSVLog struct {
	path string
}

// NewCSVLog returns a CSVLog for path. The parent directory must exist by the
// time the first record is written.
func NewCSVLog(path string) (*CSVLog, error) {
	if path == "" {
		return nil, errors.New("csv log path is empty")
	}
	return &CSVLog{path: filepath.Clean(path)}, nil
}

// Path returns the log file location.
func (c *CSVLog) Path() string { return c.path }

// Emit appends one record line.
func (c *CSVLog) Emit(_ context.Context, rec search.Record) error {
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open record log %s: %w", c.path, err)
	}

	if _, err := f.WriteString(rec.String() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to write record log %s: %w", c.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close record log %s: %w", c.path, err)
	}
	return nil
}

// multi fans a record out to several sinks.
type multi []search.Sink

// Multi returns a sink that emits to every non-nil sink in order. All sinks
// are attempted; their errors are joined.
func Multi(sinks ...search.Sink) search.Sink {
	var m multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multi) Emit(ctx context.Context, rec search.Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
