// Package report writes flattened image rows to CSV or XLSX files.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/electronjoe/geotag/internal/geotag"
)

// Format is an output file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for a Format other than CSV or XLSX.
var ErrUnknownFormat = errors.New("unknown report format")

// Options controls how a report is encoded.
type Options struct {
	// Format overrides detection from the output path extension.
	Format    Format
	Delimiter rune
	Sheet     string
}

// FormatFor returns opts.Format, or the format implied by the extension of
// path when opts.Format is empty.
func FormatFor(path string, opts Options) Format {
	if opts.Format != "" {
		return opts.Format
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return XLSX
	}
	return CSV
}

// sink is a geotag.RowSink that must be finished before its output is
// complete. Abort releases its resources when the report is abandoned.
type sink interface {
	geotag.RowSink
	Finish() error
	Abort()
}

func newSink(w io.Writer, format Format, opts Options) (sink, error) {
	switch format {
	case CSV:
		return NewCSVSink(w, opts.Delimiter), nil
	case XLSX:
		return NewXLSXSink(w, opts.Sheet)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Write creates the report at path. fill receives the sink and writes the
// rows. The file is written to a temporary sibling and renamed into place
// only when fill and the encoder both succeed; otherwise path is untouched.
func Write(path string, opts Options, fill func(geotag.RowSink) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	tmpPath := f.Name()
	committed := false
	defer func() {
		if !committed {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	s, err := newSink(f, FormatFor(path, opts), opts)
	if err != nil {
		return err
	}
	defer s.Abort()
	if err := fill(s); err != nil {
		return err
	}
	if err := s.Finish(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	committed = true
	return nil
}
