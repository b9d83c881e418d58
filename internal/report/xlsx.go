package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is used when no sheet name is configured.
const DefaultSheet = "GPS"

// XLSXSink streams rows into a single worksheet and writes the workbook on Finish.
type XLSXSink struct {
	out   io.Writer
	file  *excelize.File
	sw    *excelize.StreamWriter
	sheet  string
	row    int
	closed bool
}

// NewXLSXSink creates a workbook with one sheet named sheet.
func NewXLSXSink(w io.Writer, sheet string) (*XLSXSink, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			f.Close()
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create stream writer: %w", err)
	}
	return &XLSXSink{out: w, file: f, sw: sw, sheet: sheet}, nil
}

// WriteRow appends one row. Numeric cells stay numeric; NaN and infinities
// have no numeric cell form and are written as text.
func (s *XLSXSink) WriteRow(cells []any) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		if f, ok := c.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			values[i] = formatFloat(f)
			continue
		}
		values[i] = c
	}
	return s.sw.SetRow(cell, values)
}

// Finish flushes the stream and writes the workbook to the output.
func (s *XLSXSink) Finish() error {
	defer s.Abort()
	if err := s.sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet %q: %w", s.sheet, err)
	}
	return s.file.Write(s.out)
}

// Abort releases the workbook and the stream writer's temporary files.
func (s *XLSXSink) Abort() {
	if s.closed {
		return
	}
	s.closed = true
	s.file.Close()
}
