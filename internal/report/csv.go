package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// CSVSink writes rows in the excel CSV dialect (CRLF line endings).
type CSVSink struct {
	w *csv.Writer
}

// NewCSVSink returns a sink writing to w. A zero delimiter means ','.
func NewCSVSink(w io.Writer, delimiter rune) *CSVSink {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	cw.UseCRLF = true
	return &CSVSink{w: cw}
}

// WriteRow formats and writes one row.
func (s *CSVSink) WriteRow(cells []any) error {
	record := make([]string, len(cells))
	for i, c := range cells {
		record[i] = formatCell(c)
	}
	return s.w.Write(record)
}

// Finish flushes buffered rows.
func (s *CSVSink) Finish() error {
	s.w.Flush()
	return s.w.Error()
}

// Abort is a no-op; buffered rows are simply dropped.
func (s *CSVSink) Abort() {}

func formatCell(c any) string {
	switch v := c.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat(v)
	case nil:
		return ""
	}
	return fmt.Sprint(c)
}

// formatFloat renders the shortest representation that round-trips,
// always with a '.' and at least one fractional digit ("20.0", "-10.5").
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
