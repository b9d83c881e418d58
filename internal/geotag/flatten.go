package geotag

import "fmt"

// Header is the first row of every report.
var Header = []any{"Image name", "Shape ID", "Bounding Boxes", "Longitude", "Latitude", "Altitude"}

// RowSink receives report rows. Cells are string, int or float64.
type RowSink interface {
	WriteRow(cells []any) error
}

// Flatten writes the header and then, for each record in insertion order,
// one row per bounding box (Shape ID 1..N) or a single row with Shape ID 0
// when the record has no boxes. It returns the number of data rows written.
func Flatten(records *Records, sink RowSink) (int, error) {
	if err := sink.WriteRow(Header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for _, rec := range records.All() {
		lon, lat, alt := gpsCells(rec.GPS)

		if len(rec.BoundingBoxes) == 0 {
			if err := sink.WriteRow([]any{rec.Name, 0, "", lon, lat, alt}); err != nil {
				return rows, fmt.Errorf("write row for %s: %w", rec.Name, err)
			}
			rows++
			continue
		}

		for i, box := range rec.BoundingBoxes {
			if err := sink.WriteRow([]any{rec.Name, i + 1, string(box), lon, lat, alt}); err != nil {
				return rows, fmt.Errorf("write row %d for %s: %w", i+1, rec.Name, err)
			}
			rows++
		}
	}
	return rows, nil
}

func gpsCells(gps *DecimalGPS) (lon, lat, alt any) {
	if gps == nil {
		return "", "", ""
	}
	return gps.Longitude, gps.Latitude, gps.Altitude
}
