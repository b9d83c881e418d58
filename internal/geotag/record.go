// Package geotag turns the raw GPS blocks of a batch of images into decimal
// coordinates, joins per-image bounding boxes and flattens the result into rows.
package geotag

// RawGPS holds the GPS sub-fields of one image, keyed by field name.
type RawGPS map[FieldName]Value

// DecimalGPS is a WGS84 position in signed decimal degrees. South, west and
// below-sea-level values are negative.
type DecimalGPS struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// BoundingBox is an annotation descriptor, copied verbatim into the report.
type BoundingBox string

// ImageRecord is everything known about one image during a run.
type ImageRecord struct {
	Name          string
	RawGPS        RawGPS
	GPS           *DecimalGPS
	BoundingBoxes []BoundingBox
}

// Records maps filenames to records and remembers the order in which each
// filename was first inserted.
type Records struct {
	order  []string
	byName map[string]*ImageRecord
}

// NewRecords returns an empty collection.
func NewRecords() *Records {
	return &Records{byName: make(map[string]*ImageRecord)}
}

// Put stores rec under rec.Name. An existing record with the same name is
// replaced but keeps its original position.
func (r *Records) Put(rec *ImageRecord) {
	if _, ok := r.byName[rec.Name]; !ok {
		r.order = append(r.order, rec.Name)
	}
	r.byName[rec.Name] = rec
}

// Get looks up a record by filename.
func (r *Records) Get(name string) (*ImageRecord, bool) {
	rec, ok := r.byName[name]
	return rec, ok
}

// Len returns the number of records.
func (r *Records) Len() int {
	return len(r.order)
}

// All returns the records in insertion order.
func (r *Records) All() []*ImageRecord {
	out := make([]*ImageRecord, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
