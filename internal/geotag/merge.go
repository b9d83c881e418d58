package geotag

// Merge attaches bounding boxes to the records they belong to. Only
// filenames already in records are considered; annotation entries without a
// record are ignored, and empty box lists leave BoundingBoxes unset.
func Merge(records *Records, boxes map[string][]BoundingBox) {
	for _, rec := range records.All() {
		if b := boxes[rec.Name]; len(b) > 0 {
			rec.BoundingBoxes = b
		}
	}
}
