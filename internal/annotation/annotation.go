// Package annotation loads per-image bounding boxes from a JSON document of
// the form {"image.jpg": [box, box, ...], ...}.
package annotation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/electronjoe/geotag/internal/geotag"
)

// ErrMalformed is wrapped by every structural error in an annotation document.
var ErrMalformed = errors.New("malformed annotation document")

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads and decodes the annotation file at path.
func Load(path string) (map[string][]geotag.BoundingBox, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotations: %w", err)
	}
	defer f.Close()

	boxes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return boxes, nil
}

// Decode parses an annotation document. Each key is an image filename and
// each value an array of box descriptors; a null value means no boxes.
func Decode(r io.Reader) (map[string][]geotag.BoundingBox, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read annotations: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := jsonAPI.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	out := make(map[string][]geotag.BoundingBox, len(doc))
	for name, raw := range doc {
		if isNull(raw) {
			out[name] = []geotag.BoundingBox{}
			continue
		}
		var items []json.RawMessage
		if err := jsonAPI.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: entry %q is not an array", ErrMalformed, name)
		}
		boxes := make([]geotag.BoundingBox, 0, len(items))
		for _, item := range items {
			box, err := render(item)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformed, name, err)
			}
			boxes = append(boxes, box)
		}
		out[name] = boxes
	}
	return out, nil
}

// isNull reports whether raw holds a JSON null. Null values may arrive as
// an empty message rather than the literal.
func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// render turns one descriptor into its report text: strings lose their
// quotes, null becomes an empty descriptor and everything else is kept as
// compact JSON.
func render(raw json.RawMessage) (geotag.BoundingBox, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := jsonAPI.Unmarshal(raw, &s); err == nil {
		return geotag.BoundingBox(s), nil
	}
	buf := &bytes.Buffer{}
	if err := json.Compact(buf, raw); err != nil {
		return "", err
	}
	return geotag.BoundingBox(buf.String()), nil
}
