package annotation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electronjoe/geotag/internal/geotag"
)

func TestDecode(t *testing.T) {
	doc := `{
		"a.jpg": ["box1", "box2"],
		"b.jpg": [[10, 20, 30, 40]],
		"c.jpg": [{"x": 0.5, "y": 0.25, "label": "car"}],
		"d.jpg": [],
		"e.jpg": null,
		"f.jpg": ["box1", null]
	}`

	boxes, err := Decode(strings.NewReader(doc))

	require.NoError(t, err)
	assert.Equal(t, map[string][]geotag.BoundingBox{
		"a.jpg": {"box1", "box2"},
		"b.jpg": {"[10,20,30,40]"},
		"c.jpg": {`{"x":0.5,"y":0.25,"label":"car"}`},
		"d.jpg": {},
		"e.jpg": {},
		"f.jpg": {"box1", ""},
	}, boxes)
}

func TestDecodeNullEntryIsSkippedByMerge(t *testing.T) {
	boxes, err := Decode(strings.NewReader(`{"a.jpg": ["box1"], "e.jpg": null}`))
	require.NoError(t, err)

	records := geotag.NewRecords()
	records.Put(&geotag.ImageRecord{Name: "e.jpg"})
	geotag.Merge(records, boxes)

	rec, ok := records.Get("e.jpg")
	require.True(t, ok)
	assert.Empty(t, rec.BoundingBoxes)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not json", "boxes"},
		{"top level array", `["a.jpg"]`},
		{"top level null", `null`},
		{"value is object", `{"a.jpg": {"box": 1}}`},
		{"value is string", `{"a.jpg": "box1"}`},
		{"trailing data", `{"a.jpg": []} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boxes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a.jpg": ["box1"]}`), 0o644))

	boxes, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []geotag.BoundingBox{"box1"}, boxes["a.jpg"])

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte(`[`), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorContains(t, err, path)
}
