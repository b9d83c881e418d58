// Package exifreader reads EXIF metadata from JPEG, TIFF, PNG and WebP files.
package exifreader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/electronjoe/geotag/internal/geotag"
)

// ErrUnsupportedFormat is returned for files that are not a known image container.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Reader implements geotag.TagReader on top of goexif.
type Reader struct{}

// New returns a Reader.
func New() *Reader {
	return &Reader{}
}

// ReadTags opens path, locates its EXIF payload and decodes it. It returns
// nil Tags when the image carries no decodable EXIF. The file is closed
// before ReadTags returns.
func (r *Reader) ReadTags(path string) (geotag.Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	// Sniff the container without decoding pixels
	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", path, err)
	}

	payload, err := exifPayload(f, format)
	if err != nil {
		return nil, fmt.Errorf("locate exif in %s: %w", path, err)
	}
	if payload == nil {
		return nil, nil
	}

	x, err := exif.Decode(payload)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, nil
	}
	return &exifTags{x: x}, nil
}

// exifPayload returns a reader positioned on the EXIF data of an image of
// the given format, or nil when the container has no EXIF chunk.
func exifPayload(f io.Reader, format string) (io.Reader, error) {
	switch format {
	case "jpeg", "tiff":
		// goexif finds the APP1 segment or reads the TIFF header itself
		return f, nil
	case "png":
		data, err := pngExif(f)
		if err != nil || data == nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	case "webp":
		data, err := webpExif(f)
		if err != nil || data == nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

type exifTags struct {
	x *exif.Exif
}

// GPSBlock walks the decoded fields and keeps the ones from the GPS IFD.
func (t *exifTags) GPSBlock() (map[uint16]geotag.Value, bool) {
	if _, err := t.x.Get(exif.GPSInfoIFDPointer); err != nil {
		return nil, false
	}
	w := gpsWalker{block: make(map[uint16]geotag.Value)}
	if err := t.x.Walk(w); err != nil {
		return nil, false
	}
	return w.block, true
}

type gpsWalker struct {
	block map[uint16]geotag.Value
}

func (w gpsWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if name == exif.GPSInfoIFDPointer || !strings.HasPrefix(string(name), "GPS") {
		return nil
	}
	if v, ok := toValue(tag); ok {
		w.block[tag.Id] = v
	}
	return nil
}

// toValue converts a tiff tag into a geotag.Value. Float tags and tags
// that fail to decode are dropped.
func toValue(tag *tiff.Tag) (geotag.Value, bool) {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return geotag.Value{}, false
		}
		return geotag.TextValue(s), true
	case tiff.UndefVal:
		return geotag.TextValue(string(bytes.TrimRight(tag.Val, "\x00"))), true
	case tiff.RatVal:
		nums := make([]geotag.Number, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return geotag.Value{}, false
			}
			nums = append(nums, geotag.Rational{Num: num, Den: den})
		}
		return geotag.NumberValue(nums...), true
	case tiff.IntVal:
		nums := make([]geotag.Number, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			n, err := tag.Int64(i)
			if err != nil {
				return geotag.Value{}, false
			}
			nums = append(nums, geotag.Integer(n))
		}
		return geotag.NumberValue(nums...), true
	}
	return geotag.Value{}, false
}
