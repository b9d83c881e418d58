package geotag

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Tags is the decoded metadata of one image.
type Tags interface {
	// GPSBlock returns the GPS IFD keyed by tag code, or false when the
	// image has no positional block.
	GPSBlock() (map[uint16]Value, bool)
}

// TagReader reads the metadata of an image file. A nil Tags with a nil
// error means the image carries no metadata. Implementations release the
// file before returning.
type TagReader interface {
	ReadTags(path string) (Tags, error)
}

// Extractor builds raw GPS records from image files.
type Extractor struct {
	reader TagReader
	log    logrus.FieldLogger
}

// NewExtractor creates an Extractor reading tags through reader.
func NewExtractor(reader TagReader, log logrus.FieldLogger) *Extractor {
	return &Extractor{reader: reader, log: log}
}

// Extract returns one record per image that has a GPS block, keyed by the
// base name of its path. Images without tags or without a GPS block are
// omitted. Images the reader fails on are logged and skipped.
func (e *Extractor) Extract(paths []string) *Records {
	records := NewRecords()
	for _, path := range paths {
		raw, err := e.extractOne(path)
		if err != nil {
			e.log.WithError(err).WithField("path", path).Warn("Could not read image metadata, skipping")
			continue
		}
		if raw == nil {
			e.log.WithField("path", path).Debug("No GPS block")
			continue
		}
		records.Put(&ImageRecord{
			Name:   filepath.Base(path),
			RawGPS: raw,
		})
	}
	return records
}

func (e *Extractor) extractOne(path string) (RawGPS, error) {
	tags, err := e.reader.ReadTags(path)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		return nil, nil
	}
	block, ok := tags.GPSBlock()
	if !ok || len(block) == 0 {
		return nil, nil
	}

	raw := make(RawGPS, len(block))
	for code, v := range block {
		name, known := TagName(code)
		if !known {
			continue
		}
		raw[name] = v
	}
	return raw, nil
}
