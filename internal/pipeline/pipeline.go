// Package pipeline runs one extraction: select images, read their GPS tags,
// convert them, join annotations and write the report.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/electronjoe/geotag/internal/annotation"
	"github.com/electronjoe/geotag/internal/exifreader"
	"github.com/electronjoe/geotag/internal/geotag"
	"github.com/electronjoe/geotag/internal/photo"
	"github.com/electronjoe/geotag/internal/report"
)

// ErrNoImages is returned when the image directory holds no selected image.
var ErrNoImages = errors.New("no images loaded")

// Options describes one run.
type Options struct {
	AnnotationPath string
	OutputPath     string
	ImageDir       string
	Kinds          []photo.Kind
	Report         report.Options
	// Reader defaults to the goexif reader.
	Reader geotag.TagReader
}

// Summary counts what a run produced.
type Summary struct {
	Selected  int
	Extracted int
	Converted int
	Rows      int
}

// Run executes the pipeline. Nothing is written when it returns an error.
func Run(opts Options, log logrus.FieldLogger) (Summary, error) {
	var sum Summary

	// 1. Select images
	paths, err := photo.Select(opts.ImageDir, opts.Kinds...)
	if err != nil {
		return sum, err
	}
	sum.Selected = len(paths)
	if len(paths) == 0 {
		return sum, fmt.Errorf("%w from %s (kinds %v)", ErrNoImages, opts.ImageDir, opts.Kinds)
	}
	log.WithField("count", len(paths)).Debug("Selected images")

	// 2. Read raw GPS blocks
	reader := opts.Reader
	if reader == nil {
		reader = exifreader.New()
	}
	records := geotag.NewExtractor(reader, log).Extract(paths)
	sum.Extracted = records.Len()

	// 3. Convert to decimal degrees
	sum.Converted = geotag.Convert(records, log)

	// 4. Join bounding boxes
	boxes, err := annotation.Load(opts.AnnotationPath)
	if err != nil {
		return sum, err
	}
	geotag.Merge(records, boxes)

	// 5. Write the report
	err = report.Write(opts.OutputPath, opts.Report, func(sink geotag.RowSink) error {
		n, err := geotag.Flatten(records, sink)
		sum.Rows = n
		return err
	})
	if err != nil {
		return sum, fmt.Errorf("write report %s: %w", opts.OutputPath, err)
	}
	return sum, nil
}
