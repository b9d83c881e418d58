package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/electronjoe/geotag/internal/config"
	"github.com/electronjoe/geotag/internal/logging"
	"github.com/electronjoe/geotag/internal/photo"
	"github.com/electronjoe/geotag/internal/pipeline"
	"github.com/electronjoe/geotag/internal/report"
)

const version = "0.1.0"

func main() {
	// A missing .env is fine; GEOTAG_* may come from the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("geotag", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	pngFlag := fs.BoolP("png", "p", false, "search the directory for PNG images")
	jpegFlag := fs.BoolP("jpeg", "j", false, "search the directory for JPEG images")
	tiffFlag := fs.BoolP("tiff", "t", false, "search the directory for TIFF images")
	webpFlag := fs.BoolP("webp", "w", false, "search the directory for WebP images")
	format := fs.String("format", "", "report format, csv or xlsx (default: from the output extension)")
	configPath := fs.String("config", "", "config file (default ~/"+config.DefaultConfigDir+"/config.json)")
	verbose := fs.BoolP("verbose", "v", false, "log debug details")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: geotag [flags] bounding-boxes-json output-report images-dir\n\n")
		fmt.Fprintf(stderr, "Extract the GPS position of each image, join its bounding boxes and write a CSV or XLSX report.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "geotag (version %s)\n", version)
		return 0
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return 2
	}
	if *format != "" && *format != string(report.CSV) && *format != string(report.XLSX) {
		fmt.Fprintf(stderr, "invalid --format %q: use csv or xlsx\n", *format)
		return 2
	}

	// 1. Settings and logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to read config: %v\n", err)
		return 1
	}
	level := cfg.LogLevel
	if *verbose {
		level = logrus.DebugLevel.String()
	}
	logger, err := logging.New(logging.Options{Level: level, File: cfg.LogFile, Output: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to set up logging: %v\n", err)
		return 1
	}

	// 2. Selected image kinds
	var kinds []photo.Kind
	for _, k := range []struct {
		on   bool
		kind photo.Kind
	}{{*pngFlag, photo.PNG}, {*jpegFlag, photo.JPEG}, {*tiffFlag, photo.TIFF}, {*webpFlag, photo.WebP}} {
		if k.on {
			kinds = append(kinds, k.kind)
		}
	}

	reportFormat := report.Format(cfg.Format)
	if *format != "" {
		reportFormat = report.Format(*format)
	}

	// 3. Run
	opts := pipeline.Options{
		AnnotationPath: fs.Arg(0),
		OutputPath:     fs.Arg(1),
		ImageDir:       expandHome(fs.Arg(2)),
		Kinds:          kinds,
		Report: report.Options{
			Format:    reportFormat,
			Delimiter: cfg.DelimiterRune(),
			Sheet:     cfg.Sheet,
		},
	}
	sum, err := pipeline.Run(opts, logger)
	switch {
	case errors.Is(err, pipeline.ErrNoImages), errors.Is(err, photo.ErrNoKinds):
		logger.WithError(err).Error("The program has loaded no images, please check the arguments you have given")
		return 1
	case err != nil:
		logger.WithError(err).Error("Run failed")
		return 1
	}

	logger.WithFields(logrus.Fields{
		"selected":  sum.Selected,
		"extracted": sum.Extracted,
		"converted": sum.Converted,
		"rows":      sum.Rows,
	}).Infof("Wrote report %s", opts.OutputPath)
	return 0
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
