package photo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind is a class of image file selected by extension.
type Kind int

const (
	PNG Kind = iota
	JPEG
	TIFF
	WebP
)

// ErrNoKinds is returned when Select is called without any kind.
var ErrNoKinds = errors.New("no image kind requested")

// kindOrder is the order in which kinds appear in a selection.
var kindOrder = []Kind{PNG, JPEG, TIFF, WebP}

var kindNames = map[Kind]string{
	PNG:  "png",
	JPEG: "jpeg",
	TIFF: "tiff",
	WebP: "webp",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Extensions lists the lower-case file extensions of the kind.
func (k Kind) Extensions() []string {
	switch k {
	case PNG:
		return []string{".png"}
	case JPEG:
		return []string{".jpg", ".jpeg"}
	case TIFF:
		return []string{".tif", ".tiff"}
	case WebP:
		return []string{".webp"}
	}
	return nil
}

// kindOf maps a file name to its kind by extension, case-insensitively.
func kindOf(name string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, k := range kindOrder {
		for _, e := range k.Extensions() {
			if ext == e {
				return k, true
			}
		}
	}
	return 0, false
}

// Select lists the image files directly inside dir whose extension matches
// one of kinds. Sub-directories are not descended into. Paths are grouped
// by kind (PNG, JPEG, TIFF, WebP) and sorted by name within a kind.
func Select(dir string, kinds ...Kind) ([]string, error) {
	if len(kinds) == 0 {
		return nil, ErrNoKinds
	}
	wanted := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory: %w", err)
	}

	byKind := make(map[Kind][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		k, ok := kindOf(entry.Name())
		if !ok || !wanted[k] {
			continue
		}
		byKind[k] = append(byKind[k], filepath.Join(dir, entry.Name()))
	}

	var paths []string
	for _, k := range kindOrder {
		group := byKind[k]
		sort.Strings(group)
		paths = append(paths, group...)
	}
	return paths, nil
}
