// Package media classifies files by extension into the categories photosort
// knows how to sort.
package media

import (
	"path/filepath"
	"strings"
)

// Category groups supported extensions by how their date is resolved.
type Category int

const (
	Unsupported Category = iota
	Image
	Video
	Sidecar
)

func (c Category) String() string {
	switch c {
	case Image:
		return "image"
	case Video:
		return "video"
	case Sidecar:
		return "sidecar"
	default:
		return "unsupported"
	}
}

// Supported extensions (lowercase, with leading dot).
var extensions = map[string]Category{
	".jpg":  Image,
	".jpeg": Image,
	".png":  Image,
	".mp4":  Video,
	".mov":  Video,
	".aae":  Sidecar,
}

// Classify returns the category for path based on its extension, compared
// case-insensitively.
func Classify(path string) Category {
	return extensions[strings.ToLower(extension(path))]
}

// IsSupported reports whether path has one of the sortable extensions.
func IsSupported(path string) bool {
	return Classify(path) != Unsupported
}

// Extensions lists the supported extensions in a stable order.
func Extensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".mp4", ".mov", ".aae"}
}

// extension matches the suffix rule used for sorting: a bare dotfile such as
// ".aae" counts as having that extension.
func extension(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		return base[idx:]
	}
	return ""
}

// File is a candidate discovered during traversal. Path is absolute.
type File struct {
	Path     string
	Category Category
}

// NewFile resolves path to an absolute path and classifies it.
func NewFile(path string) (File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, err
	}
	return File{Path: abs, Category: Classify(abs)}, nil
}

// Name returns the base name of the file.
func (f File) Name() string {
	return filepath.Base(f.Path)
}
