package placement

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FolderLayout is the time layout of target folder names.
const FolderLayout = "2006-01"

// DefaultMaxAttempts bounds the collision suffix search.
const DefaultMaxAttempts = 100000

// ErrNamesExhausted reports that no free suffix was found within the bound.
var ErrNamesExhausted = errors.New("no free file name")

// TargetFolder returns the year-month folder for date under destRoot.
func TargetFolder(destRoot string, date time.Time) string {
	return filepath.Join(destRoot, date.Format(FolderLayout))
}

// SplitName separates name into stem and extension. Leading dots belong to
// the stem, so ".aae" has no extension and "a.b.jpg" splits as "a.b", ".jpg".
func SplitName(name string) (string, string) {
	trimmed := strings.TrimLeft(name, ".")
	idx := strings.LastIndexByte(trimmed, '.')
	if idx < 0 {
		return name, ""
	}
	cut := len(name) - len(trimmed) + idx
	return name[:cut], name[cut:]
}

// Candidate returns the n-th collision variant of name; n == 0 is name itself.
func Candidate(name string, n int) string {
	if n == 0 {
		return name
	}
	stem, ext := SplitName(name)
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

// UniqueName returns the first candidate of name that does not exist in dir.
// The search runs against the directory as it is now, so the lowest free
// suffix wins.
func UniqueName(dir, name string, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for n := 0; n <= maxAttempts; n++ {
		candidate := Candidate(name, n)
		taken, err := exists(filepath.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %s in %s after %d attempts", ErrNamesExhausted, name, dir, maxAttempts)
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
