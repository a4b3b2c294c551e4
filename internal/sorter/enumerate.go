package sorter

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"photosort/internal/logging"
	"photosort/internal/media"
)

// enumerate lists candidate files under root in lexical order. When dest lies
// inside root its subtree is not visited. Skipped counts regular files with
// an unsupported extension.
func enumerate(ctx context.Context, logger *slog.Logger, root, dest string, recursive bool) (files []media.File, skipped int, err error) {
	consider := func(path string) {
		category := media.Classify(path)
		if category == media.Unsupported {
			skipped++
			logger.Debug("skipping unsupported file", logging.File(path))
			return
		}
		files = append(files, media.File{Path: path, Category: category})
	}

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, 0, err
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				consider(filepath.Join(root, entry.Name()))
			}
		}
		return files, skipped, nil
	}

	// Only a destination strictly below root is left out of the walk.
	skipDest := dest != root && within(dest, root)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logging.WarnWithContext(logger, "skipping unreadable directory", "enumerate_skip",
				logging.File(path),
				logging.Error(walkErr),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDest && within(path, dest) {
				logger.Debug("skipping destination subtree", logging.File(path))
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			consider(path)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return files, skipped, nil
}

// within reports whether path equals dir or lies beneath it.
func within(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
