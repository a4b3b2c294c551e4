package dateresolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/djherbis/times"

	"photosort/internal/failure"
	"photosort/internal/logging"
	"photosort/internal/media"
)

// Resolver produces the best-known capture date for a file.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver constructs a resolver. A nil logger discards diagnostics.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logging.NewComponentLogger(logger, "dateresolve")}
}

// Resolve returns the capture date for path. Metadata failures fall back to
// the modification time and are reported in Date.Metadata. The only error
// returned is a failure to read the modification time itself.
func (r *Resolver) Resolve(ctx context.Context, path string) (Date, error) {
	logger := logging.WithContext(ctx, r.logger)

	meta := MetadataResult{Outcome: OutcomeSkipped}
	if media.Classify(path) == media.Image {
		var taken time.Time
		taken, meta = readCaptureTime(path)
		if meta.Outcome == OutcomeFound {
			logger.Debug(
				"capture time read from metadata",
				logging.File(path),
				logging.Time("taken", taken),
			)
			return Date{Time: taken, Source: SourceMetadata, Metadata: meta}, nil
		}
		logger.Info(
			"metadata date unavailable; using modification time",
			logging.File(path),
			logging.String("outcome", meta.Outcome.String()),
			logging.Error(meta.Err),
		)
	}

	modified, err := ModTime(path)
	if err != nil {
		return Date{Metadata: meta}, failure.Wrap(failure.ErrPlacement, "dateresolve", "stat", fmt.Sprintf("read modification time of %s", path), err)
	}
	return Date{Time: modified, Source: SourceModTime, Metadata: meta}, nil
}

// ModTime returns the last-modified time of path in local time.
func ModTime(path string) (time.Time, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return ts.ModTime().In(time.Local), nil
}

// MetadataError converts a fallback result into a tagged error for reporting.
// It returns nil when the metadata probe succeeded or was skipped.
func MetadataError(path string, m MetadataResult) error {
	if !m.FellBack() {
		return nil
	}
	return failure.Wrap(failure.ErrMetadataRead, "dateresolve", "read exif", fmt.Sprintf("%s: %s", m.Outcome, path), m.Err)
}
