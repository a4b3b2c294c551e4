package dateresolve

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// readCaptureTime opens path and returns its DateTimeOriginal value. The file
// handle is closed before returning on every path.
func readCaptureTime(path string) (time.Time, MetadataResult) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, MetadataResult{Outcome: OutcomeUnreadable, Err: err}
	}
	defer file.Close()

	reader := &trackingReader{r: file}
	x, err := exif.Decode(reader)
	if reader.err != nil {
		return time.Time{}, MetadataResult{Outcome: OutcomeUnreadable, Err: reader.err}
	}
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return time.Time{}, MetadataResult{Outcome: classifyDecodeError(err), Err: err}
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, MetadataResult{Outcome: OutcomeAbsent, Err: err}
	}
	raw, err := tag.StringVal()
	if err != nil {
		return time.Time{}, MetadataResult{Outcome: OutcomeMalformed, Err: err}
	}
	value := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	// EXIF dates carry no zone; keep the wall clock as recorded.
	taken, err := time.ParseInLocation(ExifLayout, value, time.Local)
	if err != nil {
		return time.Time{}, MetadataResult{Outcome: OutcomeMalformed, Err: fmt.Errorf("parse DateTimeOriginal %q: %w", value, err)}
	}
	return taken, MetadataResult{Outcome: OutcomeFound}
}

func classifyDecodeError(err error) Outcome {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return OutcomeAbsent
	case strings.Contains(err.Error(), "intro marker"), strings.Contains(err.Error(), "short read"):
		return OutcomeAbsent
	default:
		return OutcomeMalformed
	}
}

// trackingReader remembers the first read failure that is not end of file, so
// I/O problems are not mistaken for missing metadata.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}
