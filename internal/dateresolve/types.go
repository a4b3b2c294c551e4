package dateresolve

import (
	"time"
)

// Source records where a resolved date came from.
type Source string

const (
	SourceMetadata Source = "metadata"
	SourceModTime  Source = "modtime"
)

// Outcome classifies an attempt to read embedded capture-time metadata.
type Outcome int

const (
	// OutcomeSkipped means the file is not an image and metadata was not probed.
	OutcomeSkipped Outcome = iota
	OutcomeFound
	// OutcomeAbsent covers files with no EXIF block or no DateTimeOriginal tag.
	OutcomeAbsent
	// OutcomeUnreadable means the file could not be opened or read.
	OutcomeUnreadable
	// OutcomeMalformed means the tag exists but does not hold a parseable date.
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeAbsent:
		return "absent"
	case OutcomeUnreadable:
		return "unreadable"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "skipped"
	}
}

// MetadataResult is the typed result of the metadata probe.
type MetadataResult struct {
	Outcome Outcome
	Err     error
}

// FellBack reports whether the probe ran and did not yield a date.
func (m MetadataResult) FellBack() bool {
	return m.Outcome != OutcomeSkipped && m.Outcome != OutcomeFound
}

// Date is the resolved capture date of one file.
type Date struct {
	Time     time.Time
	Source   Source
	Metadata MetadataResult
}

// FolderName returns the year-month folder name for the date.
func (d Date) FolderName() string {
	return d.Time.Format(FolderLayout)
}

const (
	// ExifLayout is the DateTimeOriginal value format.
	ExifLayout = "2006:01:02 15:04:05"
	// FolderLayout names target folders.
	FolderLayout = "2006-01"
)
