package placement

import (
	"errors"
	"io/fs"
)

// Reason classifies why a placement failed.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonPermission    Reason = "permission"
	ReasonNoSpace       Reason = "no_space"
	ReasonNameTooLong   Reason = "name_too_long"
	ReasonExhausted     Reason = "names_exhausted"
	ReasonSourceMissing Reason = "source_missing"
	ReasonOther         Reason = "other"
)

// Classify maps a filesystem error to a placement failure reason.
func Classify(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrNamesExhausted):
		return ReasonExhausted
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermission
	case errors.Is(err, fs.ErrNotExist):
		return ReasonSourceMissing
	default:
		return classifyErrno(err)
	}
}
