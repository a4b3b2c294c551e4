//go:build unix

package placement

import (
	"errors"

	"golang.org/x/sys/unix"
)

func classifyErrno(err error) Reason {
	switch {
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM), errors.Is(err, unix.EROFS):
		return ReasonPermission
	case errors.Is(err, unix.ENOSPC), errors.Is(err, unix.EDQUOT):
		return ReasonNoSpace
	case errors.Is(err, unix.ENAMETOOLONG):
		return ReasonNameTooLong
	default:
		return ReasonOther
	}
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
