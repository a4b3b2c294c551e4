//go:build !unix

package placement

import (
	"errors"
	"os"
)

func classifyErrno(error) Reason {
	return ReasonOther
}

// Without errno values, treat any link error as a candidate for the copy
// fallback; the copy path itself refuses to overwrite.
func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr)
}
