package testsupport

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

const (
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003
	tagOrientation      = 0x0112
	typeASCII           = 2
	typeShort           = 3
	typeLong            = 4
)

// JPEGWithDateTimeOriginal returns a minimal JPEG stream whose APP1 segment
// carries an EXIF sub-IFD with the given DateTimeOriginal value. The value is
// written verbatim, so malformed dates can be produced as well.
func JPEGWithDateTimeOriginal(value string) []byte {
	le := binary.LittleEndian
	ascii := append([]byte(value), 0)

	const (
		ifd0Offset = 8
		ifdSize    = 2 + 12 + 4
		exifOffset = ifd0Offset + ifdSize
		dataOffset = exifOffset + ifdSize
	)

	var tiff bytes.Buffer
	tiff.WriteString("II")
	writeU16(&tiff, le, 42)
	writeU32(&tiff, le, ifd0Offset)

	// IFD0: pointer to the EXIF sub-IFD.
	writeU16(&tiff, le, 1)
	writeU16(&tiff, le, tagExifIFDPointer)
	writeU16(&tiff, le, typeLong)
	writeU32(&tiff, le, 1)
	writeU32(&tiff, le, exifOffset)
	writeU32(&tiff, le, 0)

	// EXIF sub-IFD: DateTimeOriginal.
	writeU16(&tiff, le, 1)
	writeU16(&tiff, le, tagDateTimeOriginal)
	writeU16(&tiff, le, typeASCII)
	writeU32(&tiff, le, uint32(len(ascii)))
	writeU32(&tiff, le, dataOffset)
	writeU32(&tiff, le, 0)

	tiff.Write(ascii)

	return wrapAPP1(tiff.Bytes())
}

// JPEGWithoutExif returns a JPEG stream that has no APP1 segment.
func JPEGWithoutExif() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}
}

// JPEGWithoutDateTimeOriginal returns a JPEG whose EXIF block only carries
// an Orientation tag.
func JPEGWithoutDateTimeOriginal() []byte {
	le := binary.LittleEndian
	var tiff bytes.Buffer
	tiff.WriteString("II")
	writeU16(&tiff, le, 42)
	writeU32(&tiff, le, 8)
	writeU16(&tiff, le, 1)
	writeU16(&tiff, le, tagOrientation)
	writeU16(&tiff, le, typeShort)
	writeU32(&tiff, le, 1)
	writeU16(&tiff, le, 1)
	writeU16(&tiff, le, 0)
	writeU32(&tiff, le, 0)
	return wrapAPP1(tiff.Bytes())
}

// WriteJPEG writes a JPEG carrying taken as DateTimeOriginal and sets the
// file modification time to modified.
func WriteJPEG(t testing.TB, path string, taken, modified time.Time) {
	t.Helper()

	WriteFileAt(t, path, JPEGWithDateTimeOriginal(taken.Format("2006:01:02 15:04:05")), modified)
}

func wrapAPP1(tiff []byte) []byte {
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	writeU16(&out, binary.BigEndian, uint16(2+6+len(tiff)))
	out.WriteString("Exif\x00\x00")
	out.Write(tiff)
	out.Write([]byte{0xFF, 0xD9})
	return out.Bytes()
}

func writeU16(buf *bytes.Buffer, order binary.ByteOrder, v uint16) {
	var b [2]byte
	order.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, order binary.ByteOrder, v uint32) {
	var b [4]byte
	order.PutUint32(b[:], v)
	buf.Write(b[:])
}
