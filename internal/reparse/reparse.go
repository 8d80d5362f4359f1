// Package reparse implements the binary encoding and decoding of mount point
// reparse data buffers, the payload NTFS stores behind a directory junction.
//
// The layout is defined by the REPARSE_DATA_BUFFER structure: a fixed header
// (tag, data length, reserved), a mount point sub-header holding byte offsets
// and byte lengths of two UTF-16 names, and a path buffer carrying the
// substitute name and the print name back to back, each followed by a 2 byte
// null terminator. The substitute name is the NT namespace path the filesystem
// resolves through; the print name is the display form and must always be
// populated, an empty print name breaks the junction when a container layer
// snapshot serializes it.
package reparse

import (
	"unicode/utf16"

	"github.com/pkg/errors"
)

const (
	// IOReparseTagMountPoint identifies a mount point (junction) reparse
	// point. Any other tag is a different reparse point kind.
	IOReparseTagMountPoint uint32 = 0xA0000003

	// maximumReparseDataBufferSize is the largest buffer the filesystem
	// accepts for any reparse point (MAXIMUM_REPARSE_DATA_BUFFER_SIZE).
	maximumReparseDataBufferSize = 16 * 1024

	// reparseDataHeaderSize covers ReparseTag, ReparseDataLength and
	// Reserved.
	reparseDataHeaderSize = 8

	// mountPointHeaderSize covers the four offset/length fields of the
	// mount point sub-header.
	mountPointHeaderSize = 8

	wcharSize       = 2
	unicodeNullSize = wcharSize

	// maxPathBufferSize is the room left for both names and their
	// terminators once the two headers are accounted for.
	maxPathBufferSize = maximumReparseDataBufferSize - reparseDataHeaderSize - mountPointHeaderSize
)

var (
	// ntPathPrefix (`\??\`) marks a path as a non-interpreted NT object
	// namespace reference. It is prepended to the target to form the
	// substitute name and stripped again on decode.
	ntPathPrefix = utf16.Encode([]rune(`\??\`))

	// verbatimPrefix (`\\?\`) is the Win32 extended-length prefix. Paths
	// arriving from path resolution may carry it; it must be removed
	// before the NT prefix is applied or the stored name would be
	// double-prefixed.
	verbatimPrefix = utf16.Encode([]rune(`\\?\`))
)

var (
	// ErrNotMountPoint is returned when a reparse buffer carries a tag
	// other than IOReparseTagMountPoint. The path is some other reparse
	// point kind, not a junction.
	ErrNotMountPoint = errors.New("reparse tag is not a mount point")

	// ErrTargetTooLong is returned when the encoded names would not fit
	// in a maximum sized reparse data buffer. This is a caller input
	// error, detected before anything is handed to the filesystem.
	ErrTargetTooLong = errors.New("target is too long for a reparse data buffer")

	// ErrInvalidBuffer is returned when a buffer is too short for the
	// layout its own length fields describe.
	ErrInvalidBuffer = errors.New("malformed reparse data buffer")
)

// MountPoint is the decoded form of a mount point reparse data buffer. Both
// names are kept as raw UTF-16 units exactly as stored.
type MountPoint struct {
	// SubstituteName is the NT namespace path the junction resolves
	// through, usually `\??\` prefixed.
	SubstituteName []uint16
	// PrintName is the display path stored alongside the substitute name.
	// It is never consulted for resolution.
	PrintName []uint16
}

// Target returns the junction target as a Win32 path: the substitute name
// with the `\??\` prefix stripped when present. A substitute name without the
// prefix is returned unmodified.
func (mp *MountPoint) Target() string {
	return string(utf16.Decode(trimPrefix(mp.SubstituteName, ntPathPrefix)))
}

// StripVerbatimPrefix removes the Win32 `\\?\` extended-length prefix from
// path if present.
func StripVerbatimPrefix(path []uint16) []uint16 {
	return trimPrefix(path, verbatimPrefix)
}

func trimPrefix(s, prefix []uint16) []uint16 {
	if len(s) < len(prefix) {
		return s
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return s
		}
	}
	return s[len(prefix):]
}

// cappedByteLen converts a length in UTF-16 units to a byte length, capping
// the unit count at the largest value a uint16 wire field can carry. The
// arithmetic stays in int so an oversized target can never wrap around; the
// capped result always trips the size check in EncodeMountPoint.
func cappedByteLen(units int) int {
	if units > 0xffff {
		units = 0xffff
	}
	return units * wcharSize
}

// EncodeMountPoint builds the reparse data buffer for a junction pointing at
// target. target must be a full Win32 path in UTF-16 units without the `\\?\`
// prefix; the `\??\` prefix is added here to form the substitute name, and
// target alone becomes the print name. The returned slice is exactly the byte
// count to transmit, backed by a single maximum sized allocation.
func EncodeMountPoint(target []uint16) ([]byte, error) {
	substituteLen := cappedByteLen(len(ntPathPrefix) + len(target))
	printLen := cappedByteLen(len(target))

	nameBytes := substituteLen + unicodeNullSize + printLen + unicodeNullSize
	if nameBytes > maxPathBufferSize {
		return nil, errors.Wrapf(ErrTargetTooLong, "%d bytes of reparse point names exceed the maximum of %d", nameBytes, maxPathBufferSize)
	}
	dataLen := mountPointHeaderSize + nameBytes
	used := reparseDataHeaderSize + dataLen

	c := newCursor(make([]byte, maximumReparseDataBufferSize))
	c.putUint32(IOReparseTagMountPoint)
	c.putUint16(uint16(dataLen))
	c.putUint16(0) // Reserved

	c.putUint16(0) // substitute name starts at offset 0 of the path buffer
	c.putUint16(uint16(substituteLen))
	c.putUint16(uint16(substituteLen + unicodeNullSize))
	c.putUint16(uint16(printLen))

	c.putUTF16(ntPathPrefix)
	c.putUTF16(target)
	c.putUint16(0)
	c.putUTF16(target)
	c.putUint16(0)
	if err := c.err(); err != nil {
		return nil, err
	}
	return c.buf[:used], nil
}

// DecodeMountPoint validates buf as returned by FSCTL_GET_REPARSE_POINT and
// extracts the two names. It returns ErrNotMountPoint when the tag identifies
// a different reparse point kind and ErrInvalidBuffer when the length fields
// do not agree with the bytes actually present; the length fields are never
// trusted without that cross-check.
func DecodeMountPoint(buf []byte) (*MountPoint, error) {
	c := newCursor(buf)
	tag := c.uint32()
	dataLen := c.uint16()
	c.uint16() // Reserved
	if err := c.err(); err != nil {
		return nil, err
	}
	if tag != IOReparseTagMountPoint {
		return nil, errors.Wrapf(ErrNotMountPoint, "reparse tag 0x%08x", tag)
	}

	if int(dataLen) < mountPointHeaderSize || reparseDataHeaderSize+int(dataLen) > len(buf) {
		return nil, errors.Wrapf(ErrInvalidBuffer, "reparse data length %d does not fit a %d byte buffer", dataLen, len(buf))
	}
	substituteOff := c.uint16()
	substituteLen := c.uint16()
	printOff := c.uint16()
	printLen := c.uint16()
	if err := c.err(); err != nil {
		return nil, err
	}

	// Name offsets are relative to the path buffer, which spans from the
	// end of the mount point sub-header to the end of the reparse data.
	pathBuf := buf[reparseDataHeaderSize+mountPointHeaderSize : reparseDataHeaderSize+int(dataLen)]
	substitute, err := sliceName(pathBuf, substituteOff, substituteLen)
	if err != nil {
		return nil, errors.Wrap(err, "substitute name")
	}
	printName, err := sliceName(pathBuf, printOff, printLen)
	if err != nil {
		return nil, errors.Wrap(err, "print name")
	}
	return &MountPoint{SubstituteName: substitute, PrintName: printName}, nil
}

func sliceName(pathBuf []byte, off, length uint16) ([]uint16, error) {
	c := newCursor(pathBuf)
	c.seek(int(off))
	name := c.utf16(int(length))
	return name, c.err()
}

// RemovalBuffer returns the bare header handed to FSCTL_DELETE_REPARSE_POINT:
// the mount point tag with a zero data length and no payload.
func RemovalBuffer() []byte {
	c := newCursor(make([]byte, reparseDataHeaderSize))
	c.putUint32(IOReparseTagMountPoint)
	c.putUint16(0)
	c.putUint16(0)
	return c.buf
}
