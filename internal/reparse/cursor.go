package reparse

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// cursor walks a flat byte buffer with an explicit bounds check on every
// access. The first access that would cross the end of the buffer records an
// error and every later access becomes a no-op, so a malformed buffer fails
// closed instead of reading or writing out of range. All multi-byte values
// are little-endian per the REPARSE_DATA_BUFFER layout.
type cursor struct {
	buf     []byte
	off     int
	failure error
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) err() error {
	return c.failure
}

// require reserves n bytes at the current offset, recording a failure when
// the buffer is too short.
func (c *cursor) require(n int) bool {
	if c.failure != nil {
		return false
	}
	if n < 0 || len(c.buf)-c.off < n {
		c.failure = errors.Wrapf(ErrInvalidBuffer, "%d bytes required at offset %d of a %d byte buffer", n, c.off, len(c.buf))
		return false
	}
	return true
}

func (c *cursor) seek(off int) {
	if c.failure != nil {
		return
	}
	if off < 0 || off > len(c.buf) {
		c.failure = errors.Wrapf(ErrInvalidBuffer, "offset %d outside a %d byte buffer", off, len(c.buf))
		return
	}
	c.off = off
}

func (c *cursor) putUint16(v uint16) {
	if !c.require(2) {
		return
	}
	binary.LittleEndian.PutUint16(c.buf[c.off:], v)
	c.off += 2
}

func (c *cursor) putUint32(v uint32) {
	if !c.require(4) {
		return
	}
	binary.LittleEndian.PutUint32(c.buf[c.off:], v)
	c.off += 4
}

func (c *cursor) putUTF16(s []uint16) {
	if !c.require(len(s) * wcharSize) {
		return
	}
	for _, u := range s {
		binary.LittleEndian.PutUint16(c.buf[c.off:], u)
		c.off += 2
	}
}

func (c *cursor) uint16() uint16 {
	if !c.require(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v
}

func (c *cursor) uint32() uint32 {
	if !c.require(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v
}

// utf16 reads nbytes of UTF-16 units. Lengths in the reparse layout are byte
// counts; an odd count cannot describe whole units and is rejected.
func (c *cursor) utf16(nbytes int) []uint16 {
	if c.failure == nil && nbytes%wcharSize != 0 {
		c.failure = errors.Wrapf(ErrInvalidBuffer, "name length %d is not a multiple of %d", nbytes, wcharSize)
		return nil
	}
	if !c.require(nbytes) {
		return nil
	}
	s := make([]uint16, nbytes/wcharSize)
	for i := range s {
		s[i] = binary.LittleEndian.Uint16(c.buf[c.off:])
		c.off += 2
	}
	return s
}
