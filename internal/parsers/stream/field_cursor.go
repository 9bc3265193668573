package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/types"
)

// Cursor is a sequential reader of fixed-width fields over a byte buffer.
// It keeps an explicit byte position that can be moved by a signed delta, so
// callers can skip padding forward or re-read already consumed regions. The
// position never wraps or clamps; any move outside [0, len] fails.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data. The cursor
// reads from the buffer in place and never modifies it.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadUint64 consumes the next 8 bytes in the given byte order and advances
// the position by 8.
func (c *Cursor) ReadUint64(endian binary.ByteOrder) (uint64, error) {
	if c.pos+8 > len(c.data) {
		return 0, fmt.Errorf("%w: need 8 bytes at offset %d, %d remain", types.ErrTruncated, c.pos, len(c.data)-c.pos)
	}
	v := endian.Uint64(c.data[c.pos : c.pos+8])
	c.pos += 8
	return v, nil
}

// ReadUint64s performs n consecutive ReadUint64 calls.
func (c *Cursor) ReadUint64s(n int, endian binary.ByteOrder) ([]uint64, error) {
	values := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		v, err := c.ReadUint64(endian)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Rewind moves the position by a signed byte delta. A positive delta skips
// bytes, a negative delta re-reads previously consumed bytes.
func (c *Cursor) Rewind(delta int) error {
	next := c.pos + delta
	if next < 0 || next > len(c.data) {
		return fmt.Errorf("%w: rewind %d from offset %d leaves buffer of %d bytes", types.ErrTruncated, delta, c.pos, len(c.data))
	}
	c.pos = next
	return nil
}

// Position returns the current byte offset.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}
