package stream

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/deploymenttheory/go-zfs/internal/types"
)

func buildUint64s(endian binary.ByteOrder, values ...uint64) []byte {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		endian.PutUint64(data[i*8:i*8+8], v)
	}
	return data
}

func TestCursor_ReadUint64(t *testing.T) {
	data := buildUint64s(binary.BigEndian, 0x00bab10c, 42)
	c := NewCursor(data)

	v, err := c.ReadUint64(binary.BigEndian)
	if err != nil {
		t.Fatalf("ReadUint64() failed: %v", err)
	}
	if v != 0x00bab10c {
		t.Errorf("ReadUint64() = %#x, want 0xbab10c", v)
	}
	if c.Position() != 8 {
		t.Errorf("Position() = %d, want 8", c.Position())
	}

	v, err = c.ReadUint64(binary.BigEndian)
	if err != nil {
		t.Fatalf("second ReadUint64() failed: %v", err)
	}
	if v != 42 {
		t.Errorf("second ReadUint64() = %d, want 42", v)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", c.Remaining())
	}
}

func TestCursor_ByteOrder(t *testing.T) {
	data := []byte{0x0c, 0xb1, 0xba, 0x00, 0x00, 0x00, 0x00, 0x00}

	big, err := NewCursor(data).ReadUint64(binary.BigEndian)
	if err != nil {
		t.Fatalf("big-endian read failed: %v", err)
	}
	if big != 0x0cb1ba0000000000 {
		t.Errorf("big-endian read = %#x, want 0x0cb1ba0000000000", big)
	}

	little, err := NewCursor(data).ReadUint64(binary.LittleEndian)
	if err != nil {
		t.Fatalf("little-endian read failed: %v", err)
	}
	if little != 0x00bab10c {
		t.Errorf("little-endian read = %#x, want 0xbab10c", little)
	}
}

func TestCursor_ReadUint64s(t *testing.T) {
	data := buildUint64s(binary.BigEndian, 1, 2, 3, 4, 5)
	c := NewCursor(data)

	values, err := c.ReadUint64s(5, binary.BigEndian)
	if err != nil {
		t.Fatalf("ReadUint64s(5) failed: %v", err)
	}
	for i, v := range values {
		if v != uint64(i+1) {
			t.Errorf("values[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestCursor_Truncated(t *testing.T) {
	c := NewCursor(make([]byte, 12))

	if _, err := c.ReadUint64(binary.BigEndian); err != nil {
		t.Fatalf("first ReadUint64() failed: %v", err)
	}
	if _, err := c.ReadUint64(binary.BigEndian); !errors.Is(err, types.ErrTruncated) {
		t.Errorf("ReadUint64() past end error = %v, want ErrTruncated", err)
	}

	// A failed repeated read reports the same truncation.
	if _, err := NewCursor(make([]byte, 20)).ReadUint64s(3, binary.BigEndian); !errors.Is(err, types.ErrTruncated) {
		t.Errorf("ReadUint64s(3) over 20 bytes error = %v, want ErrTruncated", err)
	}
}

func TestCursor_Rewind(t *testing.T) {
	data := buildUint64s(binary.BigEndian, 7, 8, 9)
	c := NewCursor(data)

	if _, err := c.ReadUint64s(2, binary.BigEndian); err != nil {
		t.Fatalf("ReadUint64s(2) failed: %v", err)
	}

	// Negative delta re-reads a previously consumed field.
	if err := c.Rewind(-8); err != nil {
		t.Fatalf("Rewind(-8) failed: %v", err)
	}
	v, err := c.ReadUint64(binary.BigEndian)
	if err != nil {
		t.Fatalf("re-read failed: %v", err)
	}
	if v != 8 {
		t.Errorf("re-read = %d, want 8", v)
	}

	// Positive delta skips over a padding region.
	if err := c.Rewind(-16); err != nil {
		t.Fatalf("Rewind(-16) failed: %v", err)
	}
	if err := c.Rewind(8); err != nil {
		t.Fatalf("Rewind(8) failed: %v", err)
	}
	v, err = c.ReadUint64(binary.BigEndian)
	if err != nil {
		t.Fatalf("read after skip failed: %v", err)
	}
	if v != 8 {
		t.Errorf("read after skip = %d, want 8", v)
	}
}

func TestCursor_RewindOutOfRange(t *testing.T) {
	c := NewCursor(make([]byte, 8))

	if err := c.Rewind(-1); !errors.Is(err, types.ErrTruncated) {
		t.Errorf("Rewind(-1) from 0 error = %v, want ErrTruncated", err)
	}
	if err := c.Rewind(9); !errors.Is(err, types.ErrTruncated) {
		t.Errorf("Rewind(9) past end error = %v, want ErrTruncated", err)
	}

	// A failed move leaves the position untouched.
	if c.Position() != 0 {
		t.Errorf("Position() after failed rewinds = %d, want 0", c.Position())
	}
}
