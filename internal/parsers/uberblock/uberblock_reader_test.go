package uberblock

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/deploymenttheory/go-zfs/internal/types"
)

// buildUberblockHeader packs the five fixed header fields of a slot.
func buildUberblockHeader(endian binary.ByteOrder, magic, version, txg, guidSum, timestamp uint64) []byte {
	data := make([]byte, types.UberblockHeaderSize)
	endian.PutUint64(data[0:8], magic)
	endian.PutUint64(data[8:16], version)
	endian.PutUint64(data[16:24], txg)
	endian.PutUint64(data[24:32], guidSum)
	endian.PutUint64(data[32:40], timestamp)
	return data
}

func TestNewUberblockReader(t *testing.T) {
	data := buildUberblockHeader(binary.BigEndian, types.UberblockMagic, 1, 4708, 0xDEADBEEF, 1218201218)

	reader, err := NewUberblockReader(data, binary.BigEndian)
	if err != nil {
		t.Fatalf("NewUberblockReader() failed: %v", err)
	}

	if reader.Magic() != types.UberblockMagic {
		t.Errorf("Magic() = %#x, want %#x", reader.Magic(), types.UberblockMagic)
	}
	if reader.Version() != 1 {
		t.Errorf("Version() = %d, want 1", reader.Version())
	}
	if reader.Txg() != 4708 {
		t.Errorf("Txg() = %d, want 4708", reader.Txg())
	}
	if reader.GuidSum() != 0xDEADBEEF {
		t.Errorf("GuidSum() = %#x, want 0xDEADBEEF", reader.GuidSum())
	}
	if reader.Timestamp() != 1218201218 {
		t.Errorf("Timestamp() = %d, want 1218201218", reader.Timestamp())
	}
	if !reader.IsValid() {
		t.Error("IsValid() = false, want true")
	}
}

func TestUberblockReader_MagicByteOrders(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		valid bool
	}{
		{
			name:  "native byte order magic",
			data:  buildUberblockHeader(binary.BigEndian, types.UberblockMagic, 1, 1, 1, 1),
			valid: true,
		},
		{
			// The little-endian rendering of the magic, read back as
			// big-endian, gives the byteswapped bit pattern.
			name:  "opposite byte order magic",
			data:  buildUberblockHeader(binary.LittleEndian, types.UberblockMagic, 1, 1, 1, 1),
			valid: true,
		},
		{
			name:  "unrelated prefix",
			data:  buildUberblockHeader(binary.BigEndian, 0x4E56505F5F4C4953, 1, 1, 1, 1),
			valid: false,
		},
		{
			name:  "zeroed slot",
			data:  make([]byte, types.UberblockHeaderSize),
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewUberblockReader(tt.data, binary.BigEndian)
			if err != nil {
				t.Fatalf("NewUberblockReader() failed: %v", err)
			}
			if reader.IsValid() != tt.valid {
				t.Errorf("IsValid() = %t, want %t", reader.IsValid(), tt.valid)
			}
		})
	}
}

func TestParseUberblock_Truncated(t *testing.T) {
	if _, err := ParseUberblock(make([]byte, 39), binary.BigEndian); !errors.Is(err, types.ErrTruncated) {
		t.Errorf("ParseUberblock() with 39 bytes error = %v, want ErrTruncated", err)
	}
}

func TestParseUberblock_RingIndexUnassigned(t *testing.T) {
	ub, err := ParseUberblock(buildUberblockHeader(binary.BigEndian, types.UberblockMagic, 1, 1, 1, 1), binary.BigEndian)
	if err != nil {
		t.Fatalf("ParseUberblock() failed: %v", err)
	}
	if ub.RingIndex != -1 {
		t.Errorf("RingIndex = %d, want -1 before selection", ub.RingIndex)
	}
}
