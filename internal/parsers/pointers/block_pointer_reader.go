package pointers

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/interfaces"
	"github.com/deploymenttheory/go-zfs/internal/parsers/stream"
	"github.com/deploymenttheory/go-zfs/internal/types"
)

// blockPointerReader implements the BlockPointerReader interface
type blockPointerReader struct {
	bp *types.BlockPointer
}

var _ interfaces.BlockPointerReader = (*blockPointerReader)(nil)

// NewBlockPointerReader decodes one 128-byte block pointer record.
func NewBlockPointerReader(data []byte, endian binary.ByteOrder) (interfaces.BlockPointerReader, error) {
	bp, err := ParseBlockPointer(data, endian)
	if err != nil {
		return nil, err
	}
	return &blockPointerReader{bp: bp}, nil
}

// ParseBlockPointer decodes a 128-byte block pointer: three 16-byte DVAs, one
// packed property word, 24 bytes of padding, birth txg, fill count, and four
// checksum words. The packed word carries, from bit 0 up: raw logical size
// (16 bits), raw physical size (16 bits), compression index (8), checksum
// index (8), object type index (8), level (5), and the endianness flag at
// bit 63 (1 = little endian). Size fields decode as (raw+1) * 512; every
// enumeration index is bounds-checked against its table.
func ParseBlockPointer(data []byte, endian binary.ByteOrder) (*types.BlockPointer, error) {
	if len(data) != types.BlockPointerSize {
		return nil, fmt.Errorf("%w: block pointer needs exactly %d bytes, got %d", types.ErrTruncated, types.BlockPointerSize, len(data))
	}

	bp := &types.BlockPointer{}
	for i := 0; i < types.DvasPerBlockPointer; i++ {
		dva, err := ParseDva(data[i*types.DvaSize:(i+1)*types.DvaSize], endian)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dva %d: %w", i, err)
		}
		bp.Dvas[i] = *dva
	}

	cursor := stream.NewCursor(data[types.DvasPerBlockPointer*types.DvaSize:])
	props, err := cursor.ReadUint64(endian)
	if err != nil {
		return nil, fmt.Errorf("failed to read block pointer property word: %w", err)
	}

	lsizeRaw, err := stream.GetBits(props, 0, 16)
	if err != nil {
		return nil, err
	}
	psizeRaw, err := stream.GetBits(props, 16, 16)
	if err != nil {
		return nil, err
	}
	bp.LogicalSize = (lsizeRaw + 1) << types.SpaMinBlockShift
	bp.PhysicalSize = (psizeRaw + 1) << types.SpaMinBlockShift

	compIndex, err := stream.GetBits(props, 32, 8)
	if err != nil {
		return nil, err
	}
	cksumIndex, err := stream.GetBits(props, 40, 8)
	if err != nil {
		return nil, err
	}
	typeIndex, err := stream.GetBits(props, 48, 8)
	if err != nil {
		return nil, err
	}
	level, err := stream.GetBits(props, 56, 5)
	if err != nil {
		return nil, err
	}
	littleEndian, err := stream.GetBits(props, 63, 1)
	if err != nil {
		return nil, err
	}

	if bp.Compression, err = lookupName(types.CompressionNames, "compression", compIndex); err != nil {
		return nil, err
	}
	if bp.Checksum, err = lookupName(types.ChecksumNames, "checksum", cksumIndex); err != nil {
		return nil, err
	}
	if bp.ObjectType, err = lookupName(types.DmuObjectTypeNames, "object type", typeIndex); err != nil {
		return nil, err
	}
	bp.Level = uint8(level)
	if littleEndian != 0 {
		bp.Endian = binary.LittleEndian
	} else {
		bp.Endian = binary.BigEndian
	}

	// Skip the padding between the property word and the birth txg.
	if err := cursor.Rewind(types.BlockPointerPadSize); err != nil {
		return nil, err
	}
	tail, err := cursor.ReadUint64s(2, endian)
	if err != nil {
		return nil, fmt.Errorf("failed to read birth txg and fill count: %w", err)
	}
	bp.BirthTxg = tail[0]
	bp.FillCount = tail[1]

	words, err := cursor.ReadUint64s(types.ChecksumWordsPerBp, endian)
	if err != nil {
		return nil, fmt.Errorf("failed to read block checksum: %w", err)
	}
	copy(bp.ChecksumWords[:], words)

	return bp, nil
}

// lookupName resolves a raw enumeration index against its table. Anything
// past the table's end is a decode failure, never a wraparound or a default.
func lookupName(table []string, field string, index uint64) (string, error) {
	if index >= uint64(len(table)) {
		return "", fmt.Errorf("%w: %s index %d (table has %d entries)", types.ErrUnknownIndex, field, index, len(table))
	}
	return table[index], nil
}

// Dvas returns the up-to-three redundant copy addresses
func (r *blockPointerReader) Dvas() []types.Dva {
	dvas := make([]types.Dva, len(r.bp.Dvas))
	copy(dvas, r.bp.Dvas[:])
	return dvas
}

// LogicalSize returns the block's logical size in bytes
func (r *blockPointerReader) LogicalSize() uint64 {
	return r.bp.LogicalSize
}

// PhysicalSize returns the block's on-disk size in bytes
func (r *blockPointerReader) PhysicalSize() uint64 {
	return r.bp.PhysicalSize
}

// Compression returns the compression algorithm name
func (r *blockPointerReader) Compression() string {
	return r.bp.Compression
}

// Checksum returns the checksum algorithm name
func (r *blockPointerReader) Checksum() string {
	return r.bp.Checksum
}

// ObjectType returns the DMU object type name
func (r *blockPointerReader) ObjectType() string {
	return r.bp.ObjectType
}

// Level returns the block's depth in its indirection tree
func (r *blockPointerReader) Level() uint8 {
	return r.bp.Level
}

// BirthTxg returns the transaction group that wrote the block
func (r *blockPointerReader) BirthTxg() uint64 {
	return r.bp.BirthTxg
}

// FillCount returns the number of non-hole entries beneath the block
func (r *blockPointerReader) FillCount() uint64 {
	return r.bp.FillCount
}

// BlockPointer returns the decoded record
func (r *blockPointerReader) BlockPointer() *types.BlockPointer {
	return r.bp
}
