package pointers

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/interfaces"
	"github.com/deploymenttheory/go-zfs/internal/parsers/stream"
	"github.com/deploymenttheory/go-zfs/internal/types"
)

// dvaReader implements the DvaReader interface
type dvaReader struct {
	dva types.Dva
}

var _ interfaces.DvaReader = (*dvaReader)(nil)

// NewDvaReader decodes one 16-byte Data Virtual Address record.
func NewDvaReader(data []byte, endian binary.ByteOrder) (interfaces.DvaReader, error) {
	dva, err := ParseDva(data, endian)
	if err != nil {
		return nil, err
	}
	return &dvaReader{dva: *dva}, nil
}

// ParseDva decodes the two packed words of a DVA record:
//
//	word 0: bits [0,24) asize, [24,32) grid, [32,64) vdev index
//	word 1: bits [0,63) offset, bit 63 gang flag
//
// The raw asize and offset are stored in 512-byte units and are scaled to
// bytes here, so both decoded fields are always multiples of 512.
func ParseDva(data []byte, endian binary.ByteOrder) (*types.Dva, error) {
	if len(data) != types.DvaSize {
		return nil, fmt.Errorf("%w: dva record needs exactly %d bytes, got %d", types.ErrTruncated, types.DvaSize, len(data))
	}

	cursor := stream.NewCursor(data)
	words, err := cursor.ReadUint64s(2, endian)
	if err != nil {
		return nil, fmt.Errorf("failed to read dva words: %w", err)
	}

	asize, err := stream.GetBits(words[0], 0, 24)
	if err != nil {
		return nil, err
	}
	grid, err := stream.GetBits(words[0], 24, 8)
	if err != nil {
		return nil, err
	}
	vdev, err := stream.GetBits(words[0], 32, 32)
	if err != nil {
		return nil, err
	}
	offset, err := stream.GetBits(words[1], 0, 63)
	if err != nil {
		return nil, err
	}
	gang, err := stream.GetBits(words[1], 63, 1)
	if err != nil {
		return nil, err
	}

	return &types.Dva{
		VdevIndex:     uint32(vdev),
		Grid:          uint8(grid),
		AllocatedSize: asize << types.SpaMinBlockShift,
		Offset:        offset << types.SpaMinBlockShift,
		IsGang:        gang != 0,
	}, nil
}

// VdevIndex returns the index of the leaf vdev holding the extent
func (r *dvaReader) VdevIndex() uint32 {
	return r.dva.VdevIndex
}

// Grid returns the raw grid field
func (r *dvaReader) Grid() uint8 {
	return r.dva.Grid
}

// AllocatedSize returns the allocated extent size in bytes
func (r *dvaReader) AllocatedSize() uint64 {
	return r.dva.AllocatedSize
}

// Offset returns the extent's byte offset on the vdev
func (r *dvaReader) Offset() uint64 {
	return r.dva.Offset
}

// IsGang reports whether the extent holds a gang header
func (r *dvaReader) IsGang() bool {
	return r.dva.IsGang
}

// Dva returns the decoded address record
func (r *dvaReader) Dva() types.Dva {
	return r.dva
}
