package uberblock

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/interfaces"
	"github.com/deploymenttheory/go-zfs/internal/parsers/stream"
	"github.com/deploymenttheory/go-zfs/internal/types"
)

// uberblockReader implements the UberblockReader interface
type uberblockReader struct {
	ub *types.Uberblock
}

var _ interfaces.UberblockReader = (*uberblockReader)(nil)

// NewUberblockReader decodes a 40-byte uberblock header. An unrecognized
// magic is not an error here: the slot is simply unoccupied, and the
// selector decides what to do with it.
func NewUberblockReader(data []byte, endian binary.ByteOrder) (interfaces.UberblockReader, error) {
	ub, err := ParseUberblock(data, endian)
	if err != nil {
		return nil, err
	}
	return &uberblockReader{ub: ub}, nil
}

// ParseUberblock decodes the five fixed header fields of a checkpoint
// record: magic, version, txg, guid sum, timestamp.
func ParseUberblock(data []byte, endian binary.ByteOrder) (*types.Uberblock, error) {
	if len(data) < types.UberblockHeaderSize {
		return nil, fmt.Errorf("%w: uberblock header needs %d bytes, got %d", types.ErrTruncated, types.UberblockHeaderSize, len(data))
	}

	cursor := stream.NewCursor(data)
	fields, err := cursor.ReadUint64s(5, endian)
	if err != nil {
		return nil, fmt.Errorf("failed to read uberblock header: %w", err)
	}

	return &types.Uberblock{
		Magic:     fields[0],
		Version:   fields[1],
		Txg:       fields[2],
		GuidSum:   fields[3],
		Timestamp: fields[4],
		RingIndex: -1,
	}, nil
}

// Magic returns the raw magic field
func (r *uberblockReader) Magic() uint64 {
	return r.ub.Magic
}

// Version returns the pool version that wrote the record
func (r *uberblockReader) Version() uint64 {
	return r.ub.Version
}

// Txg returns the committed transaction group id
func (r *uberblockReader) Txg() uint64 {
	return r.ub.Txg
}

// GuidSum returns the checksum of the leaf vdev guids
func (r *uberblockReader) GuidSum() uint64 {
	return r.ub.GuidSum
}

// Timestamp returns the commit wall-clock time in seconds
func (r *uberblockReader) Timestamp() uint64 {
	return r.ub.Timestamp
}

// IsValid reports whether the magic identifies an occupied slot
func (r *uberblockReader) IsValid() bool {
	return r.ub.HasValidMagic()
}

// Uberblock returns the decoded record
func (r *uberblockReader) Uberblock() *types.Uberblock {
	return r.ub
}
