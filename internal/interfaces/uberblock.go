package interfaces

import "github.com/deploymenttheory/go-zfs/internal/types"

// UberblockReader provides access to one decoded uberblock header.
type UberblockReader interface {
	// Magic returns the raw magic field
	Magic() uint64

	// Version returns the pool version that wrote the record
	Version() uint64

	// Txg returns the committed transaction group id
	Txg() uint64

	// GuidSum returns the checksum of the leaf vdev guids
	GuidSum() uint64

	// Timestamp returns the commit wall-clock time in seconds
	Timestamp() uint64

	// IsValid reports whether the magic identifies an occupied slot
	IsValid() bool

	// Uberblock returns the decoded record
	Uberblock() *types.Uberblock
}

// ActiveUberblockSelector scans an uberblock ring and picks the record of the
// most recently committed transaction.
type ActiveUberblockSelector interface {
	// SelectActive returns the winning record with its ring index set, or
	// ErrNoUberblock when no slot has a valid magic
	SelectActive(ring []byte) (*types.Uberblock, error)

	// SlotSize returns the ring's slot size in bytes
	SlotSize() int

	// SlotBytes returns the raw bytes of one ring slot
	SlotBytes(ring []byte, index int) ([]byte, error)
}
