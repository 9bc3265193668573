package interfaces

import "github.com/deploymenttheory/go-zfs/internal/types"

// DvaReader provides access to one decoded Data Virtual Address.
type DvaReader interface {
	// VdevIndex returns the index of the leaf vdev holding the extent
	VdevIndex() uint32

	// Grid returns the raw grid field (reserved on current pools)
	Grid() uint8

	// AllocatedSize returns the allocated extent size in bytes
	AllocatedSize() uint64

	// Offset returns the extent's byte offset on the vdev
	Offset() uint64

	// IsGang reports whether the extent holds a gang header rather than data
	IsGang() bool

	// Dva returns the decoded address record
	Dva() types.Dva
}

// BlockPointerReader provides access to one decoded 128-byte block pointer.
type BlockPointerReader interface {
	// Dvas returns the up-to-three redundant copy addresses
	Dvas() []types.Dva

	// LogicalSize returns the block's logical size in bytes
	LogicalSize() uint64

	// PhysicalSize returns the block's on-disk size in bytes
	PhysicalSize() uint64

	// Compression returns the compression algorithm name
	Compression() string

	// Checksum returns the checksum algorithm name
	Checksum() string

	// ObjectType returns the DMU object type name
	ObjectType() string

	// Level returns the block's depth in its indirection tree
	Level() uint8

	// BirthTxg returns the transaction group that wrote the block
	BirthTxg() uint64

	// FillCount returns the number of non-hole entries beneath the block
	FillCount() uint64

	// BlockPointer returns the decoded record
	BlockPointer() *types.BlockPointer
}
