package interfaces

import "github.com/deploymenttheory/go-zfs/internal/types"

// VdevLabelReader provides access to one decoded 256 KiB vdev label copy.
type VdevLabelReader interface {
	// BootHeader returns the opaque 8 KiB boot header region
	BootHeader() []byte

	// Properties returns the pool property map decoded from the label's
	// nvlist region
	Properties() map[string]interface{}

	// ActiveUberblock returns the selected checkpoint record, or nil when
	// no ring slot validated
	ActiveUberblock() *types.Uberblock

	// RootBlockPointer returns the active record's root block pointer, or
	// ErrNoUberblock when the label has no active record
	RootBlockPointer() (*types.BlockPointer, error)

	// Label returns the decoded label
	Label() *types.VdevLabel
}
