package label

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/interfaces"
	"github.com/deploymenttheory/go-zfs/internal/parsers/nvlist"
	"github.com/deploymenttheory/go-zfs/internal/parsers/pointers"
	"github.com/deploymenttheory/go-zfs/internal/parsers/uberblock"
	"github.com/deploymenttheory/go-zfs/internal/types"
)

// vdevLabelReader implements the VdevLabelReader interface
type vdevLabelReader struct {
	label *types.VdevLabel
}

var _ interfaces.VdevLabelReader = (*vdevLabelReader)(nil)

// NewVdevLabelReader decodes one 256 KiB vdev label copy:
//
//	[0, 8K)     blank, skipped
//	[8K, 16K)   boot header, kept verbatim
//	[16K, 128K) XDR nvlist with the pool properties
//	[128K, 256K) uberblock ring
//
// ashift sets the ring's slot size (1 << max(ashift, 10)). The active
// uberblock's root block pointer is re-decoded from the raw bytes of the
// winning slot, at the 128 bytes following the 40-byte header.
func NewVdevLabelReader(data []byte, ashift uint) (interfaces.VdevLabelReader, error) {
	if len(data) != types.VdevLabelSize {
		return nil, fmt.Errorf("%w: vdev label needs exactly %d bytes, got %d", types.ErrTruncated, types.VdevLabelSize, len(data))
	}

	bootHeader := make([]byte, types.VdevBootHeaderSize)
	copy(bootHeader, data[types.VdevBootHeaderOffset:types.VdevNvlistOffset])

	props, err := nvlist.Unpack(data[types.VdevNvlistOffset : types.VdevNvlistOffset+types.VdevNvlistSize])
	if err != nil {
		return nil, fmt.Errorf("failed to decode label nvlist: %w", err)
	}

	lbl := &types.VdevLabel{
		BootHeader: bootHeader,
		Properties: props.Map(),
	}

	ring := data[types.VdevUberblockRingOffset:]
	selector := uberblock.NewSelector(ashift, binary.BigEndian)
	active, err := selector.SelectActive(ring)
	switch {
	case errors.Is(err, types.ErrNoUberblock):
		// No committed transaction on this label copy; the label itself
		// is still usable.
	case err != nil:
		return nil, err
	default:
		slot, err := selector.SlotBytes(ring, active.RingIndex)
		if err != nil {
			return nil, err
		}
		raw := slot[types.UberblockRootBpOffset : types.UberblockRootBpOffset+types.BlockPointerSize]
		rootBp, err := pointers.ParseBlockPointer(raw, binary.BigEndian)
		if err != nil {
			return nil, fmt.Errorf("failed to decode root block pointer of slot %d: %w", active.RingIndex, err)
		}
		active.RootBlockPointer = rootBp
		lbl.ActiveUberblock = active
	}

	return &vdevLabelReader{label: lbl}, nil
}

// BootHeader returns the opaque 8 KiB boot header region
func (r *vdevLabelReader) BootHeader() []byte {
	return r.label.BootHeader
}

// Properties returns the pool property map decoded from the label's nvlist
// region
func (r *vdevLabelReader) Properties() map[string]interface{} {
	return r.label.Properties
}

// ActiveUberblock returns the selected checkpoint record, or nil when no
// ring slot validated
func (r *vdevLabelReader) ActiveUberblock() *types.Uberblock {
	return r.label.ActiveUberblock
}

// RootBlockPointer returns the active record's root block pointer.
func (r *vdevLabelReader) RootBlockPointer() (*types.BlockPointer, error) {
	if r.label.ActiveUberblock == nil {
		return nil, fmt.Errorf("%w: label has no active uberblock", types.ErrNoUberblock)
	}
	return r.label.ActiveUberblock.RootBlockPointer, nil
}

// Label returns the decoded label
func (r *vdevLabelReader) Label() *types.VdevLabel {
	return r.label
}
