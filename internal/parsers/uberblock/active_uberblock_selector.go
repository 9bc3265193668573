package uberblock

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/interfaces"
	"github.com/deploymenttheory/go-zfs/internal/types"
)

// selector implements the ActiveUberblockSelector interface
type selector struct {
	slotSize int
	endian   binary.ByteOrder
}

var _ interfaces.ActiveUberblockSelector = (*selector)(nil)

// NewSelector creates a selector for a ring whose slots are sized
// 1 << max(ashift, 10). ashift is the top-level vdev's allocation shift;
// pools below the 1 KiB floor still align uberblocks to 1 KiB.
func NewSelector(ashift uint, endian binary.ByteOrder) interfaces.ActiveUberblockSelector {
	shift := ashift
	if shift < types.UberblockShift {
		shift = types.UberblockShift
	}
	return &selector{
		slotSize: 1 << shift,
		endian:   endian,
	}
}

// SelectActive scans every slot of the ring, skips those without a valid
// magic, and returns the record of the most recent committed transaction.
// A candidate displaces the running best only when its txg is greater or
// equal and its timestamp strictly greater; this is the historical rule,
// kept bit-for-bit for compatibility with existing pools.
func (s *selector) SelectActive(ring []byte) (*types.Uberblock, error) {
	var best *types.Uberblock

	for index := 0; (index+1)*s.slotSize <= len(ring); index++ {
		slot := ring[index*s.slotSize : (index+1)*s.slotSize]
		ub, err := ParseUberblock(slot, s.endian)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ring slot %d: %w", index, err)
		}
		ub.RingIndex = index

		if !ub.HasValidMagic() {
			continue
		}
		if best == nil {
			best = ub
		}
		if ub.Txg >= best.Txg && ub.Timestamp > best.Timestamp {
			best = ub
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: scanned %d slots", types.ErrNoUberblock, len(ring)/s.slotSize)
	}
	return best, nil
}

// SlotSize returns the ring's slot size in bytes
func (s *selector) SlotSize() int {
	return s.slotSize
}

// SlotBytes returns the raw bytes of one ring slot.
func (s *selector) SlotBytes(ring []byte, index int) ([]byte, error) {
	start := index * s.slotSize
	end := start + s.slotSize
	if index < 0 || end > len(ring) {
		return nil, fmt.Errorf("%w: slot %d outside ring of %d bytes", types.ErrTruncated, index, len(ring))
	}
	return ring[start:end], nil
}
