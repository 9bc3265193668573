package stream

import (
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/types"
)

// GetBits extracts an unsigned bit field of the given length starting at bit
// position start (LSB = 0) from a 64-bit value:
//
//	(value >> start) & ((1 << length) - 1)
//
// start and length must satisfy start+length <= 64.
func GetBits(value uint64, start, length uint) (uint64, error) {
	if length > 64 || start > 64 || start+length > 64 {
		return 0, fmt.Errorf("%w: start %d length %d exceeds 64-bit source", types.ErrBitRange, start, length)
	}
	if length == 0 {
		return 0, nil
	}
	mask := ^uint64(0) >> (64 - length)
	return (value >> start) & mask, nil
}
