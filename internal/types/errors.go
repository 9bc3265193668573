package types

import "errors"

// Decode-layer failure kinds. Callers wrap these with fmt.Errorf("...: %w")
// and match with errors.Is.
var (
	// ErrBitRange means a bit-field request exceeded the source integer's
	// width. Always a caller bug, never recoverable by retry.
	ErrBitRange = errors.New("bit field out of range")

	// ErrTruncated means a buffer was shorter than a fixed-width field
	// required. Input is corrupt or mis-sliced; it is never zero-padded.
	ErrTruncated = errors.New("truncated input")

	// ErrUnknownIndex means a compression, checksum or object type index
	// has no entry in its enumeration table.
	ErrUnknownIndex = errors.New("unknown table index")

	// ErrNoUberblock means no slot in an uberblock ring had a valid magic;
	// the label carries no active transaction checkpoint.
	ErrNoUberblock = errors.New("no valid uberblock in ring")
)
