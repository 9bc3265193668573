package types

import "encoding/binary"

// Dva is a Data Virtual Address: one physical extent on one leaf vdev.
// AllocatedSize and Offset are byte values already scaled by
// 1 << SpaMinBlockShift, so both are always multiples of 512.
type Dva struct {
	VdevIndex     uint32
	Grid          uint8
	AllocatedSize uint64
	Offset        uint64
	IsGang        bool
}

// BlockPointer references up to three redundant physical copies of a logical
// block, plus its size, compression, checksum and DMU object type.
type BlockPointer struct {
	Dvas [DvasPerBlockPointer]Dva

	// LogicalSize and PhysicalSize are decoded as (raw+1) << SpaMinBlockShift,
	// so the smallest representable size is 512 bytes.
	LogicalSize  uint64
	PhysicalSize uint64

	Compression string
	Checksum    string
	ObjectType  string

	Level  uint8
	Endian binary.ByteOrder

	BirthTxg  uint64
	FillCount uint64

	ChecksumWords [ChecksumWordsPerBp]uint64
}

// Uberblock is one committed-transaction checkpoint record. RingIndex is the
// slot position within the containing ring; it is assigned during selection
// and is not part of the wire format.
type Uberblock struct {
	Magic     uint64
	Version   uint64
	Txg       uint64
	GuidSum   uint64
	Timestamp uint64

	RingIndex        int
	RootBlockPointer *BlockPointer
}

// HasValidMagic reports whether the slot holds a checkpoint record. Either
// byte-order rendering of the magic is accepted; anything else means the slot
// is unoccupied, not that the input is corrupt.
func (u *Uberblock) HasValidMagic() bool {
	return u.Magic == UberblockMagic || u.Magic == UberblockMagicByteswap
}

// VdevLabel is one decoded 256 KiB per-device label copy. ActiveUberblock is
// nil when no slot in the ring carried a valid magic.
type VdevLabel struct {
	BootHeader      []byte
	Properties      map[string]interface{}
	ActiveUberblock *Uberblock
}
