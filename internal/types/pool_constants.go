package types

// Storage pool on-disk constants. Sizes and offsets are byte-exact; the
// enumeration tables are part of the wire contract and must keep their order.
const (
	// SpaMinBlockShift is the log2 of the smallest allocatable unit. Raw
	// DVA offsets and sizes are stored in units of 1 << SpaMinBlockShift.
	SpaMinBlockShift = 9

	// UberblockShift is the minimum alignment shift for uberblock slots.
	// The effective slot size is 1 << max(ashift, UberblockShift).
	UberblockShift = 10

	// UberblockMagic identifies an occupied uberblock slot ("oo-ba-bloc").
	UberblockMagic = uint64(0x00bab10c)

	// UberblockMagicByteswap is UberblockMagic with its byte order
	// reversed, as read from a pool written with the opposite endianness.
	UberblockMagicByteswap = uint64(0x0cb1ba0000000000)

	// UberblockHeaderSize covers the five fixed uint64 header fields:
	// magic, version, txg, guid_sum, timestamp.
	UberblockHeaderSize = 40

	// UberblockRootBpOffset is the byte offset of the root block pointer
	// within an uberblock slot.
	UberblockRootBpOffset = 40

	DvaSize              = 16
	DvasPerBlockPointer  = 3
	BlockPointerSize     = 128
	BlockPointerPadSize  = 24
	ChecksumWordsPerBp   = 4
	BlockPointerLevelMax = 1<<5 - 1
)

// Vdev label geometry. Each device carries four identical 256 KiB labels:
// two at the start of the device and two ending 512 KiB before its end.
const (
	VdevLabelSize = 256 << 10

	VdevBlankSize      = 8 << 10
	VdevBootHeaderSize = 8 << 10

	VdevBootHeaderOffset = VdevBlankSize
	VdevNvlistOffset     = VdevBlankSize + VdevBootHeaderSize
	VdevNvlistSize       = 112 << 10

	VdevUberblockRingOffset = VdevNvlistOffset + VdevNvlistSize
	VdevUberblockRingSize   = 128 << 10

	VdevLabelCount = 4
)

// CompressionNames maps a block pointer's raw compression index to its
// algorithm name.
var CompressionNames = []string{
	"unknown",
	"on",
	"off",
	"lzjb",
}

// ChecksumNames maps a block pointer's raw checksum index to its algorithm
// name.
var ChecksumNames = []string{
	"unknown",
	"on",
	"off",
	"label",
	"gang header",
	"zilog",
	"fletcher2",
	"fletcher4",
	"SHA-256",
}

// DmuObjectTypeNames maps a block pointer's raw object type index to the DMU
// object type it references.
var DmuObjectTypeNames = []string{
	"DMU_OT_NONE",
	"DMU_OT_OBJECT_DIRECTORY",
	"DMU_OT_OBJECT_ARRAY",
	"DMU_OT_PACKED_NVLIST",
	"DMU_OT_NVLIST_SIZE",
	"DMU_OT_BPLIST",
	"DMU_OT_BPLIST_HDR",
	"DMU_OT_SPACE_MAP_HEADER",
	"DMU_OT_SPACE_MAP",
	"DMU_OT_INTENT_LOG",
	"DMU_OT_DNODE",
	"DMU_OT_OBJSET",
	"DMU_OT_DSL_DATASET",
	"DMU_OT_DSL_DATASET_CHILD_MAP",
	"DMU_OT_OBJSET_SNAP_MAP",
	"DMU_OT_DSL_PROPS",
	"DMU_OT_DSL_OBJSET",
	"DMU_OT_ZNODE",
	"DMU_OT_ACL",
	"DMU_OT_PLAIN_FILE_CONTENTS",
	"DMU_OT_DIRECTORY_CONTENTS",
	"DMU_OT_MASTER_NODE",
	"DMU_OT_DELETE_QUEUE",
	"DMU_OT_ZVOL",
	"DMU_OT_ZVOL_PROP",
}
