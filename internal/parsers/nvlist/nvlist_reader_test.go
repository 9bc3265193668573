package nvlist

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-zfs/internal/types"
)

// xdrBuilder packs an XDR nvlist stream the way the label region stores it.
type xdrBuilder struct {
	buf []byte
}

func (b *xdrBuilder) word(v uint32) *xdrBuilder {
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
	return b
}

func (b *xdrBuilder) quad(v uint64) *xdrBuilder {
	b.buf = binary.BigEndian.AppendUint64(b.buf, v)
	return b
}

func (b *xdrBuilder) str(s string) *xdrBuilder {
	b.word(uint32(len(s)))
	b.buf = append(b.buf, s...)
	for len(b.buf)%4 != 0 {
		b.buf = append(b.buf, 0)
	}
	return b
}

// pairHeader writes the size words, name, type and element count of a pair.
// The encoded sizes only need to be nonzero for the decoder to keep going.
func (b *xdrBuilder) pairHeader(name string, dataType, count uint32) *xdrBuilder {
	return b.word(64).word(64).str(name).word(dataType).word(count)
}

func (b *xdrBuilder) terminator() *xdrBuilder {
	return b.word(0).word(0)
}

// newListBuilder starts a stream with the serialization header plus the
// outer list's version and flags.
func newListBuilder() *xdrBuilder {
	b := &xdrBuilder{buf: []byte{EncodeXDR, 0, 0, 0}}
	return b.word(0).word(1)
}

func TestUnpack_ScalarPairs(t *testing.T) {
	data := newListBuilder().
		pairHeader("name", typeString, 1).str("tank").
		pairHeader("txg", typeUint64, 1).quad(4708).
		pairHeader("state", typeUint64, 1).quad(0).
		pairHeader("readonly", typeBoolean, 0).
		terminator().buf

	list, err := Unpack(data)
	require.NoError(t, err)
	require.Len(t, list.Pairs, 4)
	assert.Equal(t, int32(0), list.Version)
	assert.Equal(t, uint32(1), list.Flag)

	props := list.Map()
	assert.Equal(t, "tank", props["name"])
	assert.Equal(t, uint64(4708), props["txg"])
	assert.Equal(t, uint64(0), props["state"])
	assert.Equal(t, true, props["readonly"])
}

func TestUnpack_NestedList(t *testing.T) {
	data := newListBuilder().
		pairHeader("pool_guid", typeUint64, 1).quad(0xBEEF).
		pairHeader("vdev_tree", typeNvlist, 1).
		// Embedded list: its own version/flags, pairs, terminator.
		word(0).word(1).
		pairHeader("type", typeString, 1).str("disk").
		pairHeader("ashift", typeUint64, 1).quad(9).
		terminator().
		terminator().buf

	list, err := Unpack(data)
	require.NoError(t, err)

	props := list.Map()
	assert.Equal(t, uint64(0xBEEF), props["pool_guid"])

	tree, ok := props["vdev_tree"].(map[string]interface{})
	require.True(t, ok, "vdev_tree should strip to a nested map")
	assert.Equal(t, "disk", tree["type"])
	assert.Equal(t, uint64(9), tree["ashift"])
}

func TestUnpack_Arrays(t *testing.T) {
	data := newListBuilder().
		pairHeader("hostid_history", typeUint64Array, 2).quad(10).quad(20).
		pairHeader("children", typeNvlistArray, 2).
		word(0).word(1).pairHeader("id", typeUint64, 1).quad(0).terminator().
		word(0).word(1).pairHeader("id", typeUint64, 1).quad(1).terminator().
		pairHeader("features", typeStringArray, 2).str("async_destroy").str("hole_birth").
		terminator().buf

	list, err := Unpack(data)
	require.NoError(t, err)

	props := list.Map()
	assert.Equal(t, []uint64{10, 20}, props["hostid_history"])
	assert.Equal(t, []string{"async_destroy", "hole_birth"}, props["features"])

	children, ok := props["children"].([]map[string]interface{})
	require.True(t, ok, "nvlist array should strip to a slice of maps")
	require.Len(t, children, 2)
	assert.Equal(t, uint64(0), children[0]["id"])
	assert.Equal(t, uint64(1), children[1]["id"])
}

func TestUnpack_StringPadding(t *testing.T) {
	// Names whose lengths are not multiples of four must still leave the
	// stream aligned for the next field.
	data := newListBuilder().
		pairHeader("a", typeUint64, 1).quad(1).
		pairHeader("abcd", typeUint64, 1).quad(2).
		pairHeader("abcde", typeUint64, 1).quad(3).
		terminator().buf

	list, err := Unpack(data)
	require.NoError(t, err)

	props := list.Map()
	assert.Equal(t, uint64(1), props["a"])
	assert.Equal(t, uint64(2), props["abcd"])
	assert.Equal(t, uint64(3), props["abcde"])
}

func TestUnpack_UnknownDataType(t *testing.T) {
	data := newListBuilder().
		pairHeader("mystery", 99, 1).quad(0).
		terminator().buf

	_, err := Unpack(data)
	assert.ErrorIs(t, err, types.ErrUnknownIndex)
	assert.ErrorContains(t, err, "mystery")
}

func TestUnpack_BadEncoding(t *testing.T) {
	data := newListBuilder().terminator().buf
	data[0] = EncodeNative

	_, err := Unpack(data)
	assert.ErrorIs(t, err, types.ErrUnknownIndex)
}

func TestUnpack_Truncated(t *testing.T) {
	full := newListBuilder().
		pairHeader("txg", typeUint64, 1).quad(4708).
		terminator().buf

	// Every proper prefix that cuts into a field must fail, never
	// zero-fill.
	for _, cut := range []int{0, 3, 8, 12, len(full) - 4} {
		_, err := Unpack(full[:cut])
		assert.ErrorIs(t, err, types.ErrTruncated, "prefix of %d bytes", cut)
	}
}
