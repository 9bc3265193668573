package nvlist

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-zfs/internal/types"
)

// Serialization header encodings. Vdev labels always carry the portable XDR
// encoding; the native encoding only ever travels between kernel and
// userland on the same host.
const (
	EncodeNative = 0
	EncodeXDR    = 1

	headerSize = 4
)

// Pair data types from the nvpair serialization.
const (
	typeBoolean      = 1
	typeByte         = 2
	typeInt16        = 3
	typeUint16       = 4
	typeInt32        = 5
	typeUint32       = 6
	typeInt64        = 7
	typeUint64       = 8
	typeString       = 9
	typeByteArray    = 10
	typeInt16Array   = 11
	typeUint16Array  = 12
	typeInt32Array   = 13
	typeUint32Array  = 14
	typeInt64Array   = 15
	typeUint64Array  = 16
	typeStringArray  = 17
	typeHrtime       = 18
	typeNvlist       = 19
	typeNvlistArray  = 20
	typeBooleanValue = 21
)

// Pair is one decoded name/value entry.
type Pair struct {
	Name  string
	Type  int32
	Count int32
	Value interface{}
}

// List is a decoded name/value list. Nested lists appear as *List values.
type List struct {
	Version int32
	Flag    uint32
	Pairs   []Pair
}

// Unpack decodes an XDR-encoded name/value list, the format of the pool
// property region of a vdev label: a 4-byte serialization header (encoding
// and endianness bytes), then the list's version and flags, then pairs until
// an all-zero size marker.
func Unpack(data []byte) (*List, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: nvlist header needs %d bytes, got %d", types.ErrTruncated, headerSize, len(data))
	}
	if data[0] != EncodeXDR {
		return nil, fmt.Errorf("%w: nvlist encoding %d is not XDR", types.ErrUnknownIndex, data[0])
	}

	d := &decoder{data: data, pos: headerSize}
	return d.list()
}

// Map returns the list as a flat property map, stripping the pair wrappers
// and recursively flattening nested lists.
func (l *List) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(l.Pairs))
	for _, pair := range l.Pairs {
		m[pair.Name] = stripValue(pair.Value)
	}
	return m
}

func stripValue(v interface{}) interface{} {
	switch nested := v.(type) {
	case *List:
		return nested.Map()
	case []*List:
		maps := make([]map[string]interface{}, len(nested))
		for i, l := range nested {
			maps[i] = l.Map()
		}
		return maps
	default:
		return v
	}
}

// decoder walks the XDR stream. All XDR fields are big-endian and 4-byte
// aligned regardless of the endianness byte in the serialization header.
type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) uint32() (uint32, error) {
	if d.pos+4 > len(d.data) {
		return 0, fmt.Errorf("%w: nvlist stream ends at offset %d", types.ErrTruncated, d.pos)
	}
	v := binary.BigEndian.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4
	return v, nil
}

func (d *decoder) int32() (int32, error) {
	v, err := d.uint32()
	return int32(v), err
}

func (d *decoder) uint64() (uint64, error) {
	if d.pos+8 > len(d.data) {
		return 0, fmt.Errorf("%w: nvlist stream ends at offset %d", types.ErrTruncated, d.pos)
	}
	v := binary.BigEndian.Uint64(d.data[d.pos : d.pos+8])
	d.pos += 8
	return v, nil
}

// opaque reads n raw bytes plus the XDR padding to the next 4-byte boundary.
func (d *decoder) opaque(n int) ([]byte, error) {
	padded := (n + 3) &^ 3
	if n < 0 || d.pos+padded > len(d.data) {
		return nil, fmt.Errorf("%w: nvlist opaque of %d bytes at offset %d", types.ErrTruncated, n, d.pos)
	}
	v := d.data[d.pos : d.pos+n]
	d.pos += padded
	return v, nil
}

func (d *decoder) xdrString() (string, error) {
	n, err := d.uint32()
	if err != nil {
		return "", err
	}
	raw, err := d.opaque(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// list decodes a version/flags header, then pairs until the terminator.
func (d *decoder) list() (*List, error) {
	version, err := d.int32()
	if err != nil {
		return nil, err
	}
	flag, err := d.uint32()
	if err != nil {
		return nil, err
	}

	l := &List{Version: version, Flag: flag}
	for {
		encodedSize, err := d.uint32()
		if err != nil {
			return nil, err
		}
		decodedSize, err := d.uint32()
		if err != nil {
			return nil, err
		}
		if encodedSize == 0 && decodedSize == 0 {
			return l, nil
		}

		pair, err := d.pair()
		if err != nil {
			return nil, err
		}
		l.Pairs = append(l.Pairs, *pair)
	}
}

func (d *decoder) pair() (*Pair, error) {
	name, err := d.xdrString()
	if err != nil {
		return nil, err
	}
	dataType, err := d.int32()
	if err != nil {
		return nil, err
	}
	count, err := d.int32()
	if err != nil {
		return nil, err
	}

	value, err := d.value(dataType, count)
	if err != nil {
		return nil, fmt.Errorf("pair %q: %w", name, err)
	}
	return &Pair{Name: name, Type: dataType, Count: count, Value: value}, nil
}

func (d *decoder) value(dataType, count int32) (interface{}, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", types.ErrTruncated, count)
	}

	switch dataType {
	case typeBoolean:
		// A flag pair: presence is the value.
		return true, nil
	case typeBooleanValue:
		v, err := d.uint32()
		return v != 0, err
	case typeByte:
		v, err := d.uint32()
		return byte(v), err
	case typeInt16:
		v, err := d.uint32()
		return int16(v), err
	case typeUint16:
		v, err := d.uint32()
		return uint16(v), err
	case typeInt32:
		return d.int32()
	case typeUint32:
		return d.uint32()
	case typeInt64, typeHrtime:
		v, err := d.uint64()
		return int64(v), err
	case typeUint64:
		return d.uint64()
	case typeString:
		return d.xdrString()
	case typeByteArray:
		raw, err := d.opaque(int(count))
		if err != nil {
			return nil, err
		}
		out := make([]byte, count)
		copy(out, raw)
		return out, nil
	case typeUint64Array:
		values := make([]uint64, count)
		for i := range values {
			v, err := d.uint64()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	case typeInt64Array:
		values := make([]int64, count)
		for i := range values {
			v, err := d.uint64()
			if err != nil {
				return nil, err
			}
			values[i] = int64(v)
		}
		return values, nil
	case typeInt32Array, typeUint32Array, typeInt16Array, typeUint16Array:
		values := make([]uint32, count)
		for i := range values {
			v, err := d.uint32()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return narrowArray(dataType, values), nil
	case typeStringArray:
		values := make([]string, count)
		for i := range values {
			v, err := d.xdrString()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	case typeNvlist:
		return d.list()
	case typeNvlistArray:
		values := make([]*List, count)
		for i := range values {
			v, err := d.list()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%w: nvpair data type %d", types.ErrUnknownIndex, dataType)
	}
}

func narrowArray(dataType int32, words []uint32) interface{} {
	switch dataType {
	case typeInt32Array:
		values := make([]int32, len(words))
		for i, w := range words {
			values[i] = int32(w)
		}
		return values
	case typeInt16Array:
		values := make([]int16, len(words))
		for i, w := range words {
			values[i] = int16(w)
		}
		return values
	case typeUint16Array:
		values := make([]uint16, len(words))
		for i, w := range words {
			values[i] = uint16(w)
		}
		return values
	default:
		return words
	}
}
