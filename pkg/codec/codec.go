// Package codec serializes property values to and from the wire
// format property-key/value pairs use when persisted outside the
// process (spec §9): INT as 4 bytes little-endian, DOUBLE as the
// IEEE-754 bit pattern in 8 bytes big-endian, BOOLEAN as 1 byte, and
// STRING as a 4-byte big-endian length prefix followed by UTF-8 bytes.
//
// The source this behavior was ported from computes STRING's length
// prefix (and, less severely, a similar pattern for other widths) with
// inconsistent bit-shift widths — a mask of 0xF000 shifted right by 24
// discards all but the top nibble instead of the full byte. This
// package does not reproduce that bug.
package codec

import (
	"encoding/binary"
	"errors"
	"math"
)

// DataType names the kind of value Encode/Decode operate on.
type DataType int

const (
	Int DataType = iota
	Double
	Boolean
	String
)

// ErrUnsupportedType is returned for a DataType outside the four
// defined above.
var ErrUnsupportedType = errors.New("codec: unsupported data type")

// ErrTruncated is returned when a buffer passed to Decode is shorter
// than the encoding it claims to hold.
var ErrTruncated = errors.New("codec: truncated buffer")

// Encode appends the wire encoding of value (an int32, float64, bool,
// or string, matching dataType) to dst and returns the result.
func Encode(dst []byte, dataType DataType, value any) ([]byte, error) {
	switch dataType {
	case Int:
		v, ok := value.(int32)
		if !ok {
			return nil, ErrUnsupportedType
		}
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		return append(dst, buf[:]...), nil
	case Double:
		v, ok := value.(float64)
		if !ok {
			return nil, ErrUnsupportedType
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		return append(dst, buf[:]...), nil
	case Boolean:
		v, ok := value.(bool)
		if !ok {
			return nil, ErrUnsupportedType
		}
		if v {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil
	case String:
		v, ok := value.(string)
		if !ok {
			return nil, ErrUnsupportedType
		}
		raw := []byte(v)
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(raw)))
		dst = append(dst, length[:]...)
		return append(dst, raw...), nil
	default:
		return nil, ErrUnsupportedType
	}
}

// Decode reads one value of dataType from the front of src, returning
// the value and the number of bytes consumed.
func Decode(dataType DataType, src []byte) (any, int, error) {
	switch dataType {
	case Int:
		if len(src) < 4 {
			return nil, 0, ErrTruncated
		}
		return int32(binary.LittleEndian.Uint32(src[:4])), 4, nil
	case Double:
		if len(src) < 8 {
			return nil, 0, ErrTruncated
		}
		return math.Float64frombits(binary.BigEndian.Uint64(src[:8])), 8, nil
	case Boolean:
		if len(src) < 1 {
			return nil, 0, ErrTruncated
		}
		return src[0] != 0, 1, nil
	case String:
		if len(src) < 4 {
			return nil, 0, ErrTruncated
		}
		length := int(binary.BigEndian.Uint32(src[:4]))
		if len(src) < 4+length {
			return nil, 0, ErrTruncated
		}
		return string(src[4 : 4+length]), 4 + length, nil
	default:
		return nil, 0, ErrUnsupportedType
	}
}
