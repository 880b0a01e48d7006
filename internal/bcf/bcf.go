// Package bcf implements the BCF compact binary format for Cube values:
// a 12-byte header followed by self-delimiting nodes with variable-width
// child pointers, auto-selected per interior node.
package bcf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/voxelcore/cube/internal/cube"
)

// Magic identifies a BCF file: 'B','C','F','1'.
var Magic = [4]byte{0x42, 0x43, 0x46, 0x31}

// Version is the only BCF format version this package writes and reads.
const Version = 0x01

// HeaderSize is the fixed size, in bytes, of the BCF header.
const HeaderSize = 12

// DefaultRecursionLimit bounds Decode's node-graph depth to guard against
// stack exhaustion from malformed or adversarial input.
const DefaultRecursionLimit = 20

// Node type-byte bit layout: [M|TTT|SSSS].
const (
	modeBit        = 0x80
	typeLeafExt    = 0x0 // 000: extended leaf, material 128..255
	typeOctaLeaves = 0x1 // 001: octa-with-leaves
	typeOctaPtrs   = 0x2 // 010: octa-with-pointers
)

var (
	ErrInvalidMagic       = errors.New("bcf: invalid magic")
	ErrUnsupportedVersion = errors.New("bcf: unsupported version")
	ErrInvalidTypeID      = errors.New("bcf: invalid or reserved node type id")
	ErrInvalidPointerSize = errors.New("bcf: invalid pointer size field")
	ErrTruncatedData      = errors.New("bcf: truncated data")
	ErrInvalidOffset      = errors.New("bcf: invalid node offset")
	ErrRecursionLimit     = errors.New("bcf: recursion limit exceeded")
)

// DecodeError wraps a BCF error kind with the byte offset it was found
// at, for diagnostics.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bcf: %s at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decErr(offset int, kind error) error {
	return &DecodeError{Offset: offset, Err: kind}
}

// Encode serializes c into the BCF binary format.
func Encode(c *cube.Cube) []byte {
	buf := make([]byte, HeaderSize)
	memo := make(map[*cube.Cube]uint32)
	rootOffset := encodeNode(&buf, c, memo)

	copy(buf[0:4], Magic[:])
	buf[4] = Version
	buf[5], buf[6], buf[7] = 0, 0, 0
	binary.LittleEndian.PutUint32(buf[8:12], rootOffset)
	return buf
}

func encodeNode(buf *[]byte, c *cube.Cube, memo map[*cube.Cube]uint32) uint32 {
	if off, ok := memo[c]; ok {
		return off
	}

	var off uint32
	if m, ok := c.IsSolid(); ok {
		off = uint32(len(*buf))
		if m <= 127 {
			*buf = append(*buf, m)
		} else {
			*buf = append(*buf, modeBit|(typeLeafExt<<4))
			*buf = append(*buf, m)
		}
		memo[c] = off
		return off
	}

	kids, _ := c.IsInterior()
	if allLeaves(kids) {
		off = uint32(len(*buf))
		*buf = append(*buf, modeBit|(typeOctaLeaves<<4))
		for _, k := range kids {
			m, _ := k.IsSolid()
			*buf = append(*buf, m)
		}
		memo[c] = off
		return off
	}

	var childOffsets [8]uint32
	for i, k := range kids {
		childOffsets[i] = encodeNode(buf, k, memo)
	}
	widthBytes, sizeCode := pointerWidth(childOffsets)

	off = uint32(len(*buf))
	*buf = append(*buf, modeBit|(typeOctaPtrs<<4)|sizeCode)
	for _, o := range childOffsets {
		*buf = appendLE(*buf, uint64(o), widthBytes)
	}
	memo[c] = off
	return off
}

func allLeaves(kids [8]*cube.Cube) bool {
	for _, k := range kids {
		if _, ok := k.IsSolid(); !ok {
			return false
		}
	}
	return true
}

// pointerWidth picks the smallest pointer width (1, 2 or 4 bytes) able
// to represent every offset, and its BCF size-field encoding. Offsets are
// uint32, so the 8-byte width the format allows is never chosen.
func pointerWidth(offsets [8]uint32) (widthBytes int, sizeCode byte) {
	var max uint32
	for _, o := range offsets {
		if o > max {
			max = o
		}
	}
	switch {
	case max < 1<<8:
		return 1, 0
	case max < 1<<16:
		return 2, 1
	default:
		return 4, 2
	}
}

func appendLE(buf []byte, v uint64, width int) []byte {
	for i := 0; i < width; i++ {
		buf = append(buf, byte(v>>(8*uint(i))))
	}
	return buf
}

// Decode parses BCF-encoded data into a Cube, rejecting node graphs
// deeper than DefaultRecursionLimit.
func Decode(data []byte) (*cube.Cube, error) {
	return DecodeWithLimit(data, DefaultRecursionLimit)
}

// DecodeWithLimit is Decode with a caller-chosen recursion limit.
func DecodeWithLimit(data []byte, limit int) (*cube.Cube, error) {
	if len(data) < HeaderSize {
		return nil, decErr(0, ErrTruncatedData)
	}
	if [4]byte(data[0:4]) != Magic {
		return nil, decErr(0, ErrInvalidMagic)
	}
	if data[4] != Version {
		return nil, decErr(4, ErrUnsupportedVersion)
	}
	rootOffset := binary.LittleEndian.Uint32(data[8:12])

	d := &decoder{data: data, limit: limit}
	return d.node(rootOffset, 0)
}

type decoder struct {
	data  []byte
	limit int
}

func (d *decoder) node(offset uint32, depth int) (*cube.Cube, error) {
	if depth > d.limit {
		return nil, decErr(int(offset), ErrRecursionLimit)
	}
	if int(offset) >= len(d.data) {
		return nil, decErr(int(offset), ErrInvalidOffset)
	}

	typeByte := d.data[offset]
	if typeByte&modeBit == 0 {
		return cube.Solid(typeByte & 0x7F), nil
	}

	ttt := (typeByte >> 4) & 0x7
	ssss := typeByte & 0x0F

	switch ttt {
	case typeLeafExt:
		if int(offset)+1 >= len(d.data) {
			return nil, decErr(int(offset), ErrTruncatedData)
		}
		return cube.Solid(d.data[offset+1]), nil

	case typeOctaLeaves:
		if int(offset)+9 > len(d.data) {
			return nil, decErr(int(offset), ErrTruncatedData)
		}
		var children [8]*cube.Cube
		for i := 0; i < 8; i++ {
			children[i] = cube.Solid(d.data[int(offset)+1+i])
		}
		return cube.Interior(children), nil

	case typeOctaPtrs:
		width, ok := pointerWidthFromCode(ssss)
		if !ok {
			return nil, decErr(int(offset), ErrInvalidPointerSize)
		}
		start := int(offset) + 1
		end := start + 8*width
		if end > len(d.data) {
			return nil, decErr(int(offset), ErrTruncatedData)
		}
		var children [8]*cube.Cube
		for i := 0; i < 8; i++ {
			raw := d.data[start+i*width : start+(i+1)*width]
			childOffset := readLE(raw)
			c, err := d.node(uint32(childOffset), depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		return cube.Interior(children), nil

	default:
		return nil, decErr(int(offset), ErrInvalidTypeID)
	}
}

func pointerWidthFromCode(code byte) (int, bool) {
	switch code {
	case 0:
		return 1, true
	case 1:
		return 2, true
	case 2:
		return 4, true
	case 3:
		return 8, true
	default:
		return 0, false
	}
}

func readLE(b []byte) uint64 {
	var v uint64
	for i, x := range b {
		v |= uint64(x) << (8 * uint(i))
	}
	return v
}
