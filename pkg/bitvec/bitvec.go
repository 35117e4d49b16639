// Package bitvec implements the bit-level value representation shared by the
// input netlist and the converter: a bit is either a literal {0,1,x,z} or an
// opaque integer naming a net, and a bit-vector is an ordered sequence of
// bits whose identity is determined by value, not by reference.
package bitvec

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// Bit is a single wire value.  Literal carries one of '0', '1', 'x', 'z' when
// Net is false; otherwise Id identifies the net this bit belongs to.
type Bit struct {
	Net     bool
	Literal byte
	Id      int
}

// Lit constructs a literal bit.
func Lit(c byte) Bit {
	return Bit{Literal: c}
}

// NetBit constructs a bit naming net id.
func NetBit(id int) Bit {
	return Bit{Net: true, Id: id}
}

// IsConst reports whether this bit is a literal constant character.
func (b Bit) IsConst() bool {
	return !b.Net
}

// String renders the bit the way yosys JSON does: the literal character, or
// the decimal net id.
func (b Bit) String() string {
	if b.Net {
		return fmt.Sprintf("%d", b.Id)
	}

	return string(b.Literal)
}

// UnmarshalJSON accepts either a JSON number (a net id) or a single-character
// JSON string (a literal), matching the mixed-type arrays the synthesizer
// emits for a cell's bit connections.
func (b *Bit) UnmarshalJSON(data []byte) error {
	var asInt int
	if err := json.Unmarshal(data, &asInt); err == nil {
		*b = NetBit(asInt)
		return nil
	}

	var asStr string
	if err := json.Unmarshal(data, &asStr); err != nil {
		return fmt.Errorf("bitvec: invalid bit %s", string(data))
	}

	if len(asStr) != 1 {
		return fmt.Errorf("bitvec: invalid bit literal %q", asStr)
	}

	switch asStr[0] {
	case '0', '1', 'x', 'z':
		*b = Lit(asStr[0])
	default:
		return fmt.Errorf("bitvec: invalid bit literal %q", asStr)
	}

	return nil
}

// MarshalJSON renders a literal bit as its one-character string and a net bit
// as a JSON number, mirroring the synthesizer's own encoding.
func (b Bit) MarshalJSON() ([]byte, error) {
	if b.Net {
		return json.Marshal(b.Id)
	}

	return json.Marshal(string(b.Literal))
}

// Vector is an ordered sequence of bits.  Its value, not its identity,
// determines net equality: two vectors with equal bits in equal order are the
// same net.
type Vector []Bit

// Equals performs element-wise comparison.
func (v Vector) Equals(o Vector) bool {
	if len(v) != len(o) {
		return false
	}

	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}

	return true
}

// Hash computes an order-sensitive FNV-1a hash over the vector's bits,
// suitable for use as the key of a util.HashMap/HashSet.
func (v Vector) Hash() uint64 {
	h := fnv.New64a()

	for _, b := range v {
		if b.Net {
			_, _ = h.Write([]byte{1, byte(b.Id), byte(b.Id >> 8), byte(b.Id >> 16), byte(b.Id >> 24)})
		} else {
			_, _ = h.Write([]byte{0, b.Literal})
		}
	}

	return h.Sum64()
}

// AllConst reports whether every bit in the vector is a literal constant.
func (v Vector) AllConst() bool {
	for _, b := range v {
		if b.Net {
			return false
		}
	}

	return true
}

// ConstString renders an all-constant vector as an MSB-first string of its
// literal characters, as used for Constant device payloads.
func (v Vector) ConstString() string {
	buf := make([]byte, len(v))

	for i, b := range v {
		buf[len(v)-1-i] = b.Literal
	}

	return string(buf)
}

// Width returns the number of bits in the vector.
func (v Vector) Width() uint {
	return uint(len(v))
}

// Reversed returns a copy of v with bit order reversed.
func (v Vector) Reversed() Vector {
	out := make(Vector, len(v))
	for i, b := range v {
		out[len(v)-1-i] = b
	}

	return out
}

// Slice returns the sub-vector [first, first+count).
func (v Vector) Slice(first, count uint) Vector {
	return v[first : first+count]
}
