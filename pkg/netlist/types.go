// Package netlist defines the input intermediate representation: the parsed
// shape of a synthesizer's JSON netlist.  Decoding is handled in json.go;
// this file carries the types only.
package netlist

import (
	"strconv"
	"strings"

	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/util/ordered"
)

// Direction is a port or cell-port's signal direction.
type Direction string

// The three directions a port or cell connection may declare.
const (
	Input  Direction = "input"
	Output Direction = "output"
	InOut  Direction = "inout"
)

// Valid reports whether d is one of the three recognised directions.
func (d Direction) Valid() bool {
	return d == Input || d == Output || d == InOut
}

// Port is a module-level port: its direction and the bit-vector carrying its
// connection to the surrounding design (or, at the top, to the outside
// world).
type Port struct {
	Direction Direction      `json:"direction"`
	Bits      bitvec.Vector  `json:"bits"`
}

// Param is a cell parameter or attribute value.  The synthesizer encodes
// these as either a JSON number or a bit-string; the helpers below
// normalize either form to an integer or to an MSB-first binary string of a
// required width.
type Param struct {
	hasInt  bool
	intVal  int64
	strVal  string
}

// IntParam constructs a parameter from an integer (used by tests).
func IntParam(v int64) Param {
	return Param{hasInt: true, intVal: v}
}

// StrParam constructs a parameter from a raw bit-string (used by tests).
func StrParam(v string) Param {
	return Param{strVal: v}
}

// IsInt reports whether this parameter arrived as a JSON integer.
func (p Param) IsInt() bool {
	return p.hasInt
}

// AsUint returns the parameter's value as a non-negative integer.  If the
// parameter arrived as a bit-string containing only '0'/'1', it is parsed as
// unsigned binary; a string containing 'x'/'z' cannot be represented and
// yields ok=false.
func (p Param) AsUint() (uint, bool) {
	if p.hasInt {
		if p.intVal < 0 {
			return 0, false
		}

		return uint(p.intVal), true
	}

	if p.strVal == "" {
		return 0, false
	}

	v, err := strconv.ParseUint(p.strVal, 2, 64)
	if err != nil {
		return 0, false
	}

	return uint(v), true
}

// AsBinString normalizes this parameter to an MSB-first binary string of
// exactly width bits, preserving 'x'/'z' characters that a pure integer
// conversion would lose.  Integers are converted to binary and zero-padded
// on the left; strings are left-padded with their own leading character
// (extending the sign/fill bit) or truncated from the left if too long.
func (p Param) AsBinString(width uint) string {
	if p.hasInt {
		s := strconv.FormatUint(uint64(p.intVal), 2)
		if uint(len(s)) >= width {
			return s[uint(len(s))-width:]
		}

		return strings.Repeat("0", int(width)-len(s)) + s
	}

	s := p.strVal
	if s == "" {
		return strings.Repeat("0", int(width))
	}

	if uint(len(s)) >= width {
		return s[uint(len(s))-width:]
	}

	fill := s[0:1]

	return strings.Repeat(fill, int(width)-len(s)) + s
}

// RawString returns the parameter's bit-string form verbatim (only valid when
// !IsInt()).
func (p Param) RawString() string {
	return p.strVal
}

// Cell is a single instantiated primitive or sub-module within a module.
type Cell struct {
	Type            string
	Parameters      *ordered.Map[string, Param]
	Attributes      *ordered.Map[string, Param]
	PortDirections  map[string]Direction
	Connections     *ordered.Map[string, bitvec.Vector]
}

// NetName is a symbolic name attached to a bit-vector, as declared in the
// module's "netnames" object.
type NetName struct {
	Hidden     bool
	Bits       bitvec.Vector
	Attributes *ordered.Map[string, Param]
}

// SourcePositions parses this net name's "src" attribute, if present, into a
// list of source positions.
func (n NetName) SourcePositions() []SourcePosition {
	attr, ok := n.Attributes.Get("src")
	if !ok {
		return nil
	}

	return ParseSourcePositions(attr.RawString())
}

// InitValue returns this net name's "init" attribute, if present.
func (n NetName) InitValue() (Param, bool) {
	return n.Attributes.Get("init")
}

// Module is one synthesizer-emitted module: its ports, cells and net names.
type Module struct {
	Ports    *ordered.Map[string, Port]
	Cells    *ordered.Map[string, Cell]
	NetNames *ordered.Map[string, NetName]
}

// Netlist is the top-level parsed synthesizer output: a named collection of
// modules.
type Netlist struct {
	Modules *ordered.Map[string, Module]
}
