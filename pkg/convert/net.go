package convert

import (
	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// net is the converter's internal record for one bit-vector: its (at most
// one) source, its ordered list of targets, and the display metadata
// harvested for it in sub-phase (a).
type net struct {
	bits            bitvec.Vector
	source          *digitaljs.PortRef
	targets         []digitaljs.PortRef
	name            string
	sourcePositions []netlist.SourcePosition
}

// provEntry is one bit provenance table row: the device port that produces
// this bit id as one of its primary outputs, and the bit's index within
// that port.
type provEntry struct {
	devID string
	port  string
	index int
}
