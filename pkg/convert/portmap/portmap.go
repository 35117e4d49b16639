// Package portmap implements the port-map builder: a mapping from a cell's
// synthesizer-level port names to the display device's port names.
package portmap

import "girder/yosys2digitaljs/pkg/netlist"

// Table maps cell-type strings to their synthesizer→display port renaming.
type Table struct {
	byType map[string]map[string]string
}

// Lookup returns the port renaming for a cell type, and whether one exists.
// Cells with no entry here (memories, lookup tables, the priority mux) have
// bespoke wiring routines in pkg/convert/cells instead.
func (t *Table) Lookup(cellType string) (map[string]string, bool) {
	if t == nil {
		return nil, false
	}

	m, ok := t.byType[cellType]

	return m, ok
}

var unaryTypes = []string{
	"$neg", "$pos", "$not",
	"$reduce_and", "$reduce_or", "$reduce_xor", "$reduce_xnor", "$reduce_bool",
	"$logic_not",
}

var unaryMap = map[string]string{"A": "in", "Y": "out"}

var binaryTypes = []string{
	"$and", "$or", "$xor", "$xnor",
	"$add", "$sub", "$mul", "$div", "$mod", "$pow",
	"$eq", "$ne", "$lt", "$le", "$gt", "$ge", "$eqx", "$nex",
	"$shl", "$shr", "$sshl", "$sshr", "$shift", "$shiftx",
	"$logic_and", "$logic_or",
}

var binaryMap = map[string]string{"A": "in1", "B": "in2", "Y": "out"}

var muxMap = map[string]string{"A": "in0", "B": "in1", "S": "sel", "Y": "out"}

var registerTypes = []string{
	"$dff", "$dffe", "$adff", "$adffe", "$sdff", "$sdffe", "$sdffce",
	"$dlatch", "$adlatch", "$dffsr", "$dffsre", "$aldff", "$aldffe", "$sr",
}

var registerMap = map[string]string{
	"CLK": "clk", "D": "in", "Q": "out",
	"EN": "en", "ARST": "arst", "SRST": "srst",
	"SET": "set", "CLR": "clr", "ALOAD": "aload", "AD": "ain",
}

var fsmMap = map[string]string{
	"ARST": "arst", "CLK": "clk", "CTRL_IN": "in", "CTRL_OUT": "out",
}

// Build seeds the fixed table for every primitive cell type the core
// recognises, then adds an identity mapping for every user-defined module.
func Build(nl *netlist.Netlist) *Table {
	t := &Table{byType: make(map[string]map[string]string)}

	for _, ty := range unaryTypes {
		t.byType[ty] = unaryMap
	}

	for _, ty := range binaryTypes {
		t.byType[ty] = binaryMap
	}

	t.byType["$mux"] = muxMap

	for _, ty := range registerTypes {
		t.byType[ty] = registerMap
	}

	t.byType["$fsm"] = fsmMap

	for _, modName := range nl.Modules.Keys() {
		mod, _ := nl.Modules.Get(modName)
		identity := make(map[string]string, mod.Ports.Len())

		for _, portName := range mod.Ports.Keys() {
			identity[portName] = portName
		}

		t.byType[modName] = identity
	}

	return t
}
