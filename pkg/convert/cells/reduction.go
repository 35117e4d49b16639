package cells

import (
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// reduceDeviceType maps a non-degenerate reduction cell to its device tag.
// $reduce_bool asks "is any bit set", the same truth table as an Or-reduce.
// $logic_not asks "is the whole bus zero", the complement of that, so it
// lowers to a Nor-reduce rather than to Not (which $logic_not only becomes
// in the width-1 degenerate case below).
var reduceDeviceType = map[string]string{
	"$reduce_and":  digitaljs.TypeAndReduce,
	"$reduce_or":   digitaljs.TypeOrReduce,
	"$reduce_xor":  digitaljs.TypeXorReduce,
	"$reduce_xnor": digitaljs.TypeXnorReduce,
	"$reduce_bool": digitaljs.TypeOrReduce,
	"$logic_not":   digitaljs.TypeNorReduce,
}

// lowerReduction handles reduce_and/or/xor/xnor/bool and logic_not: a bus
// folded down to one bit, then zero-extended back up to Y's width if Y is
// wider than one bit. A width-1 input is a degenerate reduction of a single
// bit: reduce_xnor and logic_not collapse to Not (both ask "is this bit
// zero"), every other reduction of a single bit is the identity, a
// Repeater.
func lowerReduction(ctx Context, name string, cell netlist.Cell) error {
	if err := firstErr(
		checkDir(name, cell, "A", netlist.Input),
		checkDir(name, cell, "Y", netlist.Output),
		checkWidth(name, cell, "A", "A_WIDTH"),
		checkWidth(name, cell, "Y", "Y_WIDTH"),
	); err != nil {
		return err
	}

	a, y := in(cell, "A"), in(cell, "Y")

	id := ctx.NewDeviceID()

	if a.Width() == 1 {
		typ := digitaljs.TypeRepeater
		if cell.Type == "$reduce_xnor" || cell.Type == "$logic_not" {
			typ = digitaljs.TypeNot
		}

		ctx.AddDevice(id, digitaljs.NewDevice(typ))
		ctx.TargetNet(a, id, "in")

		return extendOutput(ctx, id, "out", 1, y, false)
	}

	ctx.AddDevice(id, digitaljs.NewDevice(reduceDeviceType[cell.Type]))
	ctx.TargetNet(a, id, "in")

	return extendOutput(ctx, id, "out", 1, y, false)
}
