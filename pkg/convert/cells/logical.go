package cells

import (
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// lowerLogicalAndOr handles $logic_and/$logic_or: each operand is first
// folded down to its truth value through an inserted OrReduce,
// then combined by a one-bit And/Or gate whose result is zero-extended back
// up to Y's width if wider.
func lowerLogicalAndOr(ctx Context, name string, cell netlist.Cell) error {
	if err := checkBinaryShape(name, cell); err != nil {
		return err
	}

	a, b, y := in(cell, "A"), in(cell, "B"), in(cell, "Y")

	boolA := reduceToBool(ctx, a)
	boolB := reduceToBool(ctx, b)

	typ := digitaljs.TypeAnd
	if cell.Type == "$logic_or" {
		typ = digitaljs.TypeOr
	}

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{Type: typ, Attrs: digitaljs.BitwiseAttrs(1)})
	ctx.TargetNet(boolA, id, "in1")
	ctx.TargetNet(boolB, id, "in2")

	return extendOutput(ctx, id, "out", 1, y, false)
}
