package cells

import (
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

var bitwiseDeviceType = map[string]string{
	"$and":  digitaljs.TypeAnd,
	"$or":   digitaljs.TypeOr,
	"$xor":  digitaljs.TypeXor,
	"$xnor": digitaljs.TypeXnor,
}

// lowerBitwiseBinary handles $and/$or/$xor/$xnor: both operands are padded
// to the output width (sign- or zero-extending per their own *_SIGNED
// parameter) before the gate.
func lowerBitwiseBinary(ctx Context, name string, cell netlist.Cell) error {
	if err := checkBinaryShape(name, cell); err != nil {
		return err
	}

	a, b, y := in(cell, "A"), in(cell, "B"), in(cell, "Y")
	signedA := paramBool(cell, "A_SIGNED")
	signedB := paramBool(cell, "B_SIGNED")

	id := ctx.NewDeviceID()
	paddedA := padInput(ctx, a, y.Width(), signedA)
	paddedB := padInput(ctx, b, y.Width(), signedB)

	ctx.AddDevice(id, digitaljs.Device{Type: bitwiseDeviceType[cell.Type], Attrs: digitaljs.BitwiseAttrs(y.Width())})
	ctx.TargetNet(paddedA, id, "in1")
	ctx.TargetNet(paddedB, id, "in2")

	return ctx.SourceNet(y, id, "out")
}
