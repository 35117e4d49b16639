package cells

import (
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

var arithDeviceType = map[string]string{
	"$add": digitaljs.TypeAddition,
	"$sub": digitaljs.TypeSubtraction,
	"$mul": digitaljs.TypeMultiplication,
	"$div": digitaljs.TypeDivision,
	"$mod": digitaljs.TypeModulo,
	"$pow": digitaljs.TypePower,
}

// lowerBinaryArith handles $add/$sub/$mul/$div/$mod/$pow: a two-input
// arithmetic device whose operand widths and signedness are carried as
// attributes rather than resolved by padding.
func lowerBinaryArith(ctx Context, name string, cell netlist.Cell) error {
	if err := checkBinaryShape(name, cell); err != nil {
		return err
	}

	a, b, y := in(cell, "A"), in(cell, "B"), in(cell, "Y")
	signedA := paramBool(cell, "A_SIGNED")
	signedB := paramBool(cell, "B_SIGNED")

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{
		Type:  arithDeviceType[cell.Type],
		Attrs: digitaljs.BinaryAttrs(a.Width(), b.Width(), y.Width(), signedA, signedB),
	})
	ctx.TargetNet(a, id, "in1")
	ctx.TargetNet(b, id, "in2")

	return ctx.SourceNet(y, id, "out")
}
