package cells

import (
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// lowerUnary handles $neg/$pos (arithmetic negation/identity, width-matched
// via the device's own signed attribute) and $not (bitwise complement, whose
// input is padded to the output width first).
func lowerUnary(ctx Context, name string, cell netlist.Cell) error {
	if err := firstErr(
		checkDir(name, cell, "A", netlist.Input),
		checkDir(name, cell, "Y", netlist.Output),
		checkWidth(name, cell, "A", "A_WIDTH"),
		checkWidth(name, cell, "Y", "Y_WIDTH"),
	); err != nil {
		return err
	}

	a := in(cell, "A")
	y := in(cell, "Y")
	signed := paramBool(cell, "A_SIGNED")

	id := ctx.NewDeviceID()

	if bitwiseUnaryTypes[cell.Type] {
		padded := padInput(ctx, a, y.Width(), signed)
		ctx.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeNot, Attrs: digitaljs.BitwiseAttrs(y.Width())})
		ctx.TargetNet(padded, id, "in")

		return ctx.SourceNet(y, id, "out")
	}

	typ := digitaljs.TypeNegation
	if cell.Type == "$pos" {
		typ = digitaljs.TypeUnaryPlus
	}

	ctx.AddDevice(id, digitaljs.Device{Type: typ, Attrs: digitaljs.UnaryAttrs(a.Width(), y.Width(), signed)})
	ctx.TargetNet(a, id, "in")

	return ctx.SourceNet(y, id, "out")
}
