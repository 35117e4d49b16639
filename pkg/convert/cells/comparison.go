package cells

import (
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

var comparisonDeviceType = map[string]string{
	"$eq":  digitaljs.TypeEq,
	"$ne":  digitaljs.TypeNe,
	"$eqx": digitaljs.TypeEq,
	"$nex": digitaljs.TypeNe,
	"$lt":  digitaljs.TypeLt,
	"$le":  digitaljs.TypeLe,
	"$gt":  digitaljs.TypeGt,
	"$ge":  digitaljs.TypeGe,
}

// lowerComparison handles $eq/$ne/$lt/$le/$gt/$ge (and their case-equality
// variants $eqx/$nex, which the viewer has no distinct device for and so
// are treated as ordinary equality): a one-bit result, zero-extended up to
// Y's width if wider.
func lowerComparison(ctx Context, name string, cell netlist.Cell) error {
	if err := checkBinaryShape(name, cell); err != nil {
		return err
	}

	a, b, y := in(cell, "A"), in(cell, "B"), in(cell, "Y")
	signedA := paramBool(cell, "A_SIGNED")
	signedB := paramBool(cell, "B_SIGNED")

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{
		Type:  comparisonDeviceType[cell.Type],
		Attrs: digitaljs.ComparisonAttrs(a.Width(), b.Width(), signedA, signedB),
	})
	ctx.TargetNet(a, id, "in1")
	ctx.TargetNet(b, id, "in2")

	return extendOutput(ctx, id, "out", 1, y, false)
}
