package cells

import (
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// lowerShift handles $shl/$sshl/$shr/$sshr/$shift/$shiftx. $shl and $sshl
// shift the same direction regardless of sign, so both lower to ShiftLeft.
// $shr is a logical (zero-filling) right shift; $sshr is its arithmetic
// (sign-filling) counterpart, distinguished by the out attribute's sign.
// $shift/$shiftx generalize $shr to a signed shift amount (negative B
// reverses direction, resolved by the viewer at simulation time from the
// signed attribute); $shiftx additionally fills out-of-range bits with 'x'
// instead of '0'.
func lowerShift(ctx Context, name string, cell netlist.Cell) error {
	if err := checkBinaryShape(name, cell); err != nil {
		return err
	}

	a, b, y := in(cell, "A"), in(cell, "B"), in(cell, "Y")
	signedA := paramBool(cell, "A_SIGNED")

	// Only the generalized shifts take a signed (possibly negative, hence
	// direction-reversing) shift amount.
	signedB := cell.Type == "$shift" || cell.Type == "$shiftx"

	typ := digitaljs.TypeShiftRight
	signedOut := false
	fillx := false

	switch cell.Type {
	case "$shl":
		typ = digitaljs.TypeShiftLeft
	case "$sshl":
		typ = digitaljs.TypeShiftLeft
		signedOut = signedA
	case "$sshr":
		signedOut = signedA
	case "$shiftx":
		fillx = true
	}

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{
		Type:  typ,
		Attrs: digitaljs.ShiftAttrs(a.Width(), b.Width(), y.Width(), signedB, signedOut, fillx),
	})
	ctx.TargetNet(a, id, "in1")
	ctx.TargetNet(b, id, "in2")

	return ctx.SourceNet(y, id, "out")
}
