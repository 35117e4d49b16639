package cells

import (
	"fmt"

	"girder/yosys2digitaljs/pkg/convert/cerr"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

func reverseString(s string) string {
	r := []byte(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}

	return string(r)
}

// lowerLUT handles $lut: a combinational lookup table, lowered to a single
// asynchronous-read-port Memory whose address is the cell's A input and
// whose contents are the LUT parameter's bits reversed.
func lowerLUT(ctx Context, name string, cell netlist.Cell) error {
	if err := firstErr(
		checkDir(name, cell, "A", netlist.Input),
		checkDir(name, cell, "Y", netlist.Output),
		checkWidth(name, cell, "A", "WIDTH"),
	); err != nil {
		return err
	}

	a, y := in(cell, "A"), in(cell, "Y")

	if y.Width() != 1 {
		return cerr.NewStructural(cell.Type, name,
			fmt.Sprintf("port Y is %d bit(s) wide, expected 1", y.Width()))
	}
	abits := a.Width()
	words := uint(1) << abits

	memdata := make([]string, words)

	if p, ok := cell.Parameters.Get("LUT"); ok {
		reversed := reverseString(p.AsBinString(words))
		for i := uint(0); i < words && int(i) < len(reversed); i++ {
			memdata[i] = string(reversed[i])
		}
	}

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{
		Type: digitaljs.TypeMemory,
		Attrs: digitaljs.MemoryAttrs(1, abits, words, 0, memdata,
			[]digitaljs.MemReadPort{{}}, nil),
	})
	ctx.TargetNet(a, id, "rd0addr")

	return ctx.SourceNet(y, id, "rd0data")
}
