package cells

import (
	"fmt"

	"girder/yosys2digitaljs/pkg/convert/cerr"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// lowerMux handles $mux: a two-way select between A (sel=0) and B (sel=1).
func lowerMux(ctx Context, name string, cell netlist.Cell) error {
	if err := firstErr(
		checkDir(name, cell, "A", netlist.Input),
		checkDir(name, cell, "B", netlist.Input),
		checkDir(name, cell, "S", netlist.Input),
		checkDir(name, cell, "Y", netlist.Output),
		checkWidth(name, cell, "A", "WIDTH"),
		checkWidth(name, cell, "B", "WIDTH"),
		checkWidth(name, cell, "Y", "WIDTH"),
	); err != nil {
		return err
	}

	a, b, s, y := in(cell, "A"), in(cell, "B"), in(cell, "S"), in(cell, "Y")

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeMux, Attrs: digitaljs.MuxAttrs(y.Width(), s.Width())})
	ctx.TargetNet(a, id, "in0")
	ctx.TargetNet(b, id, "in1")
	ctx.TargetNet(s, id, "sel")

	return ctx.SourceNet(y, id, "out")
}

// lowerPmux handles $pmux: A is the fallback value (in0); the select vector
// is reversed and wired to sel; B is split into N Y-wide slices indexed from
// the high end, wired to in1, in2, …
func lowerPmux(ctx Context, name string, cell netlist.Cell) error {
	if err := firstErr(
		checkDir(name, cell, "A", netlist.Input),
		checkDir(name, cell, "B", netlist.Input),
		checkDir(name, cell, "S", netlist.Input),
		checkDir(name, cell, "Y", netlist.Output),
		checkWidth(name, cell, "A", "WIDTH"),
		checkWidth(name, cell, "Y", "WIDTH"),
		checkWidth(name, cell, "S", "S_WIDTH"),
	); err != nil {
		return err
	}

	a, b, s, y := in(cell, "A"), in(cell, "B"), in(cell, "S"), in(cell, "Y")

	n := s.Width()
	width := y.Width()

	if b.Width() != n*width {
		return cerr.NewStructural(cell.Type, name,
			fmt.Sprintf("port B is %d bit(s) wide, expected %d (WIDTH times S_WIDTH)", b.Width(), n*width))
	}

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeMux1Hot, Attrs: digitaljs.Mux1HotAttrs(width, n)})

	ctx.TargetNet(a, id, "in0")

	for i := uint(0); i < n; i++ {
		// indexed from the high end: the last slice of B is in1.
		chunk := b.Slice((n-1-i)*width, width)
		ctx.TargetNet(chunk, id, fmt.Sprintf("in%d", i+1))
	}

	ctx.TargetNet(s.Reversed(), id, "sel")

	return ctx.SourceNet(y, id, "out")
}
