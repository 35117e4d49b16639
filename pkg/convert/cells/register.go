package cells

import (
	"fmt"

	"girder/yosys2digitaljs/pkg/convert/cerr"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

func boolParamPtr(cell netlist.Cell, name string, present bool) *bool {
	if !present {
		return nil
	}

	v := paramBool(cell, name)
	return &v
}

// lowerRegister handles the fourteen flip-flop/latch variants ($dff through
// $sr): every variant lowers to a single Dff device whose Polarity records
// which control ports this particular cell declares.
func lowerRegister(ctx Context, name string, cell netlist.Cell) error {
	if err := firstErr(
		checkDir(name, cell, "D", netlist.Input),
		checkDir(name, cell, "Q", netlist.Output),
		checkWidth(name, cell, "Q", "WIDTH"),
	); err != nil {
		return err
	}

	// D is absent on $sr and AD exists only on the aload variants, so their
	// widths are checked only when the port is connected.
	for _, data := range []string{"D", "AD"} {
		if cell.Connections.Has(data) {
			if err := checkWidth(name, cell, data, "WIDTH"); err != nil {
				return err
			}
		}
	}

	for _, ctl := range []string{"CLK", "EN", "ARST", "SRST", "ALOAD"} {
		if cell.Connections.Has(ctl) && in(cell, ctl).Width() != 1 {
			return cerr.NewStructural(cell.Type, name,
				fmt.Sprintf("control port %s is %d bit(s) wide, expected 1", ctl, in(cell, ctl).Width()))
		}
	}

	hasClk := cell.Connections.Has("CLK")
	hasEn := cell.Connections.Has("EN")
	hasArst := cell.Connections.Has("ARST")
	hasSrst := cell.Connections.Has("SRST")
	hasSet := cell.Connections.Has("SET")
	hasClr := cell.Connections.Has("CLR")
	hasAload := cell.Connections.Has("ALOAD")

	pol := digitaljs.Polarity{
		Clock:  boolParamPtr(cell, "CLK_POLARITY", hasClk),
		Enable: boolParamPtr(cell, "EN_POLARITY", hasEn),
		Arst:   boolParamPtr(cell, "ARST_POLARITY", hasArst),
		Srst:   boolParamPtr(cell, "SRST_POLARITY", hasSrst),
		Set:    boolParamPtr(cell, "SET_POLARITY", hasSet),
		Clr:    boolParamPtr(cell, "CLR_POLARITY", hasClr),
		Aload:  boolParamPtr(cell, "ALOAD_POLARITY", hasAload),
	}

	y := in(cell, "Q")
	bits := y.Width()

	arstValue := ""
	if hasArst {
		if p, ok := cell.Parameters.Get("ARST_VALUE"); ok {
			arstValue = p.AsBinString(bits)
		}
	}

	srstValue := ""
	if hasSrst {
		if p, ok := cell.Parameters.Get("SRST_VALUE"); ok {
			srstValue = p.AsBinString(bits)
		}
	}

	enableSrst := cell.Type == "$sdffce"
	noData := cell.Type == "$sr"

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{
		Type:  digitaljs.TypeDff,
		Attrs: digitaljs.DffAttrs(bits, pol, arstValue, srstValue, enableSrst, noData),
	})

	if hasClk {
		ctx.TargetNet(in(cell, "CLK"), id, "clk")
	}

	if hasEn {
		ctx.TargetNet(in(cell, "EN"), id, "en")
	}

	if hasArst {
		ctx.TargetNet(in(cell, "ARST"), id, "arst")
	}

	if hasSrst {
		ctx.TargetNet(in(cell, "SRST"), id, "srst")
	}

	if hasSet {
		ctx.TargetNet(in(cell, "SET"), id, "set")
	}

	if hasClr {
		ctx.TargetNet(in(cell, "CLR"), id, "clr")
	}

	if hasAload {
		ctx.TargetNet(in(cell, "ALOAD"), id, "aload")
		ctx.TargetNet(in(cell, "AD"), id, "ain")
	}

	if !noData {
		if cell.Connections.Has("D") {
			ctx.TargetNet(in(cell, "D"), id, "in")
		}
	}

	return ctx.SourceNet(y, id, "out")
}
