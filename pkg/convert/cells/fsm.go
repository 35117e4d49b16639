package cells

import (
	"strconv"
	"strings"

	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// chunkAt extracts the chunkWidth-wide substring occupying slot index (slot 0
// at the least-significant end) out of an MSB-first binary string of the
// given total width, the packing memory/LUT/FSM parameters use.
func chunkAt(full string, totalWidth, chunkWidth, index uint) string {
	start := totalWidth - (index+1)*chunkWidth
	end := totalWidth - index*chunkWidth

	return full[start:end]
}

// binToInt parses an MSB-first binary string as a plain integer, mapping any
// don't-care character to 0 so a malformed state index degrades gracefully
// rather than failing the whole conversion.
func binToInt(s string) int {
	clean := strings.Map(func(r rune) rune {
		if r == '0' || r == '1' {
			return r
		}

		return '0'
	}, s)

	v, _ := strconv.ParseInt(clean, 2, 64)

	return int(v)
}

// lowerFSM handles $fsm: yosys' explicit finite-state-machine cell. Its
// TRANS_TABLE parameter is a flat binary string of TRANS_NUM records, each
// {state_in, ctrl_in, state_out, ctrl_out} with the two state fields encoded
// as plain STATE_NUM_LOG2-bit integers.
func lowerFSM(ctx Context, name string, cell netlist.Cell) error {
	if err := firstErr(
		checkDir(name, cell, "CTRL_IN", netlist.Input),
		checkDir(name, cell, "CTRL_OUT", netlist.Output),
		checkWidth(name, cell, "CTRL_IN", "CTRL_IN_WIDTH"),
		checkWidth(name, cell, "CTRL_OUT", "CTRL_OUT_WIDTH"),
	); err != nil {
		return err
	}

	clkPol := paramBool(cell, "CLK_POLARITY")
	arstPol := paramBool(cell, "ARST_POLARITY")

	ctrlIn, ctrlOut := in(cell, "CTRL_IN"), in(cell, "CTRL_OUT")

	stateNum := paramUint(cell, "STATE_NUM", 1)
	stateLog2 := paramUint(cell, "STATE_NUM_LOG2", 1)
	transNum := paramUint(cell, "TRANS_NUM", 0)
	ctrlInW := paramUint(cell, "CTRL_IN_WIDTH", ctrlIn.Width())
	ctrlOutW := paramUint(cell, "CTRL_OUT_WIDTH", ctrlOut.Width())

	initState := 0
	if p, ok := cell.Parameters.Get("STATE_RST"); ok {
		initState = binToInt(p.AsBinString(stateLog2))
	}

	trans := make([]digitaljs.Transition, 0, transNum)

	if p, ok := cell.Parameters.Get("TRANS_TABLE"); ok {
		entryWidth := stateLog2*2 + ctrlInW + ctrlOutW
		full := p.AsBinString(entryWidth * transNum)

		for i := uint(0); i < transNum; i++ {
			entry := chunkAt(full, entryWidth*transNum, entryWidth, i)

			off := uint(0)
			stateInPat := entry[off : off+stateLog2]
			off += stateLog2
			ctrlInPat := entry[off : off+ctrlInW]
			off += ctrlInW
			stateOutPat := entry[off : off+stateLog2]
			off += stateLog2
			ctrlOutPat := entry[off : off+ctrlOutW]

			trans = append(trans, digitaljs.Transition{
				StateIn:  binToInt(stateInPat),
				CtrlIn:   strings.ReplaceAll(ctrlInPat, "-", "x"),
				StateOut: binToInt(stateOutPat),
				CtrlOut:  strings.ReplaceAll(ctrlOutPat, "-", "x"),
			})
		}
	}

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{
		Type:  digitaljs.TypeFSM,
		Attrs: digitaljs.FSMAttrs(clkPol, arstPol, name, ctrlInW, ctrlOutW, int(stateNum), initState, trans),
	})

	if cell.Connections.Has("CLK") {
		ctx.TargetNet(in(cell, "CLK"), id, "clk")
	}

	if cell.Connections.Has("ARST") {
		ctx.TargetNet(in(cell, "ARST"), id, "arst")
	}

	ctx.TargetNet(ctrlIn, id, "in")

	return ctx.SourceNet(ctrlOut, id, "out")
}
