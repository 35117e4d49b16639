package cells

import (
	"fmt"
	"strings"

	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/convert/cerr"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// portFlag reads bit i (0 = least significant) out of an n-bit per-port flag
// parameter such as RD_CLK_POLARITY.
func portFlag(cell netlist.Cell, name string, n, i uint) bool {
	p, ok := cell.Parameters.Get(name)
	if !ok {
		return false
	}

	s := p.AsBinString(n)

	return s[n-1-i] == '1'
}

// portMask reads read port i's per-write-port mask out of a
// rdPorts×wrPorts-bit parameter such as RD_TRANSPARENCY_MASK, returning one
// bool per write port (index 0 = write port 0).
func portMask(cell netlist.Cell, name string, rdPorts, wrPorts, i uint) ([]bool, bool) {
	p, ok := cell.Parameters.Get(name)
	if !ok || wrPorts == 0 {
		return nil, false
	}

	full := p.AsBinString(rdPorts * wrPorts)
	chunk := chunkAt(full, rdPorts*wrPorts, wrPorts, i)
	mask := make([]bool, wrPorts)

	for j := uint(0); j < wrPorts; j++ {
		mask[j] = chunk[wrPorts-1-j] == '1'
	}

	return mask, true
}

// portValue reads read port i's width-bit value chunk out of a
// rdPorts×width-bit parameter such as RD_ARST_VALUE.  A chunk containing no
// defined bit at all ('x'/'z' throughout) means "no value" and yields
// ok=false, the way the synthesizer encodes an unused per-port value.
func portValue(cell netlist.Cell, name string, rdPorts, width, i uint) (string, bool) {
	p, ok := cell.Parameters.Get(name)
	if !ok {
		return "", false
	}

	chunk := chunkAt(p.AsBinString(rdPorts*width), rdPorts*width, width, i)
	if !strings.ContainsAny(chunk, "01") {
		return "", false
	}

	return chunk, true
}

// allOnes reports whether every bit of v is the literal constant '1', the
// shape of an enable input the synthesizer tied permanently active.
func allOnes(v bitvec.Vector) bool {
	for _, b := range v {
		if b.Net || b.Literal != '1' {
			return false
		}
	}

	return len(v) > 0
}

// buildMemData slices the INIT parameter into words of width bits each,
// least-significant word first.  A short INIT is padded at the high end with
// '0' or 'x' depending on its own trailing character.
func buildMemData(p netlist.Param, width, words uint) []string {
	total := width * words

	full := p.RawString()
	if p.IsInt() {
		full = p.AsBinString(total)
	}

	if uint(len(full)) < total {
		fill := "0"
		if strings.HasSuffix(full, "x") {
			fill = "x"
		}

		full = strings.Repeat(fill, int(total)-len(full)) + full
	} else if uint(len(full)) > total {
		full = full[uint(len(full))-total:]
	}

	memdata := make([]string, words)
	for w := uint(0); w < words; w++ {
		memdata[w] = chunkAt(full, total, width, w)
	}

	return memdata
}

// lowerMemory handles $mem/$mem_v2: a multi-port RAM/ROM. For each read and
// write port index k, ADDR/DATA/EN/CLK/ARST (and, for $mem_v2, SRST) are
// sliced into per-port segments bound to synthetic port names rd<k>addr,
// rd<k>data, rd<k>clk, rd<k>en, rd<k>arst, rd<k>srst, wr<k>addr, wr<k>data,
// wr<k>en, wr<k>clk.
func lowerMemory(ctx Context, name string, cell netlist.Cell) error {
	isV2 := cell.Type == "$mem_v2"

	bits := paramUint(cell, "WIDTH", 1)
	abits := paramUint(cell, "ABITS", 1)
	words := paramUint(cell, "SIZE", 1<<abits)
	offset := paramUint(cell, "OFFSET", 0)
	rdPorts := paramUint(cell, "RD_PORTS", 0)
	wrPorts := paramUint(cell, "WR_PORTS", 0)

	rdAddr, rdData := in(cell, "RD_ADDR"), in(cell, "RD_DATA")
	rdClk, rdEn := in(cell, "RD_CLK"), in(cell, "RD_EN")
	rdArst, rdSrst := in(cell, "RD_ARST"), in(cell, "RD_SRST")
	wrAddr, wrData, wrEn := in(cell, "WR_ADDR"), in(cell, "WR_DATA"), in(cell, "WR_EN")
	wrClk := in(cell, "WR_CLK")

	for _, chk := range []struct {
		port string
		got  uint
		want uint
	}{
		{"RD_ADDR", rdAddr.Width(), rdPorts * abits},
		{"RD_DATA", rdData.Width(), rdPorts * bits},
		{"WR_ADDR", wrAddr.Width(), wrPorts * abits},
		{"WR_DATA", wrData.Width(), wrPorts * bits},
	} {
		if chk.got != chk.want {
			return cerr.NewStructural(cell.Type, name,
				fmt.Sprintf("port %s is %d bit(s) wide, expected %d", chk.port, chk.got, chk.want))
		}
	}

	var memdata []string
	if p, ok := cell.Parameters.Get("INIT"); ok {
		memdata = buildMemData(p, bits, words)
	}

	rdports := make([]digitaljs.MemReadPort, rdPorts)
	wrports := make([]digitaljs.MemWritePort, wrPorts)

	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{
		Type:  digitaljs.TypeMemory,
		Attrs: digitaljs.MemoryAttrs(bits, abits, words, offset, memdata, rdports, wrports),
	})

	for i := uint(0); i < rdPorts; i++ {
		clkEnabled := portFlag(cell, "RD_CLK_ENABLE", rdPorts, i)
		clkPol := portFlag(cell, "RD_CLK_POLARITY", rdPorts, i)

		rp := digitaljs.MemReadPort{}
		if clkEnabled {
			rp.ClockPolarity = &clkPol
		}

		ctx.TargetNet(rdAddr.Slice(i*abits, abits), id, fmt.Sprintf("rd%daddr", i))

		if err := ctx.SourceNet(rdData.Slice(i*bits, bits), id, fmt.Sprintf("rd%ddata", i)); err != nil {
			return err
		}

		if clkEnabled && rdClk.Width() > i {
			ctx.TargetNet(rdClk.Slice(i, 1), id, fmt.Sprintf("rd%dclk", i))
		}

		if rdEn.Width() > i && !allOnes(rdEn.Slice(i, 1)) {
			active := true
			rp.EnablePolarity = &active

			ctx.TargetNet(rdEn.Slice(i, 1), id, fmt.Sprintf("rd%den", i))
		}

		if isV2 {
			if val, ok := portValue(cell, "RD_ARST_VALUE", rdPorts, bits, i); ok && rdArst.Width() > i {
				active := true
				rp.ArstPolarity = &active
				rp.ArstValue = val

				ctx.TargetNet(rdArst.Slice(i, 1), id, fmt.Sprintf("rd%darst", i))
			}

			if val, ok := portValue(cell, "RD_SRST_VALUE", rdPorts, bits, i); ok && rdSrst.Width() > i {
				active := true
				rp.SrstPolarity = &active
				rp.SrstValue = val

				ctx.TargetNet(rdSrst.Slice(i, 1), id, fmt.Sprintf("rd%dsrst", i))
			}

			if val, ok := portValue(cell, "RD_INIT_VALUE", rdPorts, bits, i); ok {
				rp.InitValue = val
			}

			if mask, ok := portMask(cell, "RD_TRANSPARENCY_MASK", rdPorts, wrPorts, i); ok {
				rp.Transparent = mask
			}

			if mask, ok := portMask(cell, "RD_COLLISION_X_MASK", rdPorts, wrPorts, i); ok {
				rp.Collision = mask
			}
		} else {
			if rdArst.Width() > i {
				ctx.TargetNet(rdArst.Slice(i, 1), id, fmt.Sprintf("rd%darst", i))
			}

			if portFlag(cell, "RD_TRANSPARENT", rdPorts, i) {
				rp.Transparent = true
			}
		}

		rdports[i] = rp
	}

	for i := uint(0); i < wrPorts; i++ {
		clkEnabled := portFlag(cell, "WR_CLK_ENABLE", wrPorts, i)
		clkPol := portFlag(cell, "WR_CLK_POLARITY", wrPorts, i)

		wp := digitaljs.MemWritePort{}
		if clkEnabled {
			wp.ClockPolarity = &clkPol
		}

		ctx.TargetNet(wrAddr.Slice(i*abits, abits), id, fmt.Sprintf("wr%daddr", i))
		ctx.TargetNet(wrData.Slice(i*bits, bits), id, fmt.Sprintf("wr%ddata", i))

		if wrEn.Width() >= (i+1)*bits && !allOnes(wrEn.Slice(i*bits, bits)) {
			active := true
			wp.EnablePolarity = &active

			ctx.TargetNet(wrEn.Slice(i*bits, bits), id, fmt.Sprintf("wr%den", i))
		}

		if clkEnabled && wrClk.Width() > i {
			ctx.TargetNet(wrClk.Slice(i, 1), id, fmt.Sprintf("wr%dclk", i))
		}

		wrports[i] = wp
	}

	return nil
}
