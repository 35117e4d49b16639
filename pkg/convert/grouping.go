package convert

import (
	"fmt"

	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/digitaljs"
)

// run is one maximal contiguous span of a bit-vector whose bits are either
// all literal constants, or all primary outputs of the same device port at
// consecutive provenance indices.
type run struct {
	start, count uint
	isConst      bool
	// driven is only meaningful when !isConst: it distinguishes a run that
	// traces to a single device port (sliceable) from a lone bit with no
	// provenance entry at all (undriven).
	driven    bool
	devID     string
	port      string
	baseIndex int
}

func computeRuns(bits bitvec.Vector, provenance map[int]provEntry) []run {
	var runs []run

	i := 0
	n := len(bits)

	for i < n {
		b := bits[i]

		if !b.Net {
			j := i + 1
			for j < n && !bits[j].Net {
				j++
			}

			runs = append(runs, run{start: uint(i), count: uint(j - i), isConst: true})
			i = j

			continue
		}

		pe, ok := provenance[b.Id]
		if !ok {
			runs = append(runs, run{start: uint(i), count: 1})
			i++

			continue
		}

		j := i + 1
		lastIdx := pe.index

		for j < n {
			nb := bits[j]
			if !nb.Net {
				break
			}

			npe, ok2 := provenance[nb.Id]
			if !ok2 || npe.devID != pe.devID || npe.port != pe.port || npe.index != lastIdx+1 {
				break
			}

			lastIdx = npe.index
			j++
		}

		runs = append(runs, run{
			start: uint(i), count: uint(j - i), driven: true,
			devID: pe.devID, port: pe.port, baseIndex: pe.index,
		})
		i = j
	}

	return runs
}

func allZero(v bitvec.Vector) bool {
	for _, b := range v {
		if b.Net || b.Literal != '0' {
			return false
		}
	}

	return true
}

// resolveNets is the post-lowering resolution pass: every net still without
// a source is grouped, extended or sliced until it has one, or is reported
// as undriven. New nets created along the way (a BusGroup's run
// targets, a ZeroExtend's prefix) are appended to b.netOrder and are picked
// up by the same loop, so a multi-level recursion unwinds as repeated
// single-run resolutions rather than explicit recursive calls.
func (b *builder) resolveNets() error {
	for i := 0; i < len(b.netOrder); i++ {
		bits := b.netOrder[i]

		n, _ := b.nets.Get(bits)
		if n.source != nil {
			continue
		}

		if bits.AllConst() {
			id := b.NewDeviceID()
			b.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeConstant, Attrs: digitaljs.ConstantAttrs(bits.ConstString())})

			if err := b.sourceGlue(bits, id, "out"); err != nil {
				return err
			}

			continue
		}

		runs := computeRuns(bits, b.provenance)

		if len(runs) > 1 {
			if err := b.resolveGrouped(bits, runs); err != nil {
				return err
			}

			continue
		}

		r := runs[0]

		if !r.driven {
			b.warn("undriven net (%d bit(s)), dropped", len(bits))
			continue
		}

		parent, ok := b.portBits[portKey(r.devID, r.port)]
		if !ok {
			b.warn("undriven net (%d bit(s)), dropped", len(bits))
			continue
		}

		id := b.NewDeviceID()
		b.AddDevice(id, digitaljs.Device{
			Type: digitaljs.TypeBusSlice,
			Attrs: digitaljs.BusSliceAttrs(digitaljs.SliceSpec{
				First: uint(r.baseIndex), Count: r.count, Total: uint(len(parent)),
			}),
		})

		if err := b.sourceGlue(bits, id, "out"); err != nil {
			return err
		}

		b.TargetNet(parent, id, "in")
	}

	return nil
}

func (b *builder) resolveGrouped(bits bitvec.Vector, runs []run) error {
	last := runs[len(runs)-1]

	if last.isConst && allZero(bits[last.start:last.start+last.count]) {
		prefixLen := last.start
		prefix := bits[:prefixLen]

		id := b.NewDeviceID()
		b.AddDevice(id, digitaljs.Device{
			Type:  digitaljs.TypeZeroExtend,
			Attrs: digitaljs.ExtendAttrs(prefixLen, uint(len(bits))),
		})

		if err := b.sourceGlue(bits, id, "out"); err != nil {
			return err
		}

		b.TargetNet(prefix, id, "in")

		return nil
	}

	groups := make([]uint, len(runs))
	id := b.NewDeviceID()

	for k, r := range runs {
		groups[k] = r.count
	}

	b.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeBusGroup, Attrs: digitaljs.BusGroupAttrs(groups)})

	if err := b.sourceGlue(bits, id, "out"); err != nil {
		return err
	}

	for k, r := range runs {
		sub := bits[r.start : r.start+r.count]
		b.TargetNet(sub, id, fmt.Sprintf("in%d", k))
	}

	return nil
}
