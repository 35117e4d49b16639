// Package convert implements the module converter, the heart of the
// pipeline: for one synthesizer module, it produces a device/connector
// graph by harvesting net names, materializing I/O devices, lowering cells,
// grouping/extending/slicing undriven nets, and emitting connectors.
package convert

import (
	"fmt"

	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/convert/cells"
	"girder/yosys2digitaljs/pkg/convert/cerr"
	"girder/yosys2digitaljs/pkg/convert/portmap"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// Result bundles a converted module with any non-fatal diagnostics raised
// while building it (undriven nets that were dropped).
type Result struct {
	Module   *digitaljs.Module
	Warnings []string
}

// Module converts one named module of nl into a device/connector graph.
func Module(nl *netlist.Netlist, modName string, pm *portmap.Table) (Result, error) {
	mod, ok := nl.Modules.Get(modName)
	if !ok {
		return Result{}, fmt.Errorf("convert: no such module %q", modName)
	}

	b := newBuilder()

	harvestNetNames(b, mod)

	if err := materializeIO(b, mod); err != nil {
		return Result{}, err
	}

	if err := lowerCells(b, mod, pm); err != nil {
		return Result{}, err
	}

	if err := b.resolveNets(); err != nil {
		return Result{}, err
	}

	emitConnectors(b)

	return Result{Module: b.mod, Warnings: b.warnings}, nil
}

// harvestNetNames walks the module's netnames: the first non-hidden symbolic
// name seen for a bit-vector becomes its display name, and every name's
// source positions (hidden or not) are accumulated.
func harvestNetNames(b *builder, mod netlist.Module) {
	for _, nm := range mod.NetNames.Keys() {
		nn, _ := mod.NetNames.Get(nm)

		n := b.getOrCreateNet(nn.Bits)

		if !nn.Hidden && n.name == "" {
			n.name = nm
		}

		n.sourcePositions = append(n.sourcePositions, nn.SourcePositions()...)
	}
}

// materializeIO creates the I/O devices: every port becomes an Input or
// Output device; inputs are primary sources, outputs are targets. An inout
// port is treated as an input, since the viewer has no bidirectional port
// device.
func materializeIO(b *builder, mod netlist.Module) error {
	order := 0

	for _, portName := range mod.Ports.Keys() {
		port, _ := mod.Ports.Get(portName)

		id := b.NewDeviceID()

		switch port.Direction {
		case netlist.Output:
			b.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeOutput, Attrs: digitaljs.IOAttrs(portName, order, port.Bits.Width())})
			b.TargetNet(port.Bits, id, "in")
		default:
			b.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeInput, Attrs: digitaljs.IOAttrs(portName, order, port.Bits.Width())})

			if err := b.SourceNet(port.Bits, id, "out"); err != nil {
				return err
			}
		}

		order++
	}

	return nil
}

// lowerCells dispatches every cell, in declaration order, to its per-class
// lowering routine, followed by the register initial-value post-processing
// step.  A cell type no class recognises and the port-map table has no
// entry for (in particular, not a user-defined module, which always has an
// identity entry) is fatal.
func lowerCells(b *builder, mod netlist.Module, pm *portmap.Table) error {
	for _, cellName := range mod.Cells.Keys() {
		cell, _ := mod.Cells.Get(cellName)

		handled, err := cells.Lower(b, cellName, cell, pm)
		if err != nil {
			return err
		}

		if !handled {
			return cerr.NewUnknownCell(cell.Type)
		}

		if cells.IsRegisterType(cell.Type) {
			applyRegisterInit(b, mod, cell)
		}
	}

	return nil
}

// applyRegisterInit copies a register's initial value: if its Q vector
// carries a symbolic name with an init attribute, copy it into the device's
// initial field, decoded as a binary string of the device's width.
func applyRegisterInit(b *builder, mod netlist.Module, cell netlist.Cell) {
	q, ok := cell.Connections.Get("Q")
	if !ok || len(b.mod.DeviceOrder) == 0 {
		return
	}

	nn, ok := findNetNameFor(mod, q)
	if !ok {
		return
	}

	initParam, ok := nn.InitValue()
	if !ok {
		return
	}

	lastID := b.mod.DeviceOrder[len(b.mod.DeviceOrder)-1]
	dev := b.mod.Devices[lastID]
	dev.Attrs["initial"] = initParam.AsBinString(q.Width())
	b.mod.Devices[lastID] = dev
}

func findNetNameFor(mod netlist.Module, bits bitvec.Vector) (netlist.NetName, bool) {
	for _, nm := range mod.NetNames.Keys() {
		nn, _ := mod.NetNames.Get(nm)
		if nn.Bits.Equals(bits) {
			return nn, true
		}
	}

	return netlist.NetName{}, false
}

// emitConnectors writes the output connector list: for every resolved net, in
// net-iteration order, one connector per target in insertion order. A
// second and later connector sourced from a Constant gets its own fresh
// Constant device, so the diagram never shows one constant fanning out to
// several unrelated uses.
func emitConnectors(b *builder) {
	for _, bits := range b.netOrder {
		n, _ := b.nets.Get(bits)
		if n.source == nil {
			continue
		}

		for i, tgt := range n.targets {
			from := *n.source

			if i > 0 && b.mod.Devices[n.source.ID].Type == digitaljs.TypeConstant {
				from = b.replicateConstant(n.source.ID)
			}

			b.mod.AddConnector(digitaljs.Connector{
				From:            from,
				To:              tgt,
				Name:            n.name,
				SourcePositions: n.sourcePositions,
			})
		}
	}
}

func (b *builder) replicateConstant(origID string) digitaljs.PortRef {
	orig := b.mod.Devices[origID]

	id := b.NewDeviceID()
	attrs := make(map[string]any, len(orig.Attrs))

	for k, v := range orig.Attrs {
		attrs[k] = v
	}

	b.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeConstant, Attrs: attrs})

	return digitaljs.PortRef{ID: id, Port: "out"}
}
