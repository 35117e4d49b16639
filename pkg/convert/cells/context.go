// Package cells implements the per-cell-class lowering rules:
// width/direction assertions, parameter-to-attribute lowering, and wiring,
// for every recognised primitive cell type.
package cells

import (
	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/convert/portmap"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// Context is the set of builder operations a per-class lowering routine
// needs: allocating device ids, recording devices, and wiring bit-vectors to
// device ports.  The converter's module builder implements this interface;
// defining it here (rather than importing the converter package) avoids an
// import cycle between cells and its caller.
type Context interface {
	// NewDeviceID allocates and returns the next device id, in strict
	// insertion order.
	NewDeviceID() string
	// AddDevice records a device under an id obtained from NewDeviceID.
	AddDevice(id string, dev digitaljs.Device)
	// SourceNet registers devID:port as the (primary) source of the net
	// for bits, populating bit provenance. It returns a *cerr.MultiDriverError
	// if the net already has a source.
	SourceNet(bits bitvec.Vector, devID, port string) error
	// TargetNet registers devID:port as a target of the net for bits.
	TargetNet(bits bitvec.Vector, devID, port string)
	// SourceGlueNet registers devID:port as the source of the net for bits
	// WITHOUT populating bit provenance.  It is used for the synthetic
	// re-routing devices (ZeroExtend, SignExtend) a lowering routine
	// inserts around a cell, whose outputs merely re-present existing
	// provenance.
	SourceGlueNet(bits bitvec.Vector, devID, port string) error
	// FreshNetID allocates a net identifier guaranteed not to collide with
	// any bit appearing in the source netlist, for use in synthetic
	// bit-vectors that glue an inserted device (a padding extension, an
	// OrReduce feeding a logical And/Or) to its consumer.
	FreshNetID() int
}

// Lower dispatches a single cell to its per-class lowering routine; a cell
// type with a port-map entry but no class here is lowered to a Subcircuit
// device.  handled is false when the cell type is neither recognised by any
// class nor present in the port-map (the caller then reports an
// unknown-cell error).
func Lower(ctx Context, name string, cell netlist.Cell, pm *portmap.Table) (handled bool, err error) {
	switch {
	case isUnary(cell.Type):
		return true, lowerUnary(ctx, name, cell)
	case isBinaryArith(cell.Type):
		return true, lowerBinaryArith(ctx, name, cell)
	case isBitwiseBinary(cell.Type):
		return true, lowerBitwiseBinary(ctx, name, cell)
	case isReduction(cell.Type):
		return true, lowerReduction(ctx, name, cell)
	case isComparison(cell.Type):
		return true, lowerComparison(ctx, name, cell)
	case isShift(cell.Type):
		return true, lowerShift(ctx, name, cell)
	case isLogicalAndOr(cell.Type):
		return true, lowerLogicalAndOr(ctx, name, cell)
	case cell.Type == "$mux":
		return true, lowerMux(ctx, name, cell)
	case cell.Type == "$pmux":
		return true, lowerPmux(ctx, name, cell)
	case isRegister(cell.Type):
		return true, lowerRegister(ctx, name, cell)
	case cell.Type == "$fsm":
		return true, lowerFSM(ctx, name, cell)
	case cell.Type == "$mem" || cell.Type == "$mem_v2":
		return true, lowerMemory(ctx, name, cell)
	case cell.Type == "$lut":
		return true, lowerLUT(ctx, name, cell)
	default:
		// Anything else with a port-map entry is an instance of a
		// user-defined module: a Subcircuit device tagged with the cell
		// type, its ports wired straight through the identity mapping.
		if _, ok := pm.Lookup(cell.Type); ok {
			return true, lowerGeneric(ctx, name, cell, pm)
		}

		return false, nil
	}
}

// wireByPortMap performs the generic "iterate the direction map" wiring:
// input ports become net targets, output ports become primary net sources.
func wireByPortMap(ctx Context, devID string, cell netlist.Cell, pm *portmap.Table) error {
	table, _ := pm.Lookup(cell.Type)

	for _, portName := range cell.Connections.Keys() {
		bits, _ := cell.Connections.Get(portName)

		display, ok := table[portName]
		if !ok {
			continue
		}

		dir := cell.PortDirections[portName]

		switch dir {
		case netlist.Output:
			if err := ctx.SourceNet(bits, devID, display); err != nil {
				return err
			}
		default:
			ctx.TargetNet(bits, devID, display)
		}
	}

	return nil
}

func lowerGeneric(ctx Context, name string, cell netlist.Cell, pm *portmap.Table) error {
	id := ctx.NewDeviceID()
	ctx.AddDevice(id, digitaljs.Device{Type: digitaljs.TypeSubcircuit, Attrs: digitaljs.SubcircuitAttrs(cell.Type)})

	return wireByPortMap(ctx, id, cell, pm)
}
