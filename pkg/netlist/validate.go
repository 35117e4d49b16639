package netlist

import "fmt"

// Validate checks that every port direction and every cell port direction in
// the netlist is one of "input", "output" or "inout".  This gives a single
// clear error site instead of scattering the check across every per-class
// cell lowering routine.
func (nl *Netlist) Validate() error {
	for _, modName := range nl.Modules.Keys() {
		mod, _ := nl.Modules.Get(modName)
		if err := mod.validate(modName); err != nil {
			return err
		}
	}

	return nil
}

func (m Module) validate(modName string) error {
	for _, portName := range m.Ports.Keys() {
		port, _ := m.Ports.Get(portName)
		if !port.Direction.Valid() {
			return fmt.Errorf("netlist: module %q port %q: invalid direction %q", modName, portName, port.Direction)
		}
	}

	for _, cellName := range m.Cells.Keys() {
		cell, _ := m.Cells.Get(cellName)

		for portName, dir := range cell.PortDirections {
			if !dir.Valid() {
				return fmt.Errorf("netlist: module %q cell %q port %q: invalid direction %q",
					modName, cellName, portName, dir)
			}
		}
	}

	return nil
}
