// Package digitaljs defines the output intermediate representation: the
// device/connector graph consumed by an interactive schematic viewer.
package digitaljs

import (
	"girder/yosys2digitaljs/pkg/netlist"
)

// Device is one node of the output graph.  Type is one of the closed set of
// tags in devices.go; Attrs carries the type-specific attribute payload.
// The payload shape varies enough across tags (a scalar width here, a
// nested polarity record there) that a single flexible map serves better
// than one Go struct per tag; callers build it with the helpers in
// devices.go.
type Device struct {
	Type  string
	Attrs map[string]any
}

// PortRef names a single port of a single device.
type PortRef struct {
	ID   string
	Port string
}

// Connector is one directed, named wire in the output graph, produced during
// connector emission.
type Connector struct {
	From            PortRef
	To              PortRef
	Name            string
	SourcePositions []netlist.SourcePosition
}

// Module is one converted module's device/connector graph.  Devices are
// recorded both in a lookup map and in an insertion-ordered slice of ids,
// since device ids are assigned, and therefore observable, in strict
// insertion order.
type Module struct {
	Devices     map[string]Device
	DeviceOrder []string
	Connectors  []Connector
	// Subcircuits is populated only on the top-level module returned by the
	// assembler; it is nil on every other converted module.
	Subcircuits map[string]*Module
}

// NewModule constructs an empty output module graph.
func NewModule() *Module {
	return &Module{Devices: make(map[string]Device)}
}

// AddDevice records a new device under id, preserving insertion order.
func (m *Module) AddDevice(id string, dev Device) {
	if _, exists := m.Devices[id]; !exists {
		m.DeviceOrder = append(m.DeviceOrder, id)
	}

	m.Devices[id] = dev
}

// AddConnector appends a connector to the module's connector list.
func (m *Module) AddConnector(c Connector) {
	m.Connectors = append(m.Connectors, c)
}
