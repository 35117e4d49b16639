package convert

import (
	"fmt"

	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/convert/cerr"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/util"
)

// builder accumulates one module's device/connector graph. It implements
// cells.Context so the per-class lowering routines in pkg/convert/cells can
// allocate devices and wire nets without importing this package.
type builder struct {
	mod *digitaljs.Module

	nets     *util.HashMap[bitvec.Vector, *net]
	netOrder []bitvec.Vector

	// provenance maps a bit id to the device port that produces it as a
	// primary output.
	provenance map[int]provEntry

	// portBits maps "<devID>\x00<port>" to the exact bit-vector a device
	// port was sourced or targeted with, so bus-glue insertion (phase d/e)
	// can re-wire a parent port by value without having stored the vector
	// anywhere else.
	portBits map[string]bitvec.Vector

	devCounter   int
	freshCounter int

	warnings []string
}

func newBuilder() *builder {
	return &builder{
		mod:        digitaljs.NewModule(),
		nets:       util.NewHashMap[bitvec.Vector, *net](64),
		provenance: make(map[int]provEntry),
		portBits:   make(map[string]bitvec.Vector),
	}
}

func portKey(devID, port string) string {
	return devID + "\x00" + port
}

func (b *builder) getOrCreateNet(bits bitvec.Vector) *net {
	if n, ok := b.nets.Get(bits); ok {
		return n
	}

	n := &net{bits: bits}
	b.nets.Insert(bits, n)
	b.netOrder = append(b.netOrder, bits)

	return n
}

// NewDeviceID implements cells.Context.
func (b *builder) NewDeviceID() string {
	b.devCounter++
	return fmt.Sprintf("dev%d", b.devCounter)
}

// AddDevice implements cells.Context.
func (b *builder) AddDevice(id string, dev digitaljs.Device) {
	b.mod.AddDevice(id, dev)
}

// SourceNet implements cells.Context: it is used exclusively by primary
// producers (I/O devices, lowered cells), so it also populates the bit
// provenance table. Bus-glue devices inserted by the converter itself use
// the unexported sourceGlue, which does not.
func (b *builder) SourceNet(bits bitvec.Vector, devID, port string) error {
	n := b.getOrCreateNet(bits)
	if n.source != nil {
		return cerr.NewMultiDriver(n.name)
	}

	n.source = &digitaljs.PortRef{ID: devID, Port: port}
	b.portBits[portKey(devID, port)] = bits

	for i, bit := range bits {
		if bit.Net {
			b.provenance[bit.Id] = provEntry{devID: devID, port: port, index: i}
		}
	}

	return nil
}

// SourceGlueNet implements cells.Context: lowering routines route the
// outputs of the extension devices they insert through here, so that glue
// never overwrites the provenance of the bits it re-presents.
func (b *builder) SourceGlueNet(bits bitvec.Vector, devID, port string) error {
	return b.sourceGlue(bits, devID, port)
}

// sourceGlue sets bits' source to a bus-glue device's output without
// touching the provenance table.
func (b *builder) sourceGlue(bits bitvec.Vector, devID, port string) error {
	n := b.getOrCreateNet(bits)
	if n.source != nil {
		return cerr.NewMultiDriver(n.name)
	}

	n.source = &digitaljs.PortRef{ID: devID, Port: port}
	b.portBits[portKey(devID, port)] = bits

	return nil
}

// TargetNet implements cells.Context.
func (b *builder) TargetNet(bits bitvec.Vector, devID, port string) {
	n := b.getOrCreateNet(bits)
	n.targets = append(n.targets, digitaljs.PortRef{ID: devID, Port: port})
	b.portBits[portKey(devID, port)] = bits
}

// FreshNetID implements cells.Context.
func (b *builder) FreshNetID() int {
	b.freshCounter--
	return b.freshCounter
}

func (b *builder) warn(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}
