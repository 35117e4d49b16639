// Package uimap implements the optional I/O UI mapper: a
// post-pass, external to the core converter, that rewrites generic
// Input/Output devices into clickable/numeric front-panel widgets based on
// width and label heuristics.
package uimap

import (
	"strings"

	"girder/yosys2digitaljs/pkg/digitaljs"
)

// Apply rewrites every Input/Output device in mod, and recursively in every
// sub-circuit, in place.
func Apply(mod *digitaljs.Module) {
	for id, dev := range mod.Devices {
		switch dev.Type {
		case digitaljs.TypeInput:
			mod.Devices[id] = mapInput(dev)
		case digitaljs.TypeOutput:
			mod.Devices[id] = mapOutput(dev)
		}
	}

	for _, sub := range mod.Subcircuits {
		Apply(sub)
	}
}

func attrString(dev digitaljs.Device, key string) string {
	s, _ := dev.Attrs[key].(string)
	return s
}

func attrBits(dev digitaljs.Device) uint {
	b, _ := dev.Attrs["bits"].(uint)
	return b
}

// mapInput turns a 1-bit input labeled clk/clock into a Clock, any other
// 1-bit input into a Button, and anything wider into a NumEntry.
func mapInput(dev digitaljs.Device) digitaljs.Device {
	label := attrString(dev, "net")
	bits := attrBits(dev)
	lower := strings.ToLower(label)

	if bits == 1 && (lower == "clk" || lower == "clock") {
		return digitaljs.Device{
			Type:  digitaljs.TypeClock,
			Attrs: digitaljs.UIAttrs(label, bits, map[string]any{"propagation": 100}),
		}
	}

	if bits == 1 {
		return digitaljs.Device{Type: digitaljs.TypeButton, Attrs: digitaljs.UIAttrs(label, bits, nil)}
	}

	return digitaljs.Device{Type: digitaljs.TypeNumEntry, Attrs: digitaljs.UIAttrs(label, bits, nil)}
}

// mapOutput turns a 1-bit output into a Lamp, an 8-bit output labeled
// display7/display7_* into a Display7, and anything else into a NumDisplay.
func mapOutput(dev digitaljs.Device) digitaljs.Device {
	label := attrString(dev, "net")
	bits := attrBits(dev)
	lower := strings.ToLower(label)

	if bits == 1 {
		return digitaljs.Device{Type: digitaljs.TypeLamp, Attrs: digitaljs.UIAttrs(label, bits, nil)}
	}

	if bits == 8 && (lower == "display7" || strings.HasPrefix(lower, "display7_")) {
		return digitaljs.Device{Type: digitaljs.TypeDisplay7, Attrs: digitaljs.UIAttrs(label, bits, nil)}
	}

	return digitaljs.Device{Type: digitaljs.TypeNumDisplay, Attrs: digitaljs.UIAttrs(label, bits, nil)}
}
