package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"girder/yosys2digitaljs/pkg/convert/cerr"
	"girder/yosys2digitaljs/pkg/convert/portmap"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

const invNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "a": {"direction": "input", "bits": [2]},
        "y": {"direction": "output", "bits": [3]}
      },
      "cells": {
        "g0": {
          "type": "$not",
          "parameters": {"A_WIDTH": 1, "Y_WIDTH": 1},
          "attributes": {},
          "port_directions": {"A": "input", "Y": "output"},
          "connections": {"A": [2], "Y": [3]}
        }
      },
      "netnames": {
        "a": {"hide_name": 0, "bits": [2], "attributes": {}},
        "y": {"hide_name": 0, "bits": [3], "attributes": {}}
      }
    }
  }
}`

func TestModuleConvertsSimpleInverter(t *testing.T) {
	nl, err := netlist.Parse([]byte(invNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	result, err := Module(nl, "top", pm)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	mod := result.Module

	var types []string
	for _, id := range mod.DeviceOrder {
		types = append(types, mod.Devices[id].Type)
	}

	assert.Equal(t, []string{digitaljs.TypeInput, digitaljs.TypeOutput, digitaljs.TypeNot}, types)

	// One connector from the Input device into the Not gate, one from the
	// Not gate into the Output device.
	assert.Len(t, mod.Connectors, 2)
}

const constDrivenNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "y": {"direction": "output", "bits": ["1", "0", "1"]}
      },
      "cells": {},
      "netnames": {}
    }
  }
}`

func TestModuleResolvesAllConstantOutput(t *testing.T) {
	nl, err := netlist.Parse([]byte(constDrivenNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	result, err := Module(nl, "top", pm)
	require.NoError(t, err)

	mod := result.Module

	var constDev *digitaljs.Device
	for _, id := range mod.DeviceOrder {
		dev := mod.Devices[id]
		if dev.Type == digitaljs.TypeConstant {
			constDev = &dev
		}
	}

	require.NotNil(t, constDev)
	assert.Equal(t, "101", constDev.Attrs["constant"])
}

const undrivenNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "y": {"direction": "output", "bits": [99]}
      },
      "cells": {},
      "netnames": {}
    }
  }
}`

func TestModuleWarnsAndDropsUndrivenNet(t *testing.T) {
	nl, err := netlist.Parse([]byte(undrivenNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	result, err := Module(nl, "top", pm)
	require.NoError(t, err)

	assert.Len(t, result.Warnings, 1)
	assert.Empty(t, result.Module.Connectors)
}

const zextNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "a": {"direction": "input", "bits": [2, 3, 4]},
        "y": {"direction": "output", "bits": [2, 3, 4, "0"]}
      },
      "cells": {},
      "netnames": {}
    }
  }
}`

func TestModuleInfersZeroExtension(t *testing.T) {
	nl, err := netlist.Parse([]byte(zextNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	result, err := Module(nl, "top", pm)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	mod := result.Module

	var zext *digitaljs.Device
	for _, id := range mod.DeviceOrder {
		dev := mod.Devices[id]
		if dev.Type == digitaljs.TypeZeroExtend {
			zext = &dev
		}
	}

	require.NotNil(t, zext)
	assert.Equal(t, uint(3), zext.Attrs["input"])
	assert.Equal(t, uint(4), zext.Attrs["output"])
	assert.Len(t, mod.Connectors, 2)
}

const adffNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "clk": {"direction": "input", "bits": [2]},
        "rst": {"direction": "input", "bits": [3]},
        "d": {"direction": "input", "bits": [4, 5, 6, 7]},
        "q": {"direction": "output", "bits": [8, 9, 10, 11]}
      },
      "cells": {
        "ff": {
          "type": "$adff",
          "parameters": {"WIDTH": 4, "CLK_POLARITY": 1, "ARST_POLARITY": 1, "ARST_VALUE": "0000"},
          "attributes": {},
          "port_directions": {"CLK": "input", "ARST": "input", "D": "input", "Q": "output"},
          "connections": {"CLK": [2], "ARST": [3], "D": [4, 5, 6, 7], "Q": [8, 9, 10, 11]}
        }
      },
      "netnames": {
        "q": {"hide_name": 0, "bits": [8, 9, 10, 11], "attributes": {"init": "1010"}}
      }
    }
  }
}`

func TestModuleLowersAdffWithInit(t *testing.T) {
	nl, err := netlist.Parse([]byte(adffNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	result, err := Module(nl, "top", pm)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	mod := result.Module

	var dff *digitaljs.Device
	for _, id := range mod.DeviceOrder {
		dev := mod.Devices[id]
		if dev.Type == digitaljs.TypeDff {
			dff = &dev
		}
	}

	require.NotNil(t, dff)
	assert.Equal(t, uint(4), dff.Attrs["bits"])
	assert.Equal(t, "0000", dff.Attrs["arst_value"])
	assert.Equal(t, "1010", dff.Attrs["initial"])

	pol := dff.Attrs["polarity"].(digitaljs.Polarity)
	require.NotNil(t, pol.Clock)
	require.NotNil(t, pol.Arst)
	assert.True(t, *pol.Clock)
	assert.True(t, *pol.Arst)
	assert.Nil(t, pol.Enable)
}

const twoConstOutputsNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "y1": {"direction": "output", "bits": ["1", "0"]},
        "y2": {"direction": "output", "bits": ["1", "0"]}
      },
      "cells": {},
      "netnames": {}
    }
  }
}`

func TestModuleReplicatesConstantPerConnector(t *testing.T) {
	nl, err := netlist.Parse([]byte(twoConstOutputsNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	result, err := Module(nl, "top", pm)
	require.NoError(t, err)

	mod := result.Module
	require.Len(t, mod.Connectors, 2)
	assert.NotEqual(t, mod.Connectors[0].From.ID, mod.Connectors[1].From.ID,
		"every Constant must feed at most one connector")

	// Both sources are Constant devices with the same payload.
	for _, c := range mod.Connectors {
		dev := mod.Devices[c.From.ID]
		assert.Equal(t, digitaljs.TypeConstant, dev.Type)
		assert.Equal(t, "01", dev.Attrs["constant"])
	}
}

const unknownCellNetlist = `{
  "modules": {
    "top": {
      "ports": {},
      "cells": {
        "u0": {
          "type": "$no_such_primitive",
          "parameters": {},
          "attributes": {},
          "port_directions": {},
          "connections": {}
        }
      },
      "netnames": {}
    }
  }
}`

func TestModuleUnknownCellTypeIsFatal(t *testing.T) {
	nl, err := netlist.Parse([]byte(unknownCellNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	_, err = Module(nl, "top", pm)
	require.Error(t, err)

	var unknownErr *cerr.UnknownCellError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "$no_such_primitive", unknownErr.CellType)
}

const badWidthNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "a": {"direction": "input", "bits": [2]},
        "y": {"direction": "output", "bits": [3]}
      },
      "cells": {
        "g0": {
          "type": "$not",
          "parameters": {"A_WIDTH": 2, "Y_WIDTH": 1},
          "attributes": {},
          "port_directions": {"A": "input", "Y": "output"},
          "connections": {"A": [2], "Y": [3]}
        }
      },
      "netnames": {}
    }
  }
}`

func TestModuleStructuralWidthViolationIsFatal(t *testing.T) {
	nl, err := netlist.Parse([]byte(badWidthNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	_, err = Module(nl, "top", pm)
	require.Error(t, err)

	var structErr *cerr.StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "$not", structErr.CellType)
}

func TestModuleUnknownModuleErrors(t *testing.T) {
	nl, err := netlist.Parse([]byte(invNetlist))
	require.NoError(t, err)

	pm := portmap.Build(nl)
	_, err = Module(nl, "nonexistent", pm)
	assert.Error(t, err)
}
