package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

const twoModuleNetlist = `{
  "modules": {
    "top": {
      "ports": {
        "a": {"direction": "input", "bits": [2]},
        "y": {"direction": "output", "bits": [3]}
      },
      "cells": {
        "u0": {
          "type": "adder8",
          "parameters": {},
          "attributes": {},
          "port_directions": {"a": "input", "y": "output"},
          "connections": {"a": [2], "y": [3]}
        }
      },
      "netnames": {}
    },
    "adder8": {
      "ports": {
        "a": {"direction": "input", "bits": [10]},
        "y": {"direction": "output", "bits": [10]}
      },
      "cells": {},
      "netnames": {}
    }
  }
}`

func TestRunAssemblesTopAndSubcircuit(t *testing.T) {
	nl, err := netlist.Parse([]byte(twoModuleNetlist))
	require.NoError(t, err)

	result, err := Run(nl, Config{})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	require.Contains(t, result.Top.Subcircuits, "adder8")
	assert.NotSame(t, result.Top, result.Top.Subcircuits["adder8"])

	var sub *digitaljs.Device

	for _, id := range result.Top.DeviceOrder {
		dev := result.Top.Devices[id]
		if dev.Type == digitaljs.TypeSubcircuit {
			sub = &dev
		}
	}

	require.NotNil(t, sub, "the adder8 instance must lower to a Subcircuit device")
	assert.Equal(t, "adder8", sub.Attrs["celltype"])
}

func TestRunRejectsInvalidPortDirection(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{
		"modules": {
			"top": {
				"ports": {"a": {"direction": "bogus", "bits": []}},
				"cells": {}, "netnames": {}
			}
		}
	}`))
	require.NoError(t, err)

	_, err = Run(nl, Config{})
	assert.Error(t, err)
}

func TestRunPropagatesSortError(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{"modules": {}}`))
	require.NoError(t, err)

	_, err = Run(nl, Config{})
	assert.Error(t, err)
}

func TestRunTopModuleOverride(t *testing.T) {
	nl, err := netlist.Parse([]byte(twoModuleNetlist))
	require.NoError(t, err)

	result, err := Run(nl, Config{TopModule: "adder8"})
	require.NoError(t, err)

	require.Contains(t, result.Top.Subcircuits, "top")
	assert.NotContains(t, result.Top.Subcircuits, "adder8")

	_, err = Run(nl, Config{TopModule: "nonexistent"})
	assert.Error(t, err)
}

func TestRunStrictPromotesWarnings(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{
		"modules": {
			"top": {
				"ports": {"y": {"direction": "output", "bits": [99]}},
				"cells": {}, "netnames": {}
			}
		}
	}`))
	require.NoError(t, err)

	result, err := Run(nl, Config{})
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)

	_, err = Run(nl, Config{Strict: true})
	assert.Error(t, err)
}
