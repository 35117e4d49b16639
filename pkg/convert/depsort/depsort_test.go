package depsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"girder/yosys2digitaljs/pkg/netlist"
)

func modDoc(cellType string) string {
	if cellType == "" {
		return `{"ports": {}, "cells": {}, "netnames": {}}`
	}

	return `{"ports": {}, "cells": {"u0": {"type": "` + cellType + `", "parameters": {}, "attributes": {},
		"port_directions": {}, "connections": {}}}, "netnames": {}}`
}

func TestSortOrdersSubcircuitsBeforeTop(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{
		"modules": {
			"top": ` + modDoc("leaf") + `,
			"leaf": ` + modDoc("") + `
		}
	}`))
	require.NoError(t, err)

	result, err := Sort(nl)
	require.NoError(t, err)

	assert.Equal(t, "top", result.Top)
	assert.Equal(t, []string{"leaf"}, result.Subcircuits)
}

func TestSortIgnoresInstantiationOfUnknownCellTypes(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{
		"modules": {
			"top": ` + modDoc("$add") + `
		}
	}`))
	require.NoError(t, err)

	result, err := Sort(nl)
	require.NoError(t, err)
	assert.Equal(t, "top", result.Top)
	assert.Empty(t, result.Subcircuits)
}

func TestSortDetectsCycle(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{
		"modules": {
			"a": ` + modDoc("b") + `,
			"b": ` + modDoc("a") + `
		}
	}`))
	require.NoError(t, err)

	_, err = Sort(nl)
	assert.Error(t, err)
}

func TestSortRejectsEmptyNetlist(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{"modules": {}}`))
	require.NoError(t, err)

	_, err = Sort(nl)
	assert.Error(t, err)
}
