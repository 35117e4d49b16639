package portmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"girder/yosys2digitaljs/pkg/netlist"
)

func TestBuildMapsPrimitiveCellTypes(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{"modules": {"top": {"ports": {}, "cells": {}, "netnames": {}}}}`))
	require.NoError(t, err)

	table := Build(nl)

	m, ok := table.Lookup("$add")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"A": "in1", "B": "in2", "Y": "out"}, m)

	m, ok = table.Lookup("$not")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"A": "in", "Y": "out"}, m)

	_, ok = table.Lookup("$mem")
	assert.False(t, ok, "memories have bespoke wiring, not a port-map entry")
}

func TestBuildAddsIdentityMappingForUserModules(t *testing.T) {
	nl, err := netlist.Parse([]byte(`{
		"modules": {
			"adder8": {
				"ports": {"a": {"direction": "input", "bits": []}, "y": {"direction": "output", "bits": []}},
				"cells": {}, "netnames": {}
			}
		}
	}`))
	require.NoError(t, err)

	table := Build(nl)

	m, ok := table.Lookup("adder8")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"a": "a", "y": "y"}, m)
}
