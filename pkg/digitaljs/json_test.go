package digitaljs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceMarshalFlattensAttrsWithType(t *testing.T) {
	dev := Device{Type: TypeNot, Attrs: BitwiseAttrs(4)}

	data, err := json.Marshal(dev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "Not", "bits": 4}`, string(data))
}

func TestConnectorMarshalOmitsEmptyFields(t *testing.T) {
	c := Connector{From: PortRef{ID: "dev1", Port: "out"}, To: PortRef{ID: "dev2", Port: "in"}}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from": {"id": "dev1", "port": "out"}, "to": {"id": "dev2", "port": "in"}}`, string(data))
}

func TestModuleMarshalIncludesSubcircuitsOnlyWhenPresent(t *testing.T) {
	mod := NewModule()
	mod.AddDevice("dev1", NewDevice(TypeInput))

	data, err := json.Marshal(mod)
	require.NoError(t, err)
	assert.JSONEq(t, `{"devices": {"dev1": {"type": "Input"}}, "connectors": []}`, string(data))

	mod.Subcircuits = map[string]*Module{"sub": NewModule()}

	data, err = json.Marshal(mod)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "subcircuits")
}

func TestAddDevicePreservesInsertionOrder(t *testing.T) {
	mod := NewModule()
	mod.AddDevice("b", NewDevice(TypeOutput))
	mod.AddDevice("a", NewDevice(TypeInput))

	assert.Equal(t, []string{"b", "a"}, mod.DeviceOrder)

	mod.AddDevice("b", NewDevice(TypeClock))
	assert.Equal(t, []string{"b", "a"}, mod.DeviceOrder, "re-adding an existing id must not move it")
}
