package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamAsUint(t *testing.T) {
	v, ok := IntParam(42).AsUint()
	assert.True(t, ok)
	assert.Equal(t, uint(42), v)

	v, ok = StrParam("101").AsUint()
	assert.True(t, ok)
	assert.Equal(t, uint(5), v)

	_, ok = StrParam("1x1").AsUint()
	assert.False(t, ok)

	_, ok = IntParam(-1).AsUint()
	assert.False(t, ok)
}

func TestParamAsBinStringInt(t *testing.T) {
	assert.Equal(t, "00000101", IntParam(5).AsBinString(8))
	assert.Equal(t, "101", IntParam(13).AsBinString(3))
}

func TestParamAsBinStringStringPadsWithLeadChar(t *testing.T) {
	assert.Equal(t, "111101", StrParam("101").AsBinString(6))
	assert.Equal(t, "101", StrParam("0101").AsBinString(3))
}

func TestParamAsBinStringEmpty(t *testing.T) {
	assert.Equal(t, "0000", Param{}.AsBinString(4))
}
