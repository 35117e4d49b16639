package bitvec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uassert "girder/yosys2digitaljs/pkg/util/assert"
)

func TestBitUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Bit
		wantErr bool
	}{
		{name: "net id", raw: "7", want: NetBit(7)},
		{name: "literal zero", raw: `"0"`, want: Lit('0')},
		{name: "literal x", raw: `"x"`, want: Lit('x')},
		{name: "literal z", raw: `"z"`, want: Lit('z')},
		{name: "bad literal", raw: `"q"`, wantErr: true},
		{name: "multi-char string", raw: `"01"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bit

			err := json.Unmarshal([]byte(tt.raw), &b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestBitMarshalRoundTrip(t *testing.T) {
	vec := Vector{NetBit(2), Lit('0'), Lit('1'), NetBit(100)}

	data, err := json.Marshal(vec)
	require.NoError(t, err)
	assert.JSONEq(t, `[2, "0", "1", 100]`, string(data))

	var out Vector
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, vec.Equals(out))
}

func TestVectorEquals(t *testing.T) {
	a := Vector{NetBit(1), Lit('0')}
	b := Vector{NetBit(1), Lit('0')}
	c := Vector{Lit('0'), NetBit(1)}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(Vector{NetBit(1)}))
}

func TestVectorHashConsistentWithEquals(t *testing.T) {
	a := Vector{NetBit(1), Lit('0'), NetBit(2)}
	b := Vector{NetBit(1), Lit('0'), NetBit(2)}
	c := Vector{NetBit(2), Lit('0'), NetBit(1)}

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestVectorAllConstAndConstString(t *testing.T) {
	allConst := Vector{Lit('1'), Lit('0'), Lit('1')}
	mixed := Vector{Lit('1'), NetBit(3)}

	assert.True(t, allConst.AllConst())
	assert.False(t, mixed.AllConst())
	assert.Equal(t, "101", allConst.ConstString())
}

func TestVectorWidthReversedSlice(t *testing.T) {
	v := Vector{NetBit(1), NetBit(2), NetBit(3), NetBit(4)}

	uassert.Equal(t, uint(4), v.Width())
	assert.Equal(t, Vector{NetBit(4), NetBit(3), NetBit(2), NetBit(1)}, v.Reversed())
	assert.Equal(t, Vector{NetBit(2), NetBit(3)}, v.Slice(1, 2))
}
