package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSourcePositionsSingle(t *testing.T) {
	got := ParseSourcePositions("top.v:12.3-12.9")

	assert.Equal(t, []SourcePosition{
		{Name: "top.v", From: LineCol{Line: 12, Column: 3}, To: LineCol{Line: 12, Column: 9}},
	}, got)
}

func TestParseSourcePositionsMultiplePiped(t *testing.T) {
	got := ParseSourcePositions("top.v:1.1-1.2|top.v:2.1-2.2")

	assert.Len(t, got, 2)
	assert.Equal(t, "top.v", got[0].Name)
	assert.Equal(t, 2, got[1].From.Line)
}

func TestParseSourcePositionsMalformedSkipped(t *testing.T) {
	assert.Nil(t, ParseSourcePositions(""))
	assert.Empty(t, ParseSourcePositions("garbage"))
	assert.Empty(t, ParseSourcePositions("top.v:1.1"))
}
