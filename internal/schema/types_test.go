package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase_Keys(t *testing.T) {
	for _, p := range Phases {
		got, ok := PhaseFromKey(p.Key())
		assert.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}

	assert.Equal(t, "play", Play.Key())
	assert.Equal(t, "Handshake", Handshake.String())
	assert.Equal(t, "handshaking", Handshake.Key())
	assert.Equal(t, "Phase(9)", Phase(9).String())

	_, ok := PhaseFromKey("game")
	assert.False(t, ok)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "toServer", ServerBound.Key())
	assert.Equal(t, "toClient", ClientBound.Key())
	assert.Equal(t, "Serverbound", ServerBound.String())
	assert.Equal(t, "Clientbound", ClientBound.String())
}

func TestNodeKind_String(t *testing.T) {
	assert.Equal(t, "primitive", NodePrimitive.String())
	assert.Equal(t, "bitfield", NodeBitfield.String())
	assert.Equal(t, "NodeKind(42)", NodeKind(42).String())

	var ft FieldType = &Switch{}
	assert.Equal(t, NodeSwitch, ft.Kind())
}

func TestLengthKind_String(t *testing.T) {
	assert.Equal(t, "prefixed", LengthPrefixed.String())
	assert.Equal(t, "fixed", LengthFixed.String())
	assert.Equal(t, "sibling", LengthSibling.String())
	assert.Equal(t, "rest", LengthRest.String())
}
