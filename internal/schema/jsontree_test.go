package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTree_KeepsMemberOrderAndDuplicates(t *testing.T) {
	n, err := decodeTreeBytes([]byte(`{"b": 1, "a": [true, null, "x"], "b": 2}`))
	require.NoError(t, err)
	require.Equal(t, jsonObject, n.kind)

	keys := make([]string, 0, len(n.members))
	for _, m := range n.members {
		keys = append(keys, m.key)
	}

	assert.Equal(t, []string{"b", "a"}, keys)
	assert.Equal(t, []string{"b"}, n.dups)

	b, ok := n.member("b")
	require.True(t, ok)
	assert.Equal(t, "1", b.text, "first occurrence wins")

	a, _ := n.member("a")
	require.Len(t, a.elems, 3)
	assert.Equal(t, jsonBool, a.elems[0].kind)
	assert.True(t, a.elems[0].boolean)
	assert.Equal(t, jsonNull, a.elems[1].kind)
	assert.Equal(t, "x", a.elems[2].text)
}

func TestDecodeTree_NumbersKeepLiteral(t *testing.T) {
	n, err := decodeTree(strings.NewReader(`[12, -3, 4.5]`))
	require.NoError(t, err)

	var got []string
	for _, e := range n.elems {
		assert.Equal(t, jsonNumber, e.kind)
		got = append(got, e.text)
	}

	assert.Equal(t, []string{"12", "-3", "4.5"}, got)
}

func TestDecodeTree_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ``},
		{name: "truncated", input: `{"a": [1, 2`},
		{name: "trailing value", input: `{} []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTreeBytes([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
