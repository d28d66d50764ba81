package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
types:
  - name: vec3f
    go: Vec3f
    runtime: true
  - name: fooInt24
    go: int32
    integer: true
  - name: chatComponent
    go: Component
    package: example.com/chat
`))
	require.NoError(t, err)
	require.Len(t, f.Types, 3)

	assert.Equal(t, TypeOverride{Name: "vec3f", Go: "Vec3f", Runtime: true}, f.Types[0])
	assert.True(t, f.Types[1].Integer)
	assert.Equal(t, "example.com/chat", f.Types[2].Package)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("types: [name: {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse type override YAML")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types:\n  - name: fooInt24\n    go: int32\n"), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fooInt24", f.Types[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_RoundTrip(t *testing.T) {
	in := &OverrideFile{Types: []TypeOverride{{Name: "vec3f", Go: "Vec3f", Runtime: true}}}

	data, err := Marshal(in)
	require.NoError(t, err)

	out, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTable_Extend(t *testing.T) {
	base := NewTable(testRuntime)

	ext, err := base.Extend(&OverrideFile{Types: []TypeOverride{
		{Name: "vec3f", Go: "Vec3f", Runtime: true},
		{Name: "fooInt24", Go: "int32", Integer: true},
	}})
	require.NoError(t, err)

	rt, err := ext.Lookup("vec3f")
	require.NoError(t, err)
	assert.Equal(t, "protocol.Vec3f", rt.GoType())
	assert.Equal(t, []string{testRuntime}, rt.Imports)
	assert.True(t, ext.IsCountType("fooInt24"))

	_, err = base.Lookup("vec3f")
	require.Error(t, err, "base table is unchanged")

	assert.Equal(t, len(base.Names())+2, len(ext.Names()))
}

func TestTable_ExtendRejectsInvalid(t *testing.T) {
	_, err := NewTable(testRuntime).Extend(&OverrideFile{Types: []TypeOverride{{Name: "varint", Go: "int64"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "builtin_redefined")
}
