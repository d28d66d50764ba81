package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listFiles(t *testing.T, dir string) []string {
	t.Helper()

	var out []string

	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, p)
			out = append(out, filepath.ToSlash(rel))
		}

		return nil
	})
	require.NoError(t, err)

	return out
}

func TestWriter_WriteFiles(t *testing.T) {
	dir := t.TempDir()

	files := []GeneratedFile{
		{Filename: "status/status.go", Content: []byte("package status\n\nvar   X = 1\n")},
		{Filename: "status/status.yaml", Content: []byte("phase: status\n")},
	}

	require.NoError(t, NewWriter(dir).WriteFiles(files))
	assert.ElementsMatch(t, []string{"status/status.go", "status/status.yaml"}, listFiles(t, dir))

	got, err := os.ReadFile(filepath.Join(dir, "status", "status.go"))
	require.NoError(t, err)
	assert.Equal(t, "package status\n\nvar X = 1\n", string(got))

	info, err := os.Stat(filepath.Join(dir, "status", "status.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
}

func TestWriter_Overwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteFiles([]GeneratedFile{{Filename: "a.yaml", Content: []byte("old\n")}}))
	require.NoError(t, w.WriteFiles([]GeneratedFile{{Filename: "a.yaml", Content: []byte("new\n")}}))

	got, err := os.ReadFile(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))
}

func TestWriter_FormatFailure(t *testing.T) {
	dir := t.TempDir()

	files := []GeneratedFile{
		{Filename: "login/login.go", Content: []byte("package login\n")},
		{Filename: "play/play.go", Content: []byte("package play\nfunc {")},
	}

	err := NewWriter(dir).WriteFiles(files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting play/play.go")

	assert.Equal(t, []string{"play/play.unformatted.go"}, listFiles(t, dir))

	raw, err := os.ReadFile(filepath.Join(dir, "play", "play.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package play\nfunc {", string(raw))
}

func TestWriter_EmitAllSample(t *testing.T) {
	dir := t.TempDir()

	files, err := EmitAll(sampleIR(t), NewGoEmitter(runtimePkg), &ManifestEmitter{})
	require.NoError(t, err)
	require.Len(t, files, 8)

	require.NoError(t, NewWriter(dir).WriteFiles(files))
	assert.ElementsMatch(t, []string{
		"handshake/handshake.go", "handshake/handshake.yaml",
		"status/status.go", "status/status.yaml",
		"login/login.go", "login/login.yaml",
		"play/play.go", "play/play.yaml",
	}, listFiles(t, dir))
}

func TestWriter_RemoveStale(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "play"), dirPerm))

	for _, name := range []string{"play/.play.go.tmp-123", "play/play.go", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, filePerm))
	}

	require.NoError(t, NewWriter(dir).RemoveStale())
	assert.ElementsMatch(t, []string{".hidden", "play/play.go"}, listFiles(t, dir))

	require.NoError(t, NewWriter(filepath.Join(dir, "missing")).RemoveStale())
}

func TestIsStaging(t *testing.T) {
	assert.True(t, isStaging(".play.go.tmp-42"))
	assert.False(t, isStaging("play.go"))
	assert.False(t, isStaging(".gitignore"))
}
