package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "../../protocol-data/1.14.4/protocol.json"

// dataDir lays out doc as <dir>/<version>/protocol.json.
func dataDir(t *testing.T, version string, doc []byte) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, version), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, version, "protocol.json"), doc, 0o644))

	return dir
}

func sample(t *testing.T) []byte {
	t.Helper()

	doc, err := os.ReadFile(sampleDoc)
	require.NoError(t, err)

	return doc
}

func TestRun_GeneratesSample(t *testing.T) {
	data := dataDir(t, "1.14.4", sample(t))
	out := filepath.Join(t.TempDir(), "packet")

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-data-dir", data,
		"-out", out,
		"-manifest",
		"-check-runtime",
		"-workers", "2",
		"-env-file", "",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	for _, phase := range []string{"handshake", "status", "login", "play"} {
		assert.FileExists(t, filepath.Join(out, phase, phase+".go"))
		assert.FileExists(t, filepath.Join(out, phase, phase+".yaml"))
	}

	src, err := os.ReadFile(filepath.Join(out, "status", "status.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "type ServerboundPingStart struct")

	assert.Contains(t, stderr.String(), "generated protocol")
	assert.Empty(t, stdout.String())
}

func TestRun_DumpIR(t *testing.T) {
	data := dataDir(t, "1.14.4", sample(t))

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-data-dir", data,
		"-out", filepath.Join(t.TempDir(), "packet"),
		"-dump-ir",
		"-env-file", "",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "ServerboundPingStart")
	assert.NotContains(t, stdout.String(), "(0x")
}

func TestRun_UnknownType(t *testing.T) {
	doc := []byte(`{"play": {"toServer": [], "toClient": [
		{"name": "p", "fields": [{"name": "x", "type": "fooInt24"}]}
	]}}`)
	data := dataDir(t, "9.9", doc)
	out := filepath.Join(t.TempDir(), "packet")

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-data-dir", data,
		"-protocol-version", "9.9",
		"-out", out,
		"-env-file", "",
	}, &stdout, &stderr)
	assert.Equal(t, 1, code)

	assert.Contains(t, stderr.String(), "generation failed")
	assert.Contains(t, stderr.String(), "play/toClient/p field x")
	assert.Contains(t, stderr.String(), "fooInt24")
	assert.NoDirExists(t, out)
}

func TestRun_TypesFile(t *testing.T) {
	doc := []byte(`{"play": {"toServer": [], "toClient": [
		{"name": "p", "fields": [{"name": "x", "type": "fooInt24"}]}
	]}}`)
	data := dataDir(t, "9.9", doc)
	out := filepath.Join(t.TempDir(), "packet")

	types := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(types, []byte("types:\n  - name: fooInt24\n    go: int32\n    integer: true\n"), 0o644))

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-data-dir", data,
		"-protocol-version", "9.9",
		"-out", out,
		"-types", types,
		"-env-file", "",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	src, err := os.ReadFile(filepath.Join(out, "play", "play.go"))
	require.NoError(t, err)
	assert.Regexp(t, `X\s+int32`, string(src))
}

func TestRun_BadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), []string{"-workers", "-1", "-env-file", ""}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "negative_workers")

	stderr.Reset()
	assert.Equal(t, 0, run(context.Background(), []string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-protocol-version")
}

func TestRun_MissingVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-data-dir", t.TempDir(),
		"-protocol-version", "0.0",
		"-out", filepath.Join(t.TempDir(), "packet"),
		"-env-file", "",
	}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "failed to open protocol document for version 0.0")
}

func TestRun_WatchStopsWithContext(t *testing.T) {
	data := dataDir(t, "1.14.4", sample(t))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer

	code := run(ctx, []string{
		"-data-dir", data,
		"-out", filepath.Join(t.TempDir(), "packet"),
		"-watch",
		"-env-file", "",
	}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), "watching for changes")
}

func TestRun_SuggestsClosestType(t *testing.T) {
	doc := []byte(`{"status": {"toServer": [
		{"name": "ping", "fields": [{"name": "time", "type": "varInt"}]}
	], "toClient": []}}`)
	data := dataDir(t, "9.9", doc)

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-data-dir", data,
		"-protocol-version", "9.9",
		"-out", filepath.Join(t.TempDir(), "packet"),
		"-env-file", "",
	}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "suggestion=varint")
}
