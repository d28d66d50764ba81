package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func mapLookup(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "1.14.4", c.ProtocolVersion)
	assert.Equal(t, "protocol-data", c.DataDir)
	assert.Equal(t, "protocol/packet", c.OutputDir)
	assert.Equal(t, "protocol-generator/protocol", c.RuntimePackage)
	assert.Equal(t, filepath.Join("protocol-data", "1.14.4", "protocol.json"), c.SchemaPath())
	assert.False(t, c.Validate().HasErrors())
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "gen.yaml",
			content: `protocol_version: "1.15.2"
output_dir: out
manifest: true
workers: 2
`,
		},
		{
			name: "toml",
			file: "gen.toml",
			content: `protocol_version = "1.15.2"
output_dir = "out"
manifest = true
workers = 2
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			require.NoError(t, c.ApplyFile(writeFile(t, dir, tt.file, tt.content)))

			assert.Equal(t, "1.15.2", c.ProtocolVersion)
			assert.Equal(t, "out", c.OutputDir)
			assert.True(t, c.Manifest)
			assert.Equal(t, 2, c.Workers)
			// Untouched keys keep their defaults.
			assert.Equal(t, DefaultDataDir, c.DataDir)
			assert.Equal(t, DefaultRuntimePackage, c.RuntimePackage)
		})
	}
}

func TestApplyFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{name: "unknown yaml key", file: "a.yaml", content: "outputdir: x\n", errMsg: "failed to parse config file"},
		{name: "unknown toml key", file: "b.toml", content: "outputdir = \"x\"\n", errMsg: "unknown key \"outputdir\""},
		{name: "bad toml", file: "c.toml", content: "workers = [\n", errMsg: "failed to parse config file"},
		{name: "extension", file: "d.json", content: "{}", errMsg: "unsupported extension \".json\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().ApplyFile(writeFile(t, dir, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	err := Default().ApplyFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyFile_EmptyYAML(t *testing.T) {
	c := Default()
	require.NoError(t, c.ApplyFile(writeFile(t, t.TempDir(), "empty.yaml", "")))
	assert.Equal(t, Default(), c)
}

func TestApplyEnv(t *testing.T) {
	c := Default()

	err := c.ApplyEnv(mapLookup(map[string]string{
		"PROTOGEN_PROTOCOL_VERSION":      "1.16",
		"PROTOGEN_TYPES_FILE":            "types.yaml",
		"PROTOGEN_IMPLICIT_VOID_DEFAULT": "true",
		"PROTOGEN_WORKERS":               "4",
		"OUTPUT_DIR":                     "ignored",
	}))
	require.NoError(t, err)

	assert.Equal(t, "1.16", c.ProtocolVersion)
	assert.Equal(t, "types.yaml", c.TypesFile)
	assert.True(t, c.ImplicitVoidDefault)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, DefaultOutputDir, c.OutputDir)
}

func TestApplyEnv_Invalid(t *testing.T) {
	err := Default().ApplyEnv(mapLookup(map[string]string{"PROTOGEN_MANIFEST": "sometimes"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROTOGEN_MANIFEST")

	err = Default().ApplyEnv(mapLookup(map[string]string{"PROTOGEN_WORKERS": "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROTOGEN_WORKERS")
}

func TestDotEnvLookup(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "PROTOGEN_DATA_DIR=from-dotenv\nPROTOGEN_OUTPUT_DIR=from-dotenv\n")

	t.Setenv("PROTOGEN_OUTPUT_DIR", "from-env")

	lookup, err := DotEnvLookup(envFile)
	require.NoError(t, err)

	v, ok := lookup("PROTOGEN_DATA_DIR")
	assert.True(t, ok)
	assert.Equal(t, "from-dotenv", v)

	v, ok = lookup("PROTOGEN_OUTPUT_DIR")
	assert.True(t, ok)
	assert.Equal(t, "from-env", v)

	_, ok = lookup("PROTOGEN_NOT_SET_ANYWHERE")
	assert.False(t, ok)

	_, err = DotEnvLookup(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		codes  []string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "empty version", modify: func(c *Config) { c.ProtocolVersion = " " }, codes: []string{CodeEmptySetting}},
		{
			name:   "empty paths",
			modify: func(c *Config) { c.DataDir, c.OutputDir = "", "" },
			codes:  []string{CodeEmptySetting, CodeEmptySetting},
		},
		{name: "negative workers", modify: func(c *Config) { c.Workers = -1 }, codes: []string{CodeNegativeWorkers}},
		{name: "log level", modify: func(c *Config) { c.LogLevel = "loud" }, codes: []string{CodeInvalidLogLevel}},
		{name: "same dirs", modify: func(c *Config) { c.OutputDir = "protocol-data/" }, codes: []string{CodeSameDirs}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)

			var codes []string
			for _, d := range c.Validate().Errors {
				codes = append(codes, d.Code)
			}

			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"

	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()

	cfgFile := writeFile(t, dir, "gen.yaml", `protocol_version: "from-file"
data_dir: from-file
output_dir: from-file
log_level: warn
`)
	envFile := writeFile(t, dir, "gen.env", "PROTOGEN_DATA_DIR=from-dotenv\nPROTOGEN_OUTPUT_DIR=from-dotenv\n")

	t.Setenv("PROTOGEN_OUTPUT_DIR", "from-env")

	c, err := Load("protocol-generator", []string{
		"-config", cfgFile,
		"-env-file", envFile,
		"-protocol-version", "from-flag",
		"-workers", "3",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", c.ProtocolVersion)
	assert.Equal(t, "from-dotenv", c.DataDir)
	assert.Equal(t, "from-env", c.OutputDir)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, cfgFile, c.ConfigFile)
	assert.Equal(t, envFile, c.EnvFile)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "unknown flag", args: []string{"-nope"}, errMsg: "flag provided but not defined"},
		{name: "positional", args: []string{"extra"}, errMsg: "unexpected arguments"},
		{name: "invalid", args: []string{"-workers", "-2"}, errMsg: "invalid configuration: workers: [negative_workers]"},
		{name: "missing config", args: []string{"-config", "/nonexistent/gen.yaml"}, errMsg: "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("protocol-generator", tt.args, io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
