package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"protocol-generator/internal/diagnostic"
	"protocol-generator/internal/schema"
)

// Defaults.
const (
	DefaultProtocolVersion = "1.14.4"
	DefaultDataDir         = "protocol-data"
	DefaultOutputDir       = "protocol/packet"
	DefaultRuntimePackage  = "protocol-generator/protocol"
	DefaultLogLevel        = "info"
)

// Validation codes.
const (
	CodeEmptySetting    = "empty_setting"
	CodeNegativeWorkers = "negative_workers"
	CodeInvalidLogLevel = "invalid_log_level"
	CodeSameDirs        = "same_dirs"
)

// Config holds the generator settings.
type Config struct {
	// ProtocolVersion selects <DataDir>/<ProtocolVersion>/protocol.json.
	ProtocolVersion string `yaml:"protocol_version" toml:"protocol_version"`
	DataDir         string `yaml:"data_dir" toml:"data_dir"`
	OutputDir       string `yaml:"output_dir" toml:"output_dir"`
	// RuntimePackage is the import path of the runtime data types.
	RuntimePackage string `yaml:"runtime_package" toml:"runtime_package"`
	// TypesFile optionally extends the type mapping table.
	TypesFile           string `yaml:"types_file" toml:"types_file"`
	ImplicitVoidDefault bool   `yaml:"implicit_void_default" toml:"implicit_void_default"`
	// CheckRuntime loads the packages mapped types live in and verifies
	// they declare them.
	CheckRuntime bool `yaml:"check_runtime" toml:"check_runtime"`
	// Manifest enables the YAML manifest next to each Go file.
	Manifest bool `yaml:"manifest" toml:"manifest"`
	// Workers bounds the phases transformed concurrently; 0 means one per phase.
	Workers  int    `yaml:"workers" toml:"workers"`
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Command-line only.
	ConfigFile string `yaml:"-" toml:"-"`
	EnvFile    string `yaml:"-" toml:"-"`
	DumpIR     bool   `yaml:"-" toml:"-"`
	Watch      bool   `yaml:"-" toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ProtocolVersion: DefaultProtocolVersion,
		DataDir:         DefaultDataDir,
		OutputDir:       DefaultOutputDir,
		RuntimePackage:  DefaultRuntimePackage,
		LogLevel:        DefaultLogLevel,
	}
}

// ApplyFile overlays the settings of a YAML or TOML file, chosen by extension.
// Keys absent from the file keep their current value.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return fmt.Errorf("config file %s: unsupported extension %q", path, ext)
	}

	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	required := []struct{ name, value string }{
		{"protocol_version", c.ProtocolVersion},
		{"data_dir", c.DataDir},
		{"output_dir", c.OutputDir},
		{"runtime_package", c.RuntimePackage},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			diags.AddError(CodeEmptySetting, "must not be empty", r.name)
		}
	}

	if c.Workers < 0 {
		diags.AddError(CodeNegativeWorkers, fmt.Sprintf("must not be negative, got %d", c.Workers), "workers")
	}

	if _, err := c.Level(); err != nil {
		diags.AddError(CodeInvalidLogLevel, err.Error(), "log_level")
	}

	if c.DataDir != "" && filepath.Clean(c.DataDir) == filepath.Clean(c.OutputDir) {
		diags.AddError(CodeSameDirs, "output_dir must differ from data_dir", "output_dir")
	}

	return diags
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	return l, nil
}

// SchemaPath is the protocol document of the selected version.
func (c *Config) SchemaPath() string {
	return schema.DirSource{Root: c.DataDir}.Path(c.ProtocolVersion)
}
