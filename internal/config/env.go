package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "PROTOGEN_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// DotEnvLookup returns a LookupFunc over the process environment, falling
// back to the variables of a dotenv file. A missing file is not an error.
func DotEnvLookup(path string) (LookupFunc, error) {
	vars := map[string]string{}

	if path != "" {
		read, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}

		if read != nil {
			vars = read
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := vars[key]

		return v, ok
	}, nil
}

// ApplyEnv overlays the PROTOGEN_* variables found by lookup.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	strs := map[string]*string{
		"PROTOCOL_VERSION": &c.ProtocolVersion,
		"DATA_DIR":         &c.DataDir,
		"OUTPUT_DIR":       &c.OutputDir,
		"RUNTIME_PACKAGE":  &c.RuntimePackage,
		"TYPES_FILE":       &c.TypesFile,
		"LOG_LEVEL":        &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"IMPLICIT_VOID_DEFAULT": &c.ImplicitVoidDefault,
		"MANIFEST":              &c.Manifest,
		"CHECK_RUNTIME":         &c.CheckRuntime,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
		}

		*dst = b
	}

	if v, ok := lookup(EnvPrefix + "WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWORKERS: %w", EnvPrefix, err)
		}

		c.Workers = n
	}

	return nil
}
