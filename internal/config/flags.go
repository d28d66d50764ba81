package config

import (
	"flag"
	"fmt"
	"io"
)

// RegisterFlags binds the command-line flags to c, using the current values
// as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "config file (.yaml, .yml or .toml)")
	fs.StringVar(&c.EnvFile, "env-file", c.EnvFile, "dotenv file with PROTOGEN_* variables")
	fs.StringVar(&c.ProtocolVersion, "protocol-version", c.ProtocolVersion, "protocol version directory below -data-dir")
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "directory of the protocol documents")
	fs.StringVar(&c.OutputDir, "out", c.OutputDir, "output directory")
	fs.StringVar(&c.RuntimePackage, "runtime-package", c.RuntimePackage, "import path of the runtime types")
	fs.StringVar(&c.TypesFile, "types", c.TypesFile, "YAML file extending the type mapping table")
	fs.BoolVar(&c.ImplicitVoidDefault, "implicit-void-default", c.ImplicitVoidDefault, "treat a switch without default as defaulting to void")
	fs.BoolVar(&c.Manifest, "manifest", c.Manifest, "also write a YAML manifest per phase")
	fs.BoolVar(&c.CheckRuntime, "check-runtime", c.CheckRuntime, "verify the runtime and mapped packages declare the referenced types")
	fs.IntVar(&c.Workers, "workers", c.Workers, "phases transformed concurrently (0: one per phase)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.DumpIR, "dump-ir", c.DumpIR, "print the resolved IR")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "regenerate when the protocol document changes")
}

// Load builds a Config from args and the environment. The flags are parsed
// twice: first to locate the config and dotenv files, then over the file and
// environment settings so that flags take precedence.
func Load(name string, args []string, output io.Writer) (*Config, error) {
	locate := &Config{EnvFile: ".env"}

	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	locate.RegisterFlags(pre)

	if err := pre.Parse(args); err != nil {
		// Reported by the second pass with usage.
		locate = &Config{EnvFile: ".env"}
	}

	cfg := Default()

	if locate.ConfigFile != "" {
		if err := cfg.ApplyFile(locate.ConfigFile); err != nil {
			return nil, err
		}
	}

	lookup, err := DotEnvLookup(locate.EnvFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	cfg.EnvFile = ".env"

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	cfg.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if err := cfg.Validate().Err(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
