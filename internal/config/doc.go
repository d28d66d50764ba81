// Package config assembles the generator settings.
//
// Settings are layered, later sources winning:
//
//  1. built-in defaults (Default)
//  2. a config file, YAML (.yaml/.yml) or TOML (.toml)
//  3. a dotenv file, then the process environment (PROTOGEN_* variables)
//  4. command-line flags
//
// Load runs all layers; the individual steps are exported for callers that
// assemble a Config differently.
package config
