package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OverrideFile is the YAML document adding entries to the table.
type OverrideFile struct {
	Types []TypeOverride `yaml:"types"`
}

// TypeOverride is one added entry.
type TypeOverride struct {
	Name string `yaml:"name"`
	// Go is the Go type name.
	Go string `yaml:"go"`
	// Package is the import path declaring Go.
	Package string `yaml:"package,omitempty"`
	// Runtime declares Go in the runtime package; exclusive with Package.
	Runtime bool `yaml:"runtime,omitempty"`
	Integer bool `yaml:"integer,omitempty"`
}

// LoadFile loads and parses a YAML override file from the given path.
func LoadFile(path string) (*OverrideFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read type override file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into an OverrideFile.
func Parse(data []byte) (*OverrideFile, error) {
	var f OverrideFile

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse type override YAML: %w", err)
	}

	return &f, nil
}

// Marshal serializes an OverrideFile to YAML.
func Marshal(f *OverrideFile) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal type overrides: %w", err)
	}

	return data, nil
}

// Extend returns a copy of t with the entries of f added. f is validated
// first; t is left untouched.
func (t *Table) Extend(f *OverrideFile) (*Table, error) {
	if diags := Validate(f, t); diags.HasErrors() {
		return nil, fmt.Errorf("invalid type overrides: %w", diags.Err())
	}

	ext := &Table{
		runtimePkg: t.runtimePkg,
		entries:    make(map[string]Entry, len(t.entries)+len(f.Types)),
		order:      make([]string, 0, len(t.order)+len(f.Types)),
	}

	for _, name := range t.order {
		ext.add(t.entries[name])
	}

	for _, o := range f.Types {
		pkg := o.Package
		if o.Runtime {
			pkg = t.runtimePkg
		}

		ext.add(Entry{Name: o.Name, Package: pkg, GoName: o.Go, Integer: o.Integer})
	}

	return ext, nil
}
