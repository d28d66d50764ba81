package gen

import (
	"protocol-generator/internal/common"
	"protocol-generator/internal/ir"
)

// GeneratedFile is a rendered output file.
type GeneratedFile struct {
	// Filename is the path relative to the output directory, e.g. "play/play.go".
	Filename string
	Content  []byte
}

// Emitter renders the IR of one phase.
type Emitter interface {
	Emit(p *ir.Protocol) ([]GeneratedFile, error)
}

// FileImports returns the imports of the file generated for p: the runtime
// package first, then the data-type imports of p in first-seen order.
func FileImports(p *ir.Protocol, runtimePkg string) []string {
	return common.NewOrderedSet(append([]string{runtimePkg}, p.Imports...)...).Items()
}

// EmitAll runs every emitter over every protocol and concatenates the files.
func EmitAll(protocols []ir.Protocol, emitters ...Emitter) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for i := range protocols {
		for _, e := range emitters {
			out, err := e.Emit(&protocols[i])
			if err != nil {
				return nil, err
			}

			files = append(files, out...)
		}
	}

	return files, nil
}
