// Package gen renders the protocol IR into files and writes them out.
//
// Emitters:
//   - GoEmitter: one Go file per phase (<phase>/<phase>.go) built with
//     jennifer, holding packet id enums, packet structs, nested records,
//     sealed unions for switches, bitfield types with range accessors and a
//     registry per direction
//   - ManifestEmitter: one YAML manifest per phase (<phase>/<phase>.yaml)
//     describing ids, names and resolved types for tooling
//
// Writer formats Go files with goimports and writes every file through a
// temporary file that is renamed into place only after all files of a run
// rendered successfully.
package gen
