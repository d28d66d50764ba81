// Package analyze checks that the Go packages generated code depends on
// export what the type mapping table and the emitter refer to.
//
// Packages are loaded with golang.org/x/tools/go/packages; only names and
// type information are requested.
//
// Key types:
//   - TypeID: package import path + symbol name
//   - Symbol: an exported package-level declaration
//   - Requirement: a symbol generated code refers to
package analyze
