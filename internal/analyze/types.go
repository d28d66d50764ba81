package analyze

import (
	"protocol-generator/internal/common"
)

// TypeID uniquely identifies a package-level symbol by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "protocol-generator/protocol"
	Name    string // e.g., "Slot"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// SymbolKind represents the kind of a package-level declaration.
type SymbolKind int

const (
	SymbolUnknown SymbolKind = iota
	SymbolType               // type declaration or alias
	SymbolFunc               // function
	SymbolVar                // variable
	SymbolConst              // constant
)

// String returns a human-readable representation of the SymbolKind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolType:
		return "type"
	case SymbolFunc:
		return "func"
	case SymbolVar:
		return "var"
	case SymbolConst:
		return "const"
	case SymbolUnknown:
		return common.UnknownStr
	default:
		return common.UnknownStr
	}
}

// Symbol describes an exported package-level declaration.
type Symbol struct {
	ID   TypeID
	Kind SymbolKind
	// TypeParams is the number of type parameters of a generic type.
	TypeParams int
}

// Exports holds the exported symbols of the loaded packages.
type Exports struct {
	// Packages maps each requested package path to its load error, "" when
	// it loaded cleanly.
	Packages map[string]string
	Symbols  map[TypeID]Symbol
}

// NewExports creates an empty Exports.
func NewExports() *Exports {
	return &Exports{
		Packages: make(map[string]string),
		Symbols:  make(map[TypeID]Symbol),
	}
}

// Lookup returns the symbol with the given id.
func (e *Exports) Lookup(id TypeID) (Symbol, bool) {
	s, ok := e.Symbols[id]
	return s, ok
}
