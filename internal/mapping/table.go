package mapping

import (
	"fmt"
	"slices"

	"protocol-generator/internal/diagnostic"
	"protocol-generator/internal/ir"
	"protocol-generator/internal/naming"
)

// UUIDPackage declares the Go type of the UUID primitive.
const UUIDPackage = "github.com/google/uuid"

// VoidName is the primitive carrying no value.
const VoidName = "void"

// MaxBitfieldBits is the widest bitfield with an integer storage type.
const MaxBitfieldBits = 64

// Entry maps one primitive name to a Go type.
type Entry struct {
	// Name is the primitive name used in protocol documents.
	Name string
	// Package declaring GoName; empty for builtins.
	Package string
	GoName  string
	// Integer marks types usable as array length prefixes.
	Integer bool
	// Void marks the primitive that carries no value.
	Void bool
}

// Table is the type mapping table.
type Table struct {
	runtimePkg string
	entries    map[string]Entry
	order      []string
}

// NewTable returns the built-in table. runtimePkg is the import path of the
// package declaring the runtime data types (Optional, Position, ...).
func NewTable(runtimePkg string) *Table {
	t := &Table{runtimePkg: runtimePkg, entries: make(map[string]Entry)}

	for _, e := range builtins(runtimePkg) {
		t.add(e)
	}

	return t
}

func builtins(runtimePkg string) []Entry {
	return []Entry{
		{Name: "varint", GoName: "int32", Integer: true},
		{Name: "varlong", GoName: "int64", Integer: true},
		{Name: "bool", GoName: "bool"},
		{Name: "i8", GoName: "int8", Integer: true},
		{Name: "u8", GoName: "uint8", Integer: true},
		{Name: "i16", GoName: "int16", Integer: true},
		{Name: "u16", GoName: "uint16", Integer: true},
		{Name: "i32", GoName: "int32", Integer: true},
		{Name: "u32", GoName: "uint32", Integer: true},
		{Name: "i64", GoName: "int64", Integer: true},
		{Name: "u64", GoName: "uint64", Integer: true},
		{Name: "f32", GoName: "float32"},
		{Name: "f64", GoName: "float64"},
		{Name: "string", GoName: "string"},
		{Name: "UUID", Package: UUIDPackage, GoName: "UUID"},
		{Name: "position", Package: runtimePkg, GoName: "Position"},
		{Name: "slot", Package: runtimePkg, GoName: "Slot"},
		{Name: "nbt", Package: runtimePkg, GoName: "NBT"},
		{Name: "optionalNbt", Package: runtimePkg, GoName: "OptionalNBT"},
		{Name: "anonymousNbt", Package: runtimePkg, GoName: "NBT"},
		{Name: "entityMetadata", Package: runtimePkg, GoName: "EntityMetadata"},
		{Name: "restBuffer", Package: runtimePkg, GoName: "RestBuffer"},
		{Name: VoidName, Void: true},
	}
}

func (t *Table) add(e Entry) {
	if _, ok := t.entries[e.Name]; !ok {
		t.order = append(t.order, e.Name)
	}

	t.entries[e.Name] = e
}

// RuntimePackage returns the import path of the runtime data types.
func (t *Table) RuntimePackage() string {
	return t.runtimePkg
}

// Names returns every primitive name in registration order.
func (t *Table) Names() []string {
	return slices.Clone(t.order)
}

// Entry returns the entry of name.
func (t *Table) Entry(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Lookup resolves a primitive name. Unknown names fail with an
// UnknownTypeError without location; callers attach it.
func (t *Table) Lookup(name string) (*ir.ResolvedType, error) {
	e, ok := t.entries[name]
	if !ok {
		return nil, diagnostic.NewUnknownTypeError(diagnostic.Location{}, name)
	}

	return e.resolved(), nil
}

// Suggest returns the known primitive name closest to an unknown one.
func (t *Table) Suggest(name string) (string, bool) {
	return naming.Closest(name, t.order)
}

// IsCountType reports whether name may prefix the length of an array.
func (t *Table) IsCountType(name string) bool {
	e, ok := t.entries[name]
	return ok && e.Integer
}

// Optional returns the runtime option wrapper of elem.
func (t *Table) Optional(elem *ir.ResolvedType) *ir.ResolvedType {
	return &ir.ResolvedType{
		Kind:    ir.KindOption,
		Package: t.runtimePkg,
		Name:    "Optional",
		Elem:    elem,
	}
}

// BitfieldStorage returns the unsigned integer holding totalBits bits.
// Widths outside 1..64 have no storage and fail with a SchemaFormatError
// without location; callers attach it.
func (t *Table) BitfieldStorage(totalBits int) (*ir.ResolvedType, error) {
	var name string

	switch {
	case totalBits <= 0 || totalBits > MaxBitfieldBits:
		return nil, diagnostic.NewSchemaFormatError(diagnostic.Location{}, diagnostic.CodeInvalidBitfieldWidth,
			fmt.Sprintf("bitfield spans %d bits, storage holds 1 to %d", totalBits, MaxBitfieldBits))
	case totalBits <= 8:
		name = "u8"
	case totalBits <= 16:
		name = "u16"
	case totalBits <= 32:
		name = "u32"
	default:
		name = "u64"
	}

	return t.entries[name].resolved(), nil
}

func (e Entry) resolved() *ir.ResolvedType {
	if e.Void {
		return &ir.ResolvedType{Kind: ir.KindVoid, Schema: e.Name}
	}

	rt := &ir.ResolvedType{Kind: ir.KindScalar, Schema: e.Name, Package: e.Package, Name: e.GoName}
	if e.Package != "" {
		rt.Imports = []string{e.Package}
	}

	return rt
}
