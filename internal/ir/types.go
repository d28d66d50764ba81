package ir

import (
	"strconv"
	"strings"

	"protocol-generator/internal/common"
	"protocol-generator/internal/schema"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind classifies a ResolvedType.
type Kind int

const (
	KindScalar   Kind = iota // scalar
	KindArray                // array
	KindRecord               // record
	KindOption               // option
	KindUnion                // union
	KindBitfield             // bitfield
	KindVoid                 // void
)

// ResolvedType describes the Go type of a field.
//
// Scalars name a Go type directly (Package + Name). Records, unions and
// bitfields are declared by the emitter under Name. Arrays and options are
// built from Elem.
type ResolvedType struct {
	Kind Kind

	// Schema is the primitive name the type was resolved from, if any.
	Schema string
	// Package is the import path declaring Name; empty for builtins and for
	// types declared in the generated file.
	Package string
	// Name is the Go type name.
	Name string

	// Imports are the import paths the type needs, first-seen order.
	Imports []string

	// Elem is the element of an array, the inner type of an option and the
	// storage integer of a bitfield.
	Elem *ResolvedType
	// Length is the length policy of an array.
	Length schema.LengthPolicy

	// Fields are the fields of a record.
	Fields []Field

	// Discriminant is the raw compareTo reference of a union.
	Discriminant string
	// Variants of a union, in declaration order.
	Variants []Variant
	// Default is the fallback variant of a union.
	Default *Variant

	// Ranges of a bitfield, most significant first.
	Ranges []BitRange
}

// Field is a resolved field of a packet or record.
type Field struct {
	Name   string
	GoName string
	Type   *ResolvedType
}

// Variant is one case of a union.
type Variant struct {
	// Value is the raw discriminant value.
	Value string
	// GoName is the identifier of the variant type.
	GoName string
	Type   *ResolvedType
}

// BitRange is one named range of a bitfield. Offset counts from the least
// significant bit.
type BitRange struct {
	Name   string
	GoName string
	Offset int
	Size   int
	Signed bool
}

// GoType renders the type as Go source, qualifying imported names with their
// package alias.
func (t *ResolvedType) GoType() string {
	switch t.Kind {
	case KindArray:
		if t.Length.Kind == schema.LengthFixed {
			return "[" + strconv.Itoa(t.Length.Count) + "]" + t.Elem.GoType()
		}

		return "[]" + t.Elem.GoType()

	case KindOption:
		return common.Qualified(t.Package, t.Name) + "[" + t.Elem.GoType() + "]"

	case KindVoid:
		return "struct{}"

	default:
		return common.Qualified(t.Package, t.Name)
	}
}

// String implements fmt.Stringer.
func (t *ResolvedType) String() string {
	if t == nil {
		return "<nil>"
	}

	return t.Kind.String() + " " + t.GoType()
}

// Walk calls fn for t and then for every type nested in it, depth first in
// declaration order. Returning false from fn skips the children of that type.
func (t *ResolvedType) Walk(fn func(*ResolvedType) bool) {
	if t == nil || !fn(t) {
		return
	}

	t.Elem.Walk(fn)

	for _, f := range t.Fields {
		f.Type.Walk(fn)
	}

	for _, v := range t.Variants {
		v.Type.Walk(fn)
	}

	if t.Default != nil {
		t.Default.Type.Walk(fn)
	}
}

// Packet is a resolved packet.
type Packet struct {
	// ID is the zero-based declaration position in its phase direction.
	ID int
	// Name is the name as declared in the document.
	Name string
	// GoName is the normalized name.
	GoName    string
	Direction schema.Direction
	// TypeName is the Go type of the packet: the direction followed by GoName.
	TypeName string
	Fields   []Field
}

// FieldNames returns the raw field names in declaration order.
func (p *Packet) FieldNames() []string {
	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = f.Name
	}

	return names
}

// Walk calls ResolvedType.Walk for every field type of the packet.
func (p *Packet) Walk(fn func(*ResolvedType) bool) {
	for _, f := range p.Fields {
		f.Type.Walk(fn)
	}
}

// Protocol is the IR of one phase.
type Protocol struct {
	Phase       schema.Phase
	ServerBound []Packet
	ClientBound []Packet
	// Imports are the data-type imports of every packet, deduplicated in
	// first-seen order.
	Imports []string
}

// Packets returns the packets of direction d in wire-id order.
func (p *Protocol) Packets(d schema.Direction) []Packet {
	if d == schema.ClientBound {
		return p.ClientBound
	}

	return p.ServerBound
}

// Name returns the lower-case phase name used for packages and files.
func (p *Protocol) Name() string {
	return strings.ToLower(p.Phase.String())
}

// PacketIDType is the Go type enumerating the packet ids of direction d.
func PacketIDType(d schema.Direction) string {
	return d.String() + "PacketID"
}

// RegistryName is the Go variable holding the packet registry of direction d.
func RegistryName(d schema.Direction) string {
	return d.String() + "Registry"
}

// PacketIDConst is the Go constant holding the wire id of a packet type.
func PacketIDConst(typeName string) string {
	return typeName + "ID"
}

// PacketIDMethod is the method returning the wire id of a packet.
const PacketIDMethod = "ID"

// BitRangeSetter is the method replacing the bits of a range.
func BitRangeSetter(goName string) string {
	return "With" + goName
}

// UnionCasesName is the Go variable mapping the discriminant values of a
// union to variant constructors.
func UnionCasesName(union string) string {
	return union + "Cases"
}
