package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is matching.
var (
	// ErrSchemaFormat indicates the document violates the structural grammar.
	ErrSchemaFormat = errors.New("schema format error")
	// ErrUnknownType indicates a primitive type missing from the mapping table.
	ErrUnknownType = errors.New("unknown type")
	// ErrNameCollision indicates two names normalizing to the same identifier.
	ErrNameCollision = errors.New("name collision")
)

// Codes identifying the individual schema format violations.
const (
	CodeInvalidJSON          = "invalid_json"
	CodeUnknownPhase         = "unknown_phase"
	CodeMissingKey           = "missing_key"
	CodeUnexpectedKey        = "unexpected_key"
	CodeDuplicateKey         = "duplicate_key"
	CodeWrongShape           = "wrong_shape"
	CodeUnknownNodeKind      = "unknown_node_kind"
	CodeInvalidNumber        = "invalid_number"
	CodeEmptyName            = "empty_name"
	CodeDuplicateDiscrim     = "duplicate_discriminant"
	CodeMissingDefault       = "missing_default"
	CodeUnresolvedReference  = "unresolved_reference"
	CodeInvalidCountType     = "invalid_count_type"
	CodeInvalidBitfieldWidth = "invalid_bitfield_width"
	CodeNoPhases             = "no_phases"
)

// Location identifies a node of the protocol document.
// Empty parts are omitted when rendering.
type Location struct {
	Phase     string
	Direction string
	Packet    string
	// FieldPath is a dotted path inside the packet, e.g. "properties[].signature".
	FieldPath string
}

// String renders the location as "phase/direction/packet field path".
func (l Location) String() string {
	var parts []string
	for _, p := range []string{l.Phase, l.Direction, l.Packet} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	s := strings.Join(parts, "/")
	if l.FieldPath != "" {
		if s != "" {
			s += " "
		}

		s += "field " + l.FieldPath
	}

	return s
}

// Field returns a copy of l whose field path is extended by name.
func (l Location) Field(name string) Location {
	if l.FieldPath == "" {
		l.FieldPath = name
	} else {
		l.FieldPath += "." + name
	}

	return l
}

// Elem returns a copy of l pointing at array elements of the current field.
func (l Location) Elem() Location {
	l.FieldPath += "[]"
	return l
}

// Variant returns a copy of l pointing at one variant of a switch field.
func (l Location) Variant(value string) Location {
	l.FieldPath += "{" + value + "}"
	return l
}

// SchemaFormatError reports a violation of the document grammar.
type SchemaFormatError struct {
	Location Location
	// Code is a stable identifier for the violation (see Code* constants).
	Code    string
	Message string
	Cause   error
}

// NewSchemaFormatError creates a SchemaFormatError.
func NewSchemaFormatError(loc Location, code, message string) *SchemaFormatError {
	return &SchemaFormatError{Location: loc, Code: code, Message: message}
}

// Error implements the error interface.
func (e *SchemaFormatError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, msg)
	}

	return withLocation("schema format error", e.Location, msg, e.Cause)
}

// Unwrap returns the underlying error.
func (e *SchemaFormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrSchemaFormat.
func (e *SchemaFormatError) Is(target error) bool {
	return target == ErrSchemaFormat
}

// UnknownTypeError reports a primitive name the mapping table does not know.
type UnknownTypeError struct {
	Location Location
	TypeName string
}

// NewUnknownTypeError creates an UnknownTypeError.
func NewUnknownTypeError(loc Location, typeName string) *UnknownTypeError {
	return &UnknownTypeError{Location: loc, TypeName: typeName}
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return withLocation("unknown type", e.Location, fmt.Sprintf("%q has no entry in the type mapping table", e.TypeName), nil)
}

// Is reports whether the target matches ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// NameCollisionError reports two schema names that normalize to one identifier.
type NameCollisionError struct {
	Location Location
	// Kind is what collided: "packet", "field" or "variant".
	Kind string
	// Normalized is the shared identifier.
	Normalized string
	First      string
	Second     string
}

// NewNameCollisionError creates a NameCollisionError.
func NewNameCollisionError(loc Location, kind, normalized, first, second string) *NameCollisionError {
	return &NameCollisionError{
		Location:   loc,
		Kind:       kind,
		Normalized: normalized,
		First:      first,
		Second:     second,
	}
}

// Error implements the error interface.
func (e *NameCollisionError) Error() string {
	msg := fmt.Sprintf("%s names %q and %q both normalize to %q", e.Kind, e.First, e.Second, e.Normalized)
	return withLocation("name collision", e.Location, msg, nil)
}

// Is reports whether the target matches ErrNameCollision.
func (e *NameCollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// LocationOf extracts the Location from any error of this package.
func LocationOf(err error) (Location, bool) {
	var sfe *SchemaFormatError
	if errors.As(err, &sfe) {
		return sfe.Location, true
	}

	var ute *UnknownTypeError
	if errors.As(err, &ute) {
		return ute.Location, true
	}

	var nce *NameCollisionError
	if errors.As(err, &nce) {
		return nce.Location, true
	}

	return Location{}, false
}

func withLocation(kind string, loc Location, msg string, cause error) string {
	var b strings.Builder
	b.WriteString(kind)

	if s := loc.String(); s != "" {
		b.WriteString(" at ")
		b.WriteString(s)
	}

	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}

	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}

	return b.String()
}
