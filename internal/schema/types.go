package schema

import "strconv"

//go:generate go tool stringer -type=NodeKind -linecomment -output=kind_string.go

// Phase is a connection stage. The order of the constants is the protocol order.
type Phase int

const (
	Handshake Phase = iota
	Status
	Login
	Configuration
	Play
)

// Phases lists every phase in protocol order.
var Phases = []Phase{Handshake, Status, Login, Configuration, Play}

var phaseKeys = [...]string{
	Handshake:     "handshaking",
	Status:        "status",
	Login:         "login",
	Configuration: "configuration",
	Play:          "play",
}

var phaseNames = [...]string{
	Handshake:     "Handshake",
	Status:        "Status",
	Login:         "Login",
	Configuration: "Configuration",
	Play:          "Play",
}

// Key returns the document key of the phase ("handshaking", "play", ...).
func (p Phase) Key() string {
	if p < 0 || int(p) >= len(phaseKeys) {
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}

	return phaseKeys[p]
}

// String returns the display name of the phase.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}

	return phaseNames[p]
}

// PhaseFromKey maps a document key to its phase.
func PhaseFromKey(key string) (Phase, bool) {
	for _, p := range Phases {
		if phaseKeys[p] == key {
			return p, true
		}
	}

	return 0, false
}

// Direction tells which endpoint originates a packet.
type Direction int

const (
	ServerBound Direction = iota
	ClientBound
)

// Directions lists both directions, server-bound first.
var Directions = []Direction{ServerBound, ClientBound}

// Key returns the document key of the direction.
func (d Direction) Key() string {
	if d == ClientBound {
		return "toClient"
	}

	return "toServer"
}

// String returns "Serverbound" or "Clientbound".
func (d Direction) String() string {
	if d == ClientBound {
		return "Clientbound"
	}

	return "Serverbound"
}

// Document is a parsed protocol document.
type Document struct {
	// Phases holds the phases present in the document, in protocol order.
	Phases []PhaseSpec
}

// Phase returns the spec of phase p, if present.
func (d *Document) Phase(p Phase) (*PhaseSpec, bool) {
	for i := range d.Phases {
		if d.Phases[i].Phase == p {
			return &d.Phases[i], true
		}
	}

	return nil, false
}

// PhaseSpec holds the packets of one phase.
type PhaseSpec struct {
	Phase    Phase
	ToServer []PacketSpec
	ToClient []PacketSpec
}

// Packets returns the packets declared for direction d, in declaration order.
func (p *PhaseSpec) Packets(d Direction) []PacketSpec {
	if d == ClientBound {
		return p.ToClient
	}

	return p.ToServer
}

// PacketSpec is a packet as declared. Its index in the enclosing list is its wire id.
type PacketSpec struct {
	Name   string
	Fields []Field
}

// Field is a named field type.
type Field struct {
	Name string
	Type FieldType
}

// NodeKind enumerates the FieldType variants.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // primitive
	NodeArray                     // array
	NodeContainer                 // container
	NodeOption                    // option
	NodeSwitch                    // switch
	NodeBitfield                  // bitfield
)

// FieldType is the closed set of field type nodes:
// *Primitive, *Array, *Container, *Option, *Switch and *Bitfield.
type FieldType interface {
	Kind() NodeKind
	sealed()
}

// Primitive is an elementary named type resolved through the mapping table.
type Primitive struct {
	Name string
}

// Array is a sequence of Elem whose length is given by Length.
type Array struct {
	Elem   FieldType
	Length LengthPolicy
}

// Container is a nested record.
type Container struct {
	Fields []Field
}

// Option is a value preceded by a presence boolean.
type Option struct {
	Inner FieldType
}

// Switch is a tagged union selected by the decoded value of a sibling field.
type Switch struct {
	// CompareTo names the discriminant field. Each leading "../" climbs one
	// container up.
	CompareTo string
	// Cases are the variants in declaration order.
	Cases []SwitchCase
	// Default is nil when the document declares no default.
	Default FieldType
}

// SwitchCase is one variant of a Switch.
type SwitchCase struct {
	Value string
	Type  FieldType
}

// Bitfield packs named bit ranges into one integer, most significant first.
type Bitfield struct {
	Ranges []BitRange
}

// BitRange is one named range of a Bitfield.
type BitRange struct {
	Name   string
	Size   int
	Signed bool
}

// TotalBits returns the sum of all range widths.
func (b *Bitfield) TotalBits() int {
	total := 0
	for _, r := range b.Ranges {
		total += r.Size
	}

	return total
}

func (*Primitive) Kind() NodeKind { return NodePrimitive }
func (*Array) Kind() NodeKind     { return NodeArray }
func (*Container) Kind() NodeKind { return NodeContainer }
func (*Option) Kind() NodeKind    { return NodeOption }
func (*Switch) Kind() NodeKind    { return NodeSwitch }
func (*Bitfield) Kind() NodeKind  { return NodeBitfield }

func (*Primitive) sealed() {}
func (*Array) sealed()     {}
func (*Container) sealed() {}
func (*Option) sealed()    {}
func (*Switch) sealed()    {}
func (*Bitfield) sealed()  {}

// LengthKind tells how the length of an Array is determined.
type LengthKind int

const (
	// LengthPrefixed arrays are preceded by a count of type CountType.
	LengthPrefixed LengthKind = iota
	// LengthFixed arrays always hold Count elements.
	LengthFixed
	// LengthSibling arrays take their count from the earlier field named Field.
	LengthSibling
	// LengthRest arrays consume the rest of the packet.
	LengthRest
)

// String returns the policy tag used in generated metadata.
func (k LengthKind) String() string {
	switch k {
	case LengthPrefixed:
		return "prefixed"
	case LengthFixed:
		return "fixed"
	case LengthSibling:
		return "sibling"
	case LengthRest:
		return "rest"
	default:
		return "LengthKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// LengthPolicy describes the length of an Array.
type LengthPolicy struct {
	Kind      LengthKind
	Count     int
	Field     string
	CountType string
}
