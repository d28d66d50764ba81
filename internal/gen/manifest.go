package gen

import (
	"bytes"
	"fmt"
	"path"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"

	"protocol-generator/internal/ir"
	"protocol-generator/internal/schema"
)

// Manifest is the YAML description of one phase.
type Manifest struct {
	Phase           string           `yaml:"phase"`
	ProtocolVersion string           `yaml:"protocol_version,omitempty"`
	Imports         []string         `yaml:"imports,omitempty"`
	ToServer        []ManifestPacket `yaml:"toServer"`
	ToClient        []ManifestPacket `yaml:"toClient"`
}

// ManifestPacket describes a packet.
type ManifestPacket struct {
	ID     int             `yaml:"id"`
	Name   string          `yaml:"name"`
	GoType string          `yaml:"go_type"`
	Fields []ManifestField `yaml:"fields,omitempty"`
}

// ManifestField describes a field.
type ManifestField struct {
	Name string `yaml:"name"`
	// Snake is the snake_case form of the Go field name.
	Snake    string            `yaml:"snake"`
	Kind     string            `yaml:"kind"`
	GoType   string            `yaml:"go_type"`
	Length   *ManifestLength   `yaml:"length,omitempty"`
	Compare  string            `yaml:"compare_to,omitempty"`
	Variants []ManifestVariant `yaml:"variants,omitempty"`
	Bits     []ManifestBits    `yaml:"bits,omitempty"`
	Fields   []ManifestField   `yaml:"fields,omitempty"`
}

// ManifestLength describes the length policy of an array.
type ManifestLength struct {
	Policy    string `yaml:"policy"`
	Count     int    `yaml:"count,omitempty"`
	Field     string `yaml:"field,omitempty"`
	CountType string `yaml:"count_type,omitempty"`
}

// ManifestVariant describes a union case.
type ManifestVariant struct {
	Value  string `yaml:"value"`
	GoType string `yaml:"go_type"`
}

// ManifestBits describes a bitfield range.
type ManifestBits struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
	Size   int    `yaml:"size"`
	Signed bool   `yaml:"signed,omitempty"`
}

// ManifestEmitter renders a phase as a YAML manifest.
type ManifestEmitter struct {
	// ProtocolVersion is recorded in every manifest when set.
	ProtocolVersion string
}

// Emit implements Emitter.
func (e *ManifestEmitter) Emit(p *ir.Protocol) ([]GeneratedFile, error) {
	m := Manifest{
		Phase:           p.Phase.Key(),
		ProtocolVersion: e.ProtocolVersion,
		Imports:         p.Imports,
		ToServer:        manifestPackets(p.Packets(schema.ServerBound)),
		ToClient:        manifestPackets(p.Packets(schema.ClientBound)),
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(&m); err != nil {
		return nil, fmt.Errorf("encoding manifest for phase %s: %w", p.Phase.Key(), err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding manifest for phase %s: %w", p.Phase.Key(), err)
	}

	name := p.Name()

	return []GeneratedFile{{Filename: path.Join(name, name+".yaml"), Content: buf.Bytes()}}, nil
}

func manifestPackets(packets []ir.Packet) []ManifestPacket {
	out := make([]ManifestPacket, 0, len(packets))

	for _, p := range packets {
		out = append(out, ManifestPacket{
			ID:     p.ID,
			Name:   p.Name,
			GoType: p.TypeName,
			Fields: manifestFields(p.Fields),
		})
	}

	return out
}

func manifestFields(fields []ir.Field) []ManifestField {
	if len(fields) == 0 {
		return nil
	}

	out := make([]ManifestField, 0, len(fields))
	for _, f := range fields {
		out = append(out, manifestField(f))
	}

	return out
}

func manifestField(f ir.Field) ManifestField {
	t := f.Type
	mf := ManifestField{
		Name:   f.Name,
		Snake:  inflect.Underscore(f.GoName),
		Kind:   t.Kind.String(),
		GoType: t.GoType(),
	}

	switch t.Kind {
	case ir.KindArray:
		mf.Length = &ManifestLength{
			Policy:    t.Length.Kind.String(),
			Count:     t.Length.Count,
			Field:     t.Length.Field,
			CountType: t.Length.CountType,
		}
		mf.Fields = manifestFields(nestedFields(t.Elem))

	case ir.KindOption:
		mf.Fields = manifestFields(nestedFields(t.Elem))

	case ir.KindRecord:
		mf.Fields = manifestFields(t.Fields)

	case ir.KindUnion:
		mf.Compare = t.Discriminant
		for _, v := range t.Variants {
			mf.Variants = append(mf.Variants, ManifestVariant{Value: v.Value, GoType: v.Type.GoType()})
		}

		if t.Default != nil {
			mf.Variants = append(mf.Variants, ManifestVariant{Value: t.Default.Value, GoType: t.Default.Type.GoType()})
		}

	case ir.KindBitfield:
		for _, br := range t.Ranges {
			mf.Bits = append(mf.Bits, ManifestBits{Name: br.Name, Offset: br.Offset, Size: br.Size, Signed: br.Signed})
		}

	case ir.KindScalar, ir.KindVoid:
	}

	return mf
}

// nestedFields returns the record fields reachable through arrays and options.
func nestedFields(t *ir.ResolvedType) []ir.Field {
	for t != nil {
		switch t.Kind {
		case ir.KindRecord:
			return t.Fields
		case ir.KindArray, ir.KindOption:
			t = t.Elem
		default:
			return nil
		}
	}

	return nil
}
