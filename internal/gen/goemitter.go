package gen

import (
	"bytes"
	"fmt"
	"path"

	"github.com/dave/jennifer/jen"

	"protocol-generator/internal/analyze"
	"protocol-generator/internal/common"
	"protocol-generator/internal/ir"
	"protocol-generator/internal/schema"
)

// DefaultHeader is the header comment of generated Go files.
const DefaultHeader = "Code generated by protocol-generator. DO NOT EDIT."

// tagKey is the struct tag holding the document name of a field.
const tagKey = "protocol"

// RuntimeRequirements lists the symbols of the runtime package that
// generated code refers to besides the mapped types.
func RuntimeRequirements(runtimePkg string) []analyze.Requirement {
	req := func(name string, kind analyze.SymbolKind, generic bool) analyze.Requirement {
		return analyze.Requirement{
			ID:      analyze.TypeID{PkgPath: runtimePkg, Name: name},
			Kind:    kind,
			Generic: generic,
			Subject: "go emitter",
		}
	}

	return []analyze.Requirement{
		req("Packet", analyze.SymbolType, false),
		req("Registry", analyze.SymbolType, false),
		req("Optional", analyze.SymbolType, true),
		req("SignExtend", analyze.SymbolFunc, false),
	}
}

// GoEmitter renders a phase as a Go package.
type GoEmitter struct {
	// RuntimePackage is the import path of the runtime data types.
	RuntimePackage string
	// Header overrides DefaultHeader.
	Header string
}

// NewGoEmitter creates a GoEmitter for the given runtime package.
func NewGoEmitter(runtimePkg string) *GoEmitter {
	return &GoEmitter{RuntimePackage: runtimePkg}
}

// Emit implements Emitter.
func (e *GoEmitter) Emit(p *ir.Protocol) ([]GeneratedFile, error) {
	pkg := p.Name()
	filename := path.Join(pkg, pkg+".go")

	f := jen.NewFile(pkg)

	header := e.Header
	if header == "" {
		header = DefaultHeader
	}

	f.HeaderComment(header)
	f.PackageComment(fmt.Sprintf("Package %s holds the packets of the %s phase.", pkg, p.Phase))

	for _, imp := range FileImports(p, e.RuntimePackage) {
		f.ImportName(imp, common.PkgAlias(imp))
	}

	r := &goRenderer{file: f, runtime: e.RuntimePackage, phase: p.Phase}
	for _, dir := range schema.Directions {
		r.direction(dir, p.Packets(dir))
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", filename, err)
	}

	return []GeneratedFile{{Filename: filename, Content: buf.Bytes()}}, nil
}

type goRenderer struct {
	file    *jen.File
	runtime string
	phase   schema.Phase
}

func (r *goRenderer) direction(dir schema.Direction, packets []ir.Packet) {
	idType := ir.PacketIDType(dir)

	r.file.Commentf("%s enumerates the %s packets of the %s phase.", idType, directionWord(dir), r.phase)
	r.file.Type().Id(idType).Int32()

	if len(packets) > 0 {
		defs := make([]jen.Code, 0, len(packets))
		for _, p := range packets {
			defs = append(defs, jen.Id(ir.PacketIDConst(p.TypeName)).Id(idType).Op("=").Id(hexID(p.ID)))
		}

		r.file.Const().Defs(defs...)
	}

	for i := range packets {
		r.packet(&packets[i])
	}

	registry := jen.Dict{}
	for _, p := range packets {
		registry[jen.Id(hexID(p.ID))] = jen.Func().Params().Qual(r.runtime, "Packet").Block(
			jen.Return(jen.Op("&").Id(p.TypeName).Values()),
		)
	}

	r.file.Commentf("%s constructs the %s packets by wire id.", ir.RegistryName(dir), directionWord(dir))
	r.file.Var().Id(ir.RegistryName(dir)).Op("=").Qual(r.runtime, "Registry").Values(registry)
}

func (r *goRenderer) packet(p *ir.Packet) {
	r.file.Commentf("%s is %s packet %q (%s).", p.TypeName, directionWord(p.Direction), p.Name, hexID(p.ID))
	r.file.Type().Id(p.TypeName).Struct(r.fields(p.Fields)...)

	r.file.Comment(ir.PacketIDMethod + " implements protocol.Packet.")
	r.file.Func().Params(jen.Op("*").Id(p.TypeName)).Id(ir.PacketIDMethod).Params().Int32().Block(
		jen.Return(jen.Int32().Call(jen.Id(ir.PacketIDConst(p.TypeName)))),
	)

	for _, f := range p.Fields {
		r.declare(f.Type)
	}
}

// fields renders struct fields; void fields carry no value and are dropped.
func (r *goRenderer) fields(fields []ir.Field) []jen.Code {
	out := make([]jen.Code, 0, len(fields))

	for _, f := range fields {
		if f.Type.Kind == ir.KindVoid {
			continue
		}

		out = append(out, jen.Id(f.GoName).Add(r.typeRef(f.Type)).Tag(map[string]string{tagKey: f.Name}))
	}

	return out
}

// typeRef renders a reference to t.
func (r *goRenderer) typeRef(t *ir.ResolvedType) jen.Code {
	switch t.Kind {
	case ir.KindArray:
		if t.Length.Kind == schema.LengthFixed {
			return jen.Index(jen.Lit(t.Length.Count)).Add(r.typeRef(t.Elem))
		}

		return jen.Index().Add(r.typeRef(t.Elem))

	case ir.KindOption:
		return jen.Qual(t.Package, t.Name).Types(r.typeRef(t.Elem))

	case ir.KindVoid:
		return jen.Struct()

	case ir.KindScalar:
		if t.Package != "" {
			return jen.Qual(t.Package, t.Name)
		}

		return jen.Id(t.Name)

	default:
		return jen.Id(t.Name)
	}
}

// declare emits the declarations t and its children need.
func (r *goRenderer) declare(t *ir.ResolvedType) {
	switch t.Kind {
	case ir.KindArray, ir.KindOption:
		r.declare(t.Elem)

	case ir.KindRecord:
		r.record(t, "")

	case ir.KindUnion:
		r.union(t)

	case ir.KindBitfield:
		r.bitfield(t)

	case ir.KindScalar, ir.KindVoid:
	}
}

// record declares a struct for t. A non-empty union makes it a variant of
// that union.
func (r *goRenderer) record(t *ir.ResolvedType, union string) {
	r.file.Type().Id(t.Name).Struct(r.fields(t.Fields)...)

	if union != "" {
		r.variantMethod(t.Name, union)
	}

	for _, f := range t.Fields {
		r.declare(f.Type)
	}
}

func (r *goRenderer) union(t *ir.ResolvedType) {
	r.file.Commentf("%s is selected by the value of %s.", t.Name, t.Discriminant)
	r.file.Type().Id(t.Name).Interface(jen.Id(sealMethod(t.Name)).Params())

	cases := jen.Dict{}

	for _, v := range t.Variants {
		r.variant(t.Name, v)
		cases[jen.Lit(v.Value)] = jen.Func().Params().Id(t.Name).Block(jen.Return(jen.Op("&").Id(v.GoName).Values()))
	}

	if t.Default != nil {
		r.variant(t.Name, *t.Default)
	}

	casesVar := ir.UnionCasesName(t.Name)
	r.file.Commentf("%s constructs the variants of %s by discriminant value.", casesVar, t.Name)
	r.file.Var().Id(casesVar).Op("=").Map(jen.String()).Func().Params().Id(t.Name).Values(cases)
}

func (r *goRenderer) variant(union string, v ir.Variant) {
	switch v.Type.Kind {
	case ir.KindRecord:
		r.file.Commentf("%s is the %q case of %s.", v.GoName, v.Value, union)
		r.record(v.Type, union)

	case ir.KindVoid:
		r.file.Commentf("%s is the %q case of %s.", v.GoName, v.Value, union)
		r.file.Type().Id(v.GoName).Struct()
		r.variantMethod(v.GoName, union)

	default:
		r.file.Commentf("%s is the %q case of %s.", v.GoName, v.Value, union)
		r.file.Type().Id(v.GoName).Struct(jen.Id("Value").Add(r.typeRef(v.Type)))
		r.variantMethod(v.GoName, union)
		r.declare(v.Type)
	}
}

func (r *goRenderer) variantMethod(typeName, union string) {
	r.file.Func().Params(jen.Op("*").Id(typeName)).Id(sealMethod(union)).Params().Block()
}

func (r *goRenderer) bitfield(t *ir.ResolvedType) {
	recv := jen.Id("b").Id(t.Name)

	r.file.Commentf("%s packs %s.", t.Name, rangeList(t.Ranges))
	r.file.Type().Id(t.Name).Add(r.typeRef(t.Elem))

	for _, br := range t.Ranges {
		if br.Size == 0 {
			continue
		}

		mask := jen.Id(hexMask(br.Size))

		shifted := jen.Id("b")
		if br.Offset > 0 {
			shifted = jen.Id("b").Op(">>").Lit(br.Offset)
		}

		extract := jen.Uint64().Call(shifted).Op("&").Add(mask)

		if br.Signed {
			r.file.Commentf("%s returns bits %d..%d as a signed value.", br.GoName, br.Offset, br.Offset+br.Size-1)
			r.file.Func().Params(recv).Id(br.GoName).Params().Int64().Block(
				jen.Return(jen.Qual(r.runtime, "SignExtend").Call(extract, jen.Lit(br.Size))),
			)
		} else {
			r.file.Commentf("%s returns bits %d..%d.", br.GoName, br.Offset, br.Offset+br.Size-1)
			r.file.Func().Params(recv).Id(br.GoName).Params().Uint64().Block(
				jen.Return(extract),
			)
		}

		arg := jen.Uint64()
		if br.Signed {
			arg = jen.Int64()
		}

		value := jen.Id(t.Name).Call(jen.Uint64().Call(jen.Id("v")).Op("&").Id(hexMask(br.Size)))
		keep := jen.Id(hexMask(br.Size))

		if br.Offset > 0 {
			value = value.Op("<<").Lit(br.Offset)
			keep = jen.Parens(jen.Id(hexMask(br.Size)).Op("<<").Lit(br.Offset))
		}

		setter := ir.BitRangeSetter(br.GoName)
		r.file.Commentf("%s returns b with %s replaced by v.", setter, br.GoName)
		r.file.Func().Params(recv).Id(setter).Params(jen.Id("v").Add(arg)).Id(t.Name).Block(
			jen.Return(jen.Id("b").Op("&^").Add(keep).Op("|").Add(value)),
		)
	}
}

func sealMethod(union string) string {
	return "is" + union
}

func directionWord(d schema.Direction) string {
	if d == schema.ClientBound {
		return "client-bound"
	}

	return "server-bound"
}

func hexID(id int) string {
	return fmt.Sprintf("0x%02X", id)
}

func hexMask(bits int) string {
	if bits >= 64 {
		return "0xFFFFFFFFFFFFFFFF"
	}

	return fmt.Sprintf("0x%X", uint64(1)<<bits-1)
}

func rangeList(ranges []ir.BitRange) string {
	var b bytes.Buffer

	for i, br := range ranges {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s (%d bits)", br.Name, br.Size)
	}

	return b.String()
}
