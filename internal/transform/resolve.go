package transform

import (
	"errors"
	"fmt"
	"slices"

	"protocol-generator/internal/common"
	"protocol-generator/internal/diagnostic"
	"protocol-generator/internal/ir"
	"protocol-generator/internal/naming"
	"protocol-generator/internal/schema"
)

// resolveFields resolves the fields of a packet or container. owner is the Go
// type name of the enclosing record; parent is the scope of the enclosing
// container, nil at packet level. A field named like one of the record's
// methods gets a trailing underscore.
func (r *resolver) resolveFields(
	loc diagnostic.Location,
	owner string,
	fields []schema.Field,
	parent *scope,
	methods []string,
) ([]ir.Field, error) {
	names := naming.NewScope("field", loc)
	sc := newScope(parent)

	out := make([]ir.Field, 0, len(fields))

	for _, f := range fields {
		fieldLoc := loc.Field(f.Name)

		goName, err := names.Add(f.Name)
		if err != nil {
			return nil, err
		}

		rt, err := r.resolve(fieldLoc, owner+goName, f.Type, sc)
		if err != nil {
			return nil, err
		}

		if slices.Contains(methods, goName) {
			goName += "_"
		}

		sc.declare(f.Name)
		out = append(out, ir.Field{Name: f.Name, GoName: goName, Type: rt})
	}

	return out, nil
}

// resolve maps one field type. name is the Go type name given to the type if
// it needs a declaration of its own; sc holds the fields declared before it.
func (r *resolver) resolve(loc diagnostic.Location, name string, ft schema.FieldType, sc *scope) (*ir.ResolvedType, error) {
	switch t := ft.(type) {
	case *schema.Primitive:
		return r.lookup(loc, t.Name)
	case *schema.Array:
		return r.resolveArray(loc, name, t, sc)
	case *schema.Container:
		return r.resolveContainer(loc, name, t, sc)
	case *schema.Option:
		return r.resolveOption(loc, name, t, sc)
	case *schema.Switch:
		return r.resolveSwitch(loc, name, t, sc)
	case *schema.Bitfield:
		return r.resolveBitfield(loc, name, t)
	default:
		return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeUnknownNodeKind,
			fmt.Sprintf("unsupported field type %T", ft))
	}
}

func (r *resolver) lookup(loc diagnostic.Location, primitive string) (*ir.ResolvedType, error) {
	rt, err := r.table.Lookup(primitive)
	if err != nil {
		return nil, locate(err, loc)
	}

	return rt, nil
}

func (r *resolver) resolveArray(loc diagnostic.Location, name string, t *schema.Array, sc *scope) (*ir.ResolvedType, error) {
	switch t.Length.Kind {
	case schema.LengthPrefixed:
		if _, err := r.lookup(loc, t.Length.CountType); err != nil {
			return nil, err
		}

		if !r.table.IsCountType(t.Length.CountType) {
			return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeInvalidCountType,
				fmt.Sprintf("array count type %q is not an integer type", t.Length.CountType))
		}

	case schema.LengthSibling:
		if !sc.resolves(t.Length.Field) {
			return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeUnresolvedReference,
				fmt.Sprintf("array count %q does not name an earlier field", t.Length.Field))
		}

	case schema.LengthFixed, schema.LengthRest:
	}

	elem, err := r.resolve(loc.Elem(), name, t.Elem, sc)
	if err != nil {
		return nil, err
	}

	return &ir.ResolvedType{
		Kind:    ir.KindArray,
		Imports: elem.Imports,
		Elem:    elem,
		Length:  t.Length,
	}, nil
}

func (r *resolver) resolveContainer(loc diagnostic.Location, name string, t *schema.Container, sc *scope) (*ir.ResolvedType, error) {
	name = r.synthesize(loc, name)

	fields, err := r.resolveFields(loc, name, t.Fields, sc, nil)
	if err != nil {
		return nil, err
	}

	imports := &common.OrderedSet{}
	for _, f := range fields {
		imports.Add(f.Type.Imports...)
	}

	return &ir.ResolvedType{
		Kind:    ir.KindRecord,
		Name:    name,
		Imports: imports.Items(),
		Fields:  fields,
	}, nil
}

func (r *resolver) resolveOption(loc diagnostic.Location, name string, t *schema.Option, sc *scope) (*ir.ResolvedType, error) {
	inner, err := r.resolve(loc, name, t.Inner, sc)
	if err != nil {
		return nil, err
	}

	opt := r.table.Optional(inner)
	opt.Imports = common.NewOrderedSet(append([]string{r.table.RuntimePackage()}, inner.Imports...)...).Items()

	return opt, nil
}

func (r *resolver) resolveSwitch(loc diagnostic.Location, name string, t *schema.Switch, sc *scope) (*ir.ResolvedType, error) {
	if !sc.resolves(t.CompareTo) {
		return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeUnresolvedReference,
			fmt.Sprintf("switch compareTo %q does not name an earlier field", t.CompareTo))
	}

	name = r.synthesize(loc, name, ir.UnionCasesName)

	union := &ir.ResolvedType{Kind: ir.KindUnion, Name: name, Discriminant: t.CompareTo}
	imports := &common.OrderedSet{}
	variants := naming.NewSuffixScope("variant", loc)
	seen := make(map[string]struct{}, len(t.Cases))

	for _, c := range t.Cases {
		if _, dup := seen[c.Value]; dup {
			return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeDuplicateDiscrim,
				fmt.Sprintf("switch declares discriminant %q more than once", c.Value))
		}

		seen[c.Value] = struct{}{}

		v, err := r.resolveVariant(loc.Variant(c.Value), name, variants, c.Value, c.Type, sc)
		if err != nil {
			return nil, err
		}

		imports.Add(v.Type.Imports...)
		union.Variants = append(union.Variants, v)
	}

	def := t.Default
	if def == nil {
		if !r.opts.ImplicitVoidDefault {
			return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeMissingDefault,
				"switch declares no default case")
		}

		def = &schema.Primitive{Name: "void"}
	}

	v, err := r.resolveVariant(loc.Variant("default"), name, variants, "default", def, sc)
	if err != nil {
		return nil, err
	}

	imports.Add(v.Type.Imports...)
	union.Default = &v
	union.Imports = imports.Items()

	return union, nil
}

// resolveVariant resolves one case of a switch. Variant types are named after
// the union followed by the normalized discriminant value.
func (r *resolver) resolveVariant(
	loc diagnostic.Location,
	union string,
	names *naming.Scope,
	value string,
	ft schema.FieldType,
	sc *scope,
) (ir.Variant, error) {
	suffix, err := names.Add(value)
	if err != nil {
		return ir.Variant{}, err
	}

	goName := union + suffix

	// Records are the variant type themselves; everything else is wrapped by
	// the emitter in a type named goName holding a Value field.
	typeName := goName
	if ft.Kind() != schema.NodeContainer {
		goName = r.synthesize(loc, goName)
		typeName = goName + "Value"
	}

	rt, err := r.resolve(loc, typeName, ft, sc)
	if err != nil {
		return ir.Variant{}, err
	}

	if rt.Kind == ir.KindRecord {
		goName = rt.Name
	}

	return ir.Variant{Value: value, GoName: goName, Type: rt}, nil
}

// resolveBitfield also checks the accessor methods of the ranges: the getter
// of one range must not share the name of another range's setter.
func (r *resolver) resolveBitfield(loc diagnostic.Location, name string, t *schema.Bitfield) (*ir.ResolvedType, error) {
	storage, err := r.table.BitfieldStorage(t.TotalBits())
	if err != nil {
		return nil, locate(err, loc)
	}

	name = r.synthesize(loc, name)

	names := naming.NewScope("bit range", loc)
	methods := naming.NewScope("bit range method", loc)
	offset := t.TotalBits()
	ranges := make([]ir.BitRange, 0, len(t.Ranges))

	for _, br := range t.Ranges {
		goName, err := names.Add(br.Name)
		if err != nil {
			return nil, err
		}

		// Empty ranges get no accessors.
		if br.Size > 0 {
			for _, m := range []string{goName, ir.BitRangeSetter(goName)} {
				if err := methods.Claim(m, br.Name); err != nil {
					return nil, err
				}
			}
		}

		offset -= br.Size
		ranges = append(ranges, ir.BitRange{
			Name:   br.Name,
			GoName: goName,
			Offset: offset,
			Size:   br.Size,
			Signed: br.Signed,
		})
	}

	return &ir.ResolvedType{
		Kind:   ir.KindBitfield,
		Name:   name,
		Elem:   storage,
		Ranges: ranges,
	}, nil
}

// locate attaches loc to a location-less error of the mapping table.
func locate(err error, loc diagnostic.Location) error {
	var ute *diagnostic.UnknownTypeError
	if errors.As(err, &ute) {
		return diagnostic.NewUnknownTypeError(loc, ute.TypeName)
	}

	var sfe *diagnostic.SchemaFormatError
	if errors.As(err, &sfe) && sfe.Location == (diagnostic.Location{}) {
		return diagnostic.NewSchemaFormatError(loc, sfe.Code, sfe.Message)
	}

	return err
}
