package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"protocol-generator/internal/diagnostic"
)

// Node kind tags of the document vocabulary.
const (
	tagContainer = "container"
	tagArray     = "array"
	tagBuffer    = "buffer"
	tagOption    = "option"
	tagSwitch    = "switch"
	tagBitfield  = "bitfield"
)

// bufferElem is the primitive a buffer node is desugared to an array of.
const bufferElem = "u8"

// Parse parses a protocol document.
func Parse(data []byte) (*Document, error) {
	root, err := decodeTreeBytes(data)
	if err != nil {
		sfe := diagnostic.NewSchemaFormatError(diagnostic.Location{}, diagnostic.CodeInvalidJSON, "document is not valid JSON")
		sfe.Cause = err

		return nil, sfe
	}

	return parseDocument(root)
}

func parseDocument(root *jsonNode) (*Document, error) {
	loc := diagnostic.Location{}
	if err := expectObject(loc, root, "document", diagnostic.CodeDuplicateKey); err != nil {
		return nil, err
	}

	var specs [len(phaseKeys)]*PhaseSpec

	for _, m := range root.members {
		phase, ok := PhaseFromKey(m.key)
		if !ok {
			return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeUnknownPhase,
				fmt.Sprintf("unknown phase key %q (expected one of %s)", m.key, strings.Join(phaseKeys[:], ", ")))
		}

		spec, err := parsePhase(phase, m.value)
		if err != nil {
			return nil, err
		}

		specs[phase] = spec
	}

	doc := &Document{}

	for _, spec := range specs {
		if spec != nil {
			doc.Phases = append(doc.Phases, *spec)
		}
	}

	if len(doc.Phases) == 0 {
		return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeNoPhases, "document declares no phases")
	}

	return doc, nil
}

func parsePhase(phase Phase, n *jsonNode) (*PhaseSpec, error) {
	loc := diagnostic.Location{Phase: phase.Key()}
	if err := expectObject(loc, n, "phase", diagnostic.CodeDuplicateKey); err != nil {
		return nil, err
	}

	if err := checkKeys(loc, n, []string{ServerBound.Key(), ClientBound.Key()}, []string{ServerBound.Key(), ClientBound.Key()}); err != nil {
		return nil, err
	}

	spec := &PhaseSpec{Phase: phase}

	for _, dir := range Directions {
		list, _ := n.member(dir.Key())

		packets, err := parsePackets(diagnostic.Location{Phase: phase.Key(), Direction: dir.Key()}, list)
		if err != nil {
			return nil, err
		}

		if dir == ClientBound {
			spec.ToClient = packets
		} else {
			spec.ToServer = packets
		}
	}

	return spec, nil
}

func parsePackets(loc diagnostic.Location, n *jsonNode) ([]PacketSpec, error) {
	if n.kind != jsonArray {
		return nil, wrongShape(loc, "packet list", "array", n)
	}

	packets := make([]PacketSpec, 0, len(n.elems))

	for i, elem := range n.elems {
		pkt, err := parsePacket(loc, i, elem)
		if err != nil {
			return nil, err
		}

		packets = append(packets, pkt)
	}

	return packets, nil
}

func parsePacket(loc diagnostic.Location, index int, n *jsonNode) (PacketSpec, error) {
	loc.Packet = "#" + strconv.Itoa(index)
	if err := expectObject(loc, n, "packet", diagnostic.CodeDuplicateKey); err != nil {
		return PacketSpec{}, err
	}

	name, err := requireName(loc, n, "packet")
	if err != nil {
		return PacketSpec{}, err
	}

	loc.Packet = name

	if err := checkKeys(loc, n, []string{"name"}, []string{"name", "fields"}); err != nil {
		return PacketSpec{}, err
	}

	pkt := PacketSpec{Name: name}

	if fields, ok := n.member("fields"); ok {
		pkt.Fields, err = parseFieldList(loc, fields)
		if err != nil {
			return PacketSpec{}, err
		}
	}

	return pkt, nil
}

func parseFieldList(loc diagnostic.Location, n *jsonNode) ([]Field, error) {
	if n.kind != jsonArray {
		return nil, wrongShape(loc, "field list", "array", n)
	}

	fields := make([]Field, 0, len(n.elems))

	for i, elem := range n.elems {
		fieldLoc := loc.Field("#" + strconv.Itoa(i))
		if err := expectObject(fieldLoc, elem, "field", diagnostic.CodeDuplicateKey); err != nil {
			return nil, err
		}

		name, err := requireName(fieldLoc, elem, "field")
		if err != nil {
			return nil, err
		}

		fieldLoc = loc.Field(name)
		if err := checkKeys(fieldLoc, elem, []string{"name", "type"}, []string{"name", "type"}); err != nil {
			return nil, err
		}

		typeNode, _ := elem.member("type")

		ft, err := parseFieldType(fieldLoc, typeNode)
		if err != nil {
			return nil, err
		}

		fields = append(fields, Field{Name: name, Type: ft})
	}

	return fields, nil
}

func parseFieldType(loc diagnostic.Location, n *jsonNode) (FieldType, error) {
	switch n.kind {
	case jsonString:
		if n.text == "" {
			return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeWrongShape, "empty primitive type name")
		}

		return &Primitive{Name: n.text}, nil

	case jsonArray:
		if len(n.elems) != 2 || n.elems[0].kind != jsonString {
			return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeWrongShape,
				"compound type must be a two-element array [kind, args]")
		}

		return parseCompound(loc, n.elems[0].text, n.elems[1])

	default:
		return nil, wrongShape(loc, "field type", "string or array", n)
	}
}

func parseCompound(loc diagnostic.Location, tag string, args *jsonNode) (FieldType, error) {
	switch tag {
	case tagContainer:
		fields, err := parseFieldList(loc, args)
		if err != nil {
			return nil, err
		}

		return &Container{Fields: fields}, nil

	case tagArray:
		return parseArray(loc, args)

	case tagBuffer:
		if err := expectObject(loc, args, "buffer arguments", diagnostic.CodeDuplicateKey); err != nil {
			return nil, err
		}

		if err := checkKeys(loc, args, nil, []string{"count", "countType"}); err != nil {
			return nil, err
		}

		length, err := parseLength(loc, args)
		if err != nil {
			return nil, err
		}

		return &Array{Elem: &Primitive{Name: bufferElem}, Length: length}, nil

	case tagOption:
		inner, err := parseFieldType(loc, args)
		if err != nil {
			return nil, err
		}

		return &Option{Inner: inner}, nil

	case tagSwitch:
		return parseSwitch(loc, args)

	case tagBitfield:
		return parseBitfield(loc, args)

	default:
		return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeUnknownNodeKind,
			fmt.Sprintf("unknown node kind %q", tag))
	}
}

func parseArray(loc diagnostic.Location, args *jsonNode) (FieldType, error) {
	if err := expectObject(loc, args, "array arguments", diagnostic.CodeDuplicateKey); err != nil {
		return nil, err
	}

	if err := checkKeys(loc, args, []string{"type"}, []string{"type", "count", "countType"}); err != nil {
		return nil, err
	}

	length, err := parseLength(loc, args)
	if err != nil {
		return nil, err
	}

	typeNode, _ := args.member("type")

	elem, err := parseFieldType(loc.Elem(), typeNode)
	if err != nil {
		return nil, err
	}

	return &Array{Elem: elem, Length: length}, nil
}

func parseLength(loc diagnostic.Location, args *jsonNode) (LengthPolicy, error) {
	count, hasCount := args.member("count")
	countType, hasCountType := args.member("countType")

	switch {
	case hasCount && hasCountType:
		return LengthPolicy{}, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeWrongShape,
			"array declares both count and countType")

	case hasCountType:
		if countType.kind != jsonString || countType.text == "" {
			return LengthPolicy{}, wrongShape(loc, "countType", "non-empty string", countType)
		}

		return LengthPolicy{Kind: LengthPrefixed, CountType: countType.text}, nil

	case hasCount:
		switch count.kind {
		case jsonNumber:
			v, err := parseNonNegative(loc, "count", count)
			if err != nil {
				return LengthPolicy{}, err
			}

			return LengthPolicy{Kind: LengthFixed, Count: v}, nil

		case jsonString:
			if count.text == "" {
				return LengthPolicy{}, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeWrongShape,
					"count field reference is empty")
			}

			return LengthPolicy{Kind: LengthSibling, Field: count.text}, nil

		default:
			return LengthPolicy{}, wrongShape(loc, "count", "number or field name", count)
		}

	default:
		return LengthPolicy{Kind: LengthRest}, nil
	}
}

func parseSwitch(loc diagnostic.Location, args *jsonNode) (FieldType, error) {
	if err := expectObject(loc, args, "switch arguments", diagnostic.CodeDuplicateKey); err != nil {
		return nil, err
	}

	if err := checkKeys(loc, args, []string{"compareTo", "fields"}, []string{"compareTo", "fields", "default"}); err != nil {
		return nil, err
	}

	compareTo, _ := args.member("compareTo")
	if compareTo.kind != jsonString || compareTo.text == "" {
		return nil, wrongShape(loc, "compareTo", "non-empty string", compareTo)
	}

	sw := &Switch{CompareTo: compareTo.text}

	cases, _ := args.member("fields")
	if err := expectObject(loc, cases, "switch fields", diagnostic.CodeDuplicateDiscrim); err != nil {
		return nil, err
	}

	for _, m := range cases.members {
		ft, err := parseFieldType(loc.Variant(m.key), m.value)
		if err != nil {
			return nil, err
		}

		sw.Cases = append(sw.Cases, SwitchCase{Value: m.key, Type: ft})
	}

	if def, ok := args.member("default"); ok {
		ft, err := parseFieldType(loc.Variant("default"), def)
		if err != nil {
			return nil, err
		}

		sw.Default = ft
	}

	return sw, nil
}

func parseBitfield(loc diagnostic.Location, args *jsonNode) (FieldType, error) {
	if args.kind != jsonArray {
		return nil, wrongShape(loc, "bitfield ranges", "array", args)
	}

	if len(args.elems) == 0 {
		return nil, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeWrongShape, "bitfield declares no ranges")
	}

	bf := &Bitfield{}

	for i, elem := range args.elems {
		rangeLoc := loc.Field("#" + strconv.Itoa(i))
		if err := expectObject(rangeLoc, elem, "bit range", diagnostic.CodeDuplicateKey); err != nil {
			return nil, err
		}

		name, err := requireName(rangeLoc, elem, "bit range")
		if err != nil {
			return nil, err
		}

		rangeLoc = loc.Field(name)
		if err := checkKeys(rangeLoc, elem, []string{"name", "size"}, []string{"name", "size", "signed"}); err != nil {
			return nil, err
		}

		sizeNode, _ := elem.member("size")

		size, err := parseNonNegative(rangeLoc, "size", sizeNode)
		if err != nil {
			return nil, err
		}

		r := BitRange{Name: name, Size: size}

		if signed, ok := elem.member("signed"); ok {
			if signed.kind != jsonBool {
				return nil, wrongShape(rangeLoc, "signed", "boolean", signed)
			}

			r.Signed = signed.boolean
		}

		bf.Ranges = append(bf.Ranges, r)
	}

	return bf, nil
}

// parseNonNegative accepts integer literals in [0, 2^31).
func parseNonNegative(loc diagnostic.Location, what string, n *jsonNode) (int, error) {
	if n.kind != jsonNumber {
		return 0, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeInvalidNumber,
			fmt.Sprintf("%s must be a non-negative integer, got %s", what, n.kind))
	}

	v, err := strconv.ParseUint(n.text, 10, 31)
	if err != nil {
		return 0, diagnostic.NewSchemaFormatError(loc, diagnostic.CodeInvalidNumber,
			fmt.Sprintf("%s must be a non-negative integer, got %s", what, n.text))
	}

	return int(v), nil
}

func requireName(loc diagnostic.Location, n *jsonNode, what string) (string, error) {
	name, ok := n.member("name")
	if !ok {
		return "", diagnostic.NewSchemaFormatError(loc, diagnostic.CodeMissingKey, what+" has no name")
	}

	if name.kind != jsonString {
		return "", wrongShape(loc, what+" name", "string", name)
	}

	if strings.TrimSpace(name.text) == "" {
		return "", diagnostic.NewSchemaFormatError(loc, diagnostic.CodeEmptyName, what+" name is empty")
	}

	return name.text, nil
}

// expectObject checks n is an object without repeated keys; dupCode is the
// code reported for a repeated key.
func expectObject(loc diagnostic.Location, n *jsonNode, what, dupCode string) error {
	if n.kind != jsonObject {
		return wrongShape(loc, what, "object", n)
	}

	if len(n.dups) > 0 {
		return diagnostic.NewSchemaFormatError(loc, dupCode,
			fmt.Sprintf("%s repeats key %q", what, n.dups[0]))
	}

	return nil
}

// checkKeys reports the first missing required key, then the first key not in allowed.
func checkKeys(loc diagnostic.Location, n *jsonNode, required, allowed []string) error {
	for _, k := range required {
		if _, ok := n.member(k); !ok {
			return diagnostic.NewSchemaFormatError(loc, diagnostic.CodeMissingKey, fmt.Sprintf("missing key %q", k))
		}
	}

	for _, m := range n.members {
		if !slices.Contains(allowed, m.key) {
			return diagnostic.NewSchemaFormatError(loc, diagnostic.CodeUnexpectedKey, fmt.Sprintf("unexpected key %q", m.key))
		}
	}

	return nil
}

func wrongShape(loc diagnostic.Location, what, want string, got *jsonNode) error {
	return diagnostic.NewSchemaFormatError(loc, diagnostic.CodeWrongShape,
		fmt.Sprintf("%s must be %s, got %s", what, want, got.kind))
}
