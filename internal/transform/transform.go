package transform

import (
	"errors"
	"strconv"

	"protocol-generator/internal/common"
	"protocol-generator/internal/diagnostic"
	"protocol-generator/internal/ir"
	"protocol-generator/internal/mapping"
	"protocol-generator/internal/naming"
	"protocol-generator/internal/schema"
)

// Options tune the transformation.
type Options struct {
	// ImplicitVoidDefault resolves a switch without a default case as if it
	// declared "default": "void". Without it such a switch is rejected.
	ImplicitVoidDefault bool
}

// Transform resolves every phase of doc, in protocol order.
func Transform(doc *schema.Document, table *mapping.Table, opts Options) ([]ir.Protocol, error) {
	if doc == nil {
		return nil, errors.New("document is nil")
	}

	protocols := make([]ir.Protocol, 0, len(doc.Phases))

	for i := range doc.Phases {
		p, err := TransformPhase(&doc.Phases[i], table, opts)
		if err != nil {
			return nil, err
		}

		protocols = append(protocols, p)
	}

	return protocols, nil
}

// TransformPhase resolves a single phase. Phases are independent, so calls for
// different phases may run concurrently.
func TransformPhase(spec *schema.PhaseSpec, table *mapping.Table, opts Options) (ir.Protocol, error) {
	r := newResolver(spec.Phase, table, opts)

	// Packet names are declared before any field so that names synthesized for
	// nested types give way to them.
	declared := make([][]ir.Packet, len(schema.Directions))

	for i, dir := range schema.Directions {
		packets, err := r.declarePackets(dir, spec.Packets(dir))
		if err != nil {
			return ir.Protocol{}, err
		}

		declared[i] = packets
	}

	proto := ir.Protocol{Phase: spec.Phase}
	imports := &common.OrderedSet{}

	for i, dir := range schema.Directions {
		packets := declared[i]
		specs := spec.Packets(dir)

		for j := range packets {
			pkt := &packets[j]

			fields, err := r.resolveFields(r.packetLoc(dir, pkt.Name), pkt.TypeName, specs[j].Fields, nil, packetMethods)
			if err != nil {
				return ir.Protocol{}, err
			}

			pkt.Fields = fields
			pkt.Walk(func(t *ir.ResolvedType) bool {
				imports.Add(t.Imports...)
				return false
			})
		}

		if dir == schema.ClientBound {
			proto.ClientBound = packets
		} else {
			proto.ServerBound = packets
		}
	}

	proto.Imports = imports.Items()

	return proto, nil
}

// resolver holds the state of one phase: the mapping table and the Go type
// names declared so far.
type resolver struct {
	phase schema.Phase
	table *mapping.Table
	opts  Options
	// types maps declared Go type names to the location declaring them.
	types map[string]diagnostic.Location
}

func newResolver(phase schema.Phase, table *mapping.Table, opts Options) *resolver {
	r := &resolver{
		phase: phase,
		table: table,
		opts:  opts,
		types: make(map[string]diagnostic.Location),
	}

	loc := diagnostic.Location{Phase: phase.Key()}
	for _, dir := range schema.Directions {
		r.types[ir.PacketIDType(dir)] = loc
		r.types[ir.RegistryName(dir)] = loc
	}

	return r
}

// packetMethods are the methods declared on every packet struct.
var packetMethods = []string{ir.PacketIDMethod}

func (r *resolver) packetLoc(dir schema.Direction, packet string) diagnostic.Location {
	return diagnostic.Location{Phase: r.phase.Key(), Direction: dir.Key(), Packet: packet}
}

// declarePackets names the packets of one direction and reserves their type
// and id constant names. Fields are left for resolveFields.
func (r *resolver) declarePackets(dir schema.Direction, specs []schema.PacketSpec) ([]ir.Packet, error) {
	names := naming.NewScope("packet", r.packetLoc(dir, ""))

	packets := make([]ir.Packet, 0, len(specs))

	for id, spec := range specs {
		goName, err := names.Add(spec.Name)
		if err != nil {
			return nil, err
		}

		pktLoc := r.packetLoc(dir, spec.Name)

		typeName := dir.String() + goName
		if err := r.declare(pktLoc, typeName); err != nil {
			return nil, err
		}

		if err := r.declare(pktLoc, ir.PacketIDConst(typeName)); err != nil {
			return nil, err
		}

		packets = append(packets, ir.Packet{
			ID:        id,
			Name:      spec.Name,
			GoName:    goName,
			Direction: dir,
			TypeName:  typeName,
		})
	}

	return packets, nil
}

// declare reserves a Go type name for the phase.
func (r *resolver) declare(loc diagnostic.Location, name string) error {
	if prev, ok := r.types[name]; ok {
		return diagnostic.NewNameCollisionError(loc, "type", name, prev.String(), loc.String())
	}

	r.types[name] = loc

	return nil
}

// synthesize reserves a type name built from the names enclosing a nested
// type, along with the names derived from it. When any of them is taken the
// smallest numeric suffix freeing all of them is appended.
func (r *resolver) synthesize(loc diagnostic.Location, base string, derived ...func(string) string) string {
	for n := 1; ; n++ {
		name := base
		if n > 1 {
			name += strconv.Itoa(n)
		}

		names := append([]string{name}, mapEach(derived, name)...)
		if r.free(names) {
			for _, nm := range names {
				r.types[nm] = loc
			}

			return name
		}
	}
}

func (r *resolver) free(names []string) bool {
	for _, nm := range names {
		if _, ok := r.types[nm]; ok {
			return false
		}
	}

	return true
}

func mapEach(fns []func(string) string, s string) []string {
	out := make([]string, len(fns))
	for i, fn := range fns {
		out[i] = fn(s)
	}

	return out
}
