package analyze

import (
	"fmt"

	"protocol-generator/internal/common"
	"protocol-generator/internal/diagnostic"
	"protocol-generator/internal/mapping"
)

// Requirement is a symbol generated code refers to.
type Requirement struct {
	ID   TypeID
	Kind SymbolKind
	// Generic requires a type with type parameters.
	Generic bool
	// Subject names who needs the symbol, e.g. a mapping entry.
	Subject string
}

// TableRequirements returns the package-qualified types of the table entries,
// in table order.
func TableRequirements(t *mapping.Table) []Requirement {
	var reqs []Requirement

	for _, name := range t.Names() {
		e, _ := t.Entry(name)
		if e.Package == "" {
			continue
		}

		reqs = append(reqs, Requirement{
			ID:      TypeID{PkgPath: e.Package, Name: e.GoName},
			Kind:    SymbolType,
			Subject: name,
		})
	}

	return reqs
}

// Packages returns the distinct package paths of reqs in first-seen order.
func Packages(reqs []Requirement) []string {
	set := &common.OrderedSet{}
	for _, r := range reqs {
		set.Add(r.ID.PkgPath)
	}

	return set.Items()
}

// CheckRuntime reports every requirement exports cannot satisfy.
func CheckRuntime(reqs []Requirement, exports *Exports) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}
	reported := map[string]bool{}

	for _, r := range reqs {
		if loadErr, ok := exports.Packages[r.ID.PkgPath]; !ok || loadErr != "" {
			if !reported[r.ID.PkgPath] {
				reported[r.ID.PkgPath] = true

				if !ok {
					loadErr = "package not loaded"
				}

				diags.AddError("missing_package", loadErr, r.ID.PkgPath)
			}

			continue
		}

		sym, ok := exports.Lookup(r.ID)
		if !ok {
			diags.AddError("missing_symbol", fmt.Sprintf("%s needs %s %s", r.Subject, r.Kind, r.ID), r.ID.String())
			continue
		}

		if sym.Kind != r.Kind {
			diags.AddError("wrong_kind",
				fmt.Sprintf("%s needs %s to be a %s, found a %s", r.Subject, r.ID, r.Kind, sym.Kind), r.ID.String())

			continue
		}

		if r.Generic && sym.TypeParams == 0 {
			diags.AddError("not_generic", fmt.Sprintf("%s needs %s to take a type parameter", r.Subject, r.ID), r.ID.String())
		}

		if !r.Generic && sym.TypeParams > 0 {
			diags.AddWarning("unexpected_generic",
				fmt.Sprintf("%s refers to generic type %s without type arguments", r.Subject, r.ID), r.ID.String())
		}
	}

	return diags
}
