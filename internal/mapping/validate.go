package mapping

import (
	"fmt"
	"go/token"
	"strings"

	"protocol-generator/internal/diagnostic"
)

// Validate checks an override file against the table it extends and reports
// every problem found.
func Validate(f *OverrideFile, t *Table) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("overrides_is_nil", "override file is nil", "")
		return res
	}

	seen := map[string]struct{}{}

	for i, o := range f.Types {
		subject := o.Name
		if subject == "" {
			subject = fmt.Sprintf("types[%d]", i)
			res.AddError("empty_name", "type name is empty", subject)

			continue
		}

		if _, ok := t.Entry(o.Name); ok {
			res.AddError("builtin_redefined", fmt.Sprintf("%q is a built-in type and cannot be overridden", o.Name), subject)
		}

		if _, ok := seen[o.Name]; ok {
			res.AddError("duplicate_type", fmt.Sprintf("duplicate type %q", o.Name), subject)
		}

		seen[o.Name] = struct{}{}

		validateGoName(res, subject, o)
	}

	return res
}

func validateGoName(res *diagnostic.Diagnostics, subject string, o TypeOverride) {
	if o.Go == "" {
		res.AddError("empty_go_type", "go type is empty", subject)
		return
	}

	if !token.IsIdentifier(o.Go) {
		res.AddError("invalid_go_type", fmt.Sprintf("go type %q is not an identifier", o.Go), subject)
	}

	if o.Runtime && o.Package != "" {
		res.AddError("conflicting_package", "runtime and package are mutually exclusive", subject)
	}

	qualified := o.Runtime || o.Package != ""
	if qualified && !token.IsExported(o.Go) {
		res.AddError("unexported_go_type", fmt.Sprintf("go type %q of another package must be exported", o.Go), subject)
	}

	if !qualified && token.IsExported(o.Go) {
		res.AddWarning("unqualified_named_type",
			fmt.Sprintf("go type %q has no package; it must be declared by the generated code", o.Go), subject)
	}

	if strings.Contains(o.Package, " ") {
		res.AddError("invalid_package", fmt.Sprintf("package path %q contains spaces", o.Package), subject)
	}
}
