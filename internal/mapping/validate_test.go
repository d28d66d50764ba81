package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	table := NewTable(testRuntime)

	tests := []struct {
		name     string
		types    []TypeOverride
		errCodes []string
		warnings []string
	}{
		{
			name:  "valid",
			types: []TypeOverride{{Name: "vec3f", Go: "Vec3f", Runtime: true}, {Name: "fooInt24", Go: "int32"}},
		},
		{
			name:     "empty name",
			types:    []TypeOverride{{Go: "int32"}},
			errCodes: []string{"empty_name"},
		},
		{
			name:     "builtin",
			types:    []TypeOverride{{Name: "string", Go: "string"}},
			errCodes: []string{"builtin_redefined"},
		},
		{
			name:     "duplicate",
			types:    []TypeOverride{{Name: "a", Go: "int8"}, {Name: "a", Go: "int16"}},
			errCodes: []string{"duplicate_type"},
		},
		{
			name:     "empty go type",
			types:    []TypeOverride{{Name: "a"}},
			errCodes: []string{"empty_go_type"},
		},
		{
			name:     "not an identifier",
			types:    []TypeOverride{{Name: "a", Go: "[]byte"}},
			errCodes: []string{"invalid_go_type"},
		},
		{
			name:     "runtime and package",
			types:    []TypeOverride{{Name: "a", Go: "A", Runtime: true, Package: "x/y"}},
			errCodes: []string{"conflicting_package"},
		},
		{
			name:     "unexported qualified",
			types:    []TypeOverride{{Name: "a", Go: "vec", Package: "x/y"}},
			errCodes: []string{"unexported_go_type"},
		},
		{
			name:     "unqualified named type",
			types:    []TypeOverride{{Name: "a", Go: "Vec"}},
			warnings: []string{"unqualified_named_type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Validate(&OverrideFile{Types: tt.types}, table)

			var codes []string
			for _, d := range diags.Errors {
				codes = append(codes, d.Code)
			}

			var warnings []string
			for _, d := range diags.Warnings {
				warnings = append(warnings, d.Code)
			}

			assert.Equal(t, tt.errCodes, codes)
			assert.Equal(t, tt.warnings, warnings)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	diags := Validate(nil, NewTable(testRuntime))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "overrides_is_nil", diags.Errors[0].Code)
}
