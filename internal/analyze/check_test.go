package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protocol-generator/internal/mapping"
)

const runtimePkg = "protocol-generator/protocol"

func TestAnalyzer_LoadPackages(t *testing.T) {
	exports, err := NewAnalyzer().LoadPackages(runtimePkg, mapping.UUIDPackage)
	require.NoError(t, err)

	assert.Empty(t, exports.Packages[runtimePkg])
	assert.Empty(t, exports.Packages[mapping.UUIDPackage])

	tests := []struct {
		id         TypeID
		kind       SymbolKind
		typeParams int
	}{
		{id: TypeID{runtimePkg, "Slot"}, kind: SymbolType},
		{id: TypeID{runtimePkg, "Optional"}, kind: SymbolType, typeParams: 1},
		{id: TypeID{runtimePkg, "OptionalNBT"}, kind: SymbolType},
		{id: TypeID{runtimePkg, "SignExtend"}, kind: SymbolFunc},
		{id: TypeID{mapping.UUIDPackage, "UUID"}, kind: SymbolType},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			sym, ok := exports.Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.kind, sym.Kind)
			assert.Equal(t, tt.typeParams, sym.TypeParams)
		})
	}
}

func TestAnalyzer_MissingPackage(t *testing.T) {
	exports, err := NewAnalyzer().LoadPackages("protocol-generator/nonexistent")
	require.NoError(t, err)
	assert.NotEmpty(t, exports.Packages["protocol-generator/nonexistent"])
}

func TestCheckRuntime_BuiltinTable(t *testing.T) {
	reqs := TableRequirements(mapping.NewTable(runtimePkg))
	assert.Equal(t, []string{mapping.UUIDPackage, runtimePkg}, Packages(reqs))

	exports, err := NewAnalyzer().LoadPackages(Packages(reqs)...)
	require.NoError(t, err)

	diags := CheckRuntime(reqs, exports)
	assert.False(t, diags.HasErrors(), "%v", diags.Err())
	assert.Empty(t, diags.Warnings)
}

func TestCheckRuntime_Findings(t *testing.T) {
	exports := NewExports()
	exports.Packages[runtimePkg] = ""
	exports.Packages["example.com/broken"] = "no Go files"

	for _, s := range []Symbol{
		{ID: TypeID{runtimePkg, "Slot"}, Kind: SymbolType},
		{ID: TypeID{runtimePkg, "Optional"}, Kind: SymbolType, TypeParams: 1},
		{ID: TypeID{runtimePkg, "SignExtend"}, Kind: SymbolFunc},
	} {
		exports.Symbols[s.ID] = s
	}

	reqs := []Requirement{
		{ID: TypeID{runtimePkg, "Slot"}, Kind: SymbolType, Subject: "slot"},
		{ID: TypeID{runtimePkg, "Missing"}, Kind: SymbolType, Subject: "missing"},
		{ID: TypeID{runtimePkg, "SignExtend"}, Kind: SymbolType, Subject: "bitfield"},
		{ID: TypeID{runtimePkg, "Slot"}, Kind: SymbolType, Generic: true, Subject: "option"},
		{ID: TypeID{runtimePkg, "Optional"}, Kind: SymbolType, Subject: "opt"},
		{ID: TypeID{"example.com/broken", "A"}, Kind: SymbolType, Subject: "a"},
		{ID: TypeID{"example.com/broken", "B"}, Kind: SymbolType, Subject: "b"},
		{ID: TypeID{"example.com/unloaded", "C"}, Kind: SymbolType, Subject: "c"},
	}

	diags := CheckRuntime(reqs, exports)

	var codes []string
	for _, d := range diags.Errors {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []string{"missing_symbol", "wrong_kind", "not_generic", "missing_package", "missing_package"}, codes)
	assert.Equal(t, "no Go files", diags.Errors[3].Message)
	assert.Equal(t, "package not loaded", diags.Errors[4].Message)

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "unexpected_generic", diags.Warnings[0].Code)
}

func TestSymbolKind_String(t *testing.T) {
	assert.Equal(t, "type", SymbolType.String())
	assert.Equal(t, "func", SymbolFunc.String())
	assert.Equal(t, "var", SymbolVar.String())
	assert.Equal(t, "const", SymbolConst.String())
	assert.Equal(t, "unknown", SymbolKind(42).String())
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "protocol-generator/protocol.Slot", TypeID{runtimePkg, "Slot"}.String())
	assert.Equal(t, "int32", TypeID{Name: "int32"}.String())
}
