package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.False(t, d.HasErrors())
	require.NoError(t, d.Err())

	d.AddWarning("unused", "entry is never referenced", "fooInt24")
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Err())

	d.AddError("empty_go_type", "go type is empty", "vec3f")

	var other Diagnostics
	other.AddError("duplicate", "declared twice", "vec3f")
	d.Merge(other)

	require.True(t, d.HasErrors())
	assert.Len(t, d.Errors, 2)
	assert.Len(t, d.Warnings, 1)
	assert.EqualError(t, d.Err(), "vec3f: [empty_go_type] go type is empty; vec3f: [duplicate] declared twice")
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(7).String())
}
