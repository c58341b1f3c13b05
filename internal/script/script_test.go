package script_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/intensity/internal/script"
)

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	s, err := script.Parse([]byte(`
name: sample
steps:
  - {op: add, from: 10, to: 30, amount: 1}
  - op: set
    from: 25
    to: 35
    amount: 1.5
  - {op: segments}
  - {op: clear}
`))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	require.Len(t, s.Steps, 4)
	assert.Equal(t, script.Step{Op: script.OpAdd, From: 10, To: 30, Amount: 1}, s.Steps[0])
	assert.Equal(t, script.OpSet, s.Steps[1].Op)
	assert.InDelta(t, 1.5, s.Steps[1].Amount, 0)
	assert.Equal(t, script.OpSegments, s.Steps[2].Op)
	assert.Equal(t, script.OpClear, s.Steps[3].Op)
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	s, err := script.Parse([]byte(`{"steps": [{"op": "add", "from": -5, "to": 5, "amount": -2}]}`))
	require.NoError(t, err)

	require.Len(t, s.Steps, 1)
	assert.Equal(t, script.Step{Op: script.OpAdd, From: -5, To: 5, Amount: -2}, s.Steps[0])
}

func TestParse_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "missing_steps", input: `name: x`, field: "(root)"},
		{name: "unknown_op", input: `steps: [{op: multiply}]`, field: "steps.0.op"},
		{name: "missing_amount", input: `steps: [{op: add, from: 1, to: 2}]`, field: "steps.0"},
		{name: "string_operand", input: `steps: [{op: add, from: "x", to: 5, amount: 1}]`, field: "steps.0.from"},
		{name: "unknown_field", input: `steps: [{op: clear, scale: 2}]`, field: "steps.0"},
		{name: "empty_document", input: ``, field: "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := script.Parse([]byte(tt.input))
			require.ErrorIs(t, err, script.ErrSchemaViolation)

			var verr *script.ValidationError

			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Violations)

			fields := make([]string, 0, len(verr.Violations))
			for _, v := range verr.Violations {
				fields = append(fields, v.Field)
			}

			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := script.Parse([]byte("steps: [unterminated"))
	require.ErrorIs(t, err, script.ErrMalformedScript)
}

func TestCheck_Valid(t *testing.T) {
	t.Parallel()

	violations, err := script.Check([]byte(`steps: [{op: clear}, {op: segments}]`))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	s, err := script.Decode(strings.NewReader(`steps: [{op: set, from: 0, to: 10, amount: 3}]`))
	require.NoError(t, err)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, script.OpSet, s.Steps[0].Op)
}

func TestReference(t *testing.T) {
	t.Parallel()

	ref := script.Reference()

	assert.Equal(t, "reference", ref.Name)
	require.Len(t, ref.Steps, 5)
	assert.Equal(t, script.Step{Op: script.OpSet, From: 25, To: 35, Amount: 10}, ref.Steps[3])
}

func TestSchemaIsJSON(t *testing.T) {
	t.Parallel()

	assert.Contains(t, string(script.Schema()), `"$schema"`)
}
