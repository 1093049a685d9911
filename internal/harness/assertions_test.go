package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/passes"
	"github.com/roach88/eggir/internal/testutil"
	"github.com/roach88/eggir/internal/typeinfo"
)

func lowered(t *testing.T, in []ast.Command) (typeinfo.TypeQuery, *Result) {
	t.Helper()
	types := typeinfo.FromProgram(in)
	out := passes.RemoveGlobals(types, in)
	return types, &Result{Pass: true, Input: in, Output: out, Rendered: ast.FormatProgram(out)}
}

func TestEvaluateAssertion_Holds(t *testing.T) {
	types, result := lowered(t, testutil.AddAndRefs())

	for _, a := range []Assertion{
		{Type: AssertCommandCount, Count: 4},
		{Type: AssertNoResidualGlobals},
		{Type: AssertPairing},
		{Type: AssertIdempotent},
		{Type: AssertOutputContains, Text: "(set (x) 3)"},
		{Type: AssertCardinality},
	} {
		t.Run(a.Type, func(t *testing.T) {
			assert.NoError(t, evaluateAssertion(types, result, a))
		})
	}
}

func TestEvaluateAssertion_PropertyFailures(t *testing.T) {
	in := testutil.AddAndRefs()
	types := typeinfo.FromProgram(in)
	// Feeding the unlowered program in as output breaks every property.
	result := &Result{Input: in, Output: in, Rendered: ast.FormatProgram(in)}

	for _, typ := range []string{AssertNoResidualGlobals, AssertPairing, AssertCardinality} {
		t.Run(typ, func(t *testing.T) {
			err := evaluateAssertion(types, result, Assertion{Type: typ})
			require.Error(t, err)

			var ae *AssertionError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, typ, ae.Type)
			assert.Equal(t, "property holds", ae.Expected)
			assert.Contains(t, ae.Error(), "(let x 3)")
		})
	}
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertCommandCount,
		Expected: "2 commands",
		Actual:   "1 commands",
		Output:   "(push 1)\n",
	}
	assert.Equal(t,
		"Assertion failed: command_count\n  Expected: 2 commands\n  Actual: 1 commands\n\nOutput:\n  (push 1)\n",
		err.Error())
}

func TestEvaluateAssertion_UnknownTypePanics(t *testing.T) {
	_, result := lowered(t, nil)
	assert.Panics(t, func() {
		_ = evaluateAssertion(typeinfo.New(), result, Assertion{Type: "bogus"})
	})
}
