package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/eggir/internal/invariant"
	"github.com/roach88/eggir/internal/passes"
	"github.com/roach88/eggir/internal/typeinfo"
)

// AssertionError is returned when an assertion fails.
// It includes the rendered output to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Output   string // Rendered program for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Output != "" {
		fmt.Fprintf(&buf, "\nOutput:\n")
		for _, line := range strings.Split(strings.TrimRight(e.Output, "\n"), "\n") {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}

	return buf.String()
}

// evaluateAssertion checks one assertion against a finished run.
func evaluateAssertion(types typeinfo.TypeQuery, result *Result, a Assertion) error {
	switch a.Type {
	case AssertCommandCount:
		return assertCommandCount(result, a)
	case AssertNoResidualGlobals:
		return propertyAssertion(result, a.Type, passes.CheckNoResidualGlobals(result.Output))
	case AssertPairing:
		return propertyAssertion(result, a.Type, passes.CheckPairing(result.Input, result.Output))
	case AssertIdempotent:
		return propertyAssertion(result, a.Type, passes.CheckIdempotent(types, result.Output))
	case AssertOutputContains:
		return assertOutputContains(result, a)
	case AssertCardinality:
		return propertyAssertion(result, a.Type, passes.CheckCardinality(result.Input, result.Output))
	default:
		// validateScenario rejects unknown types
		invariant.Unreachable("assertion type", a.Type)
		return nil
	}
}

func assertCommandCount(result *Result, a Assertion) error {
	if got := len(result.Output); got != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d commands", a.Count),
			Actual:   fmt.Sprintf("%d commands", got),
			Output:   result.Rendered,
		}
	}
	return nil
}

func assertOutputContains(result *Result, a Assertion) error {
	if !strings.Contains(result.Rendered, a.Text) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("output containing %q", a.Text),
			Actual:   "not found in output",
			Output:   result.Rendered,
		}
	}
	return nil
}

func propertyAssertion(result *Result, typ string, err error) error {
	if err == nil {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: "property holds",
		Actual:   err.Error(),
		Output:   result.Rendered,
	}
}
