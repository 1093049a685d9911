package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/passes"
	"github.com/roach88/eggir/internal/program"
	"github.com/roach88/eggir/internal/typeinfo"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Load the program document
// 2. Build type information from its declarations
// 3. Run the default pipeline
// 4. Evaluate every assertion, collecting failures
//
// An error is returned only when the scenario cannot run at all. Failed
// assertions are reported through Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	in, err := program.LoadFile(scenario.Program)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	types := typeinfo.FromProgram(in)
	pipeline := passes.DefaultPipeline(passes.Options{Workers: scenario.Workers})
	out, err := pipeline.Run(ctx, types, in)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Input = in
	result.Output = out
	result.Rendered = ast.FormatProgram(out)
	result.Stats = passes.Summarize(in, out)

	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(types, result, a); err != nil {
			result.AddError(err)
		}
	}

	slog.Debug("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"assertions", len(scenario.Assertions),
		"failed", len(result.Errors),
	)
	return result, nil
}
