package passes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/typeinfo"
)

// Pass rewrites a whole program.
// Implementations must not mutate the input program.
type Pass interface {
	Name() string
	Apply(ctx context.Context, types typeinfo.TypeQuery, prog []ast.Command) ([]ast.Command, error)
}

// PassFunc adapts a named function to the Pass interface.
type PassFunc struct {
	N string
	F func(ctx context.Context, types typeinfo.TypeQuery, prog []ast.Command) ([]ast.Command, error)
}

func (p PassFunc) Name() string { return p.N }

func (p PassFunc) Apply(ctx context.Context, types typeinfo.TypeQuery, prog []ast.Command) ([]ast.Command, error) {
	return p.F(ctx, types, prog)
}

// RemoveGlobalsPass wraps RemoveGlobalsWith as a Pass.
func RemoveGlobalsPass(opts Options) Pass {
	return PassFunc{
		N: RemoveGlobalsName,
		F: func(ctx context.Context, types typeinfo.TypeQuery, prog []ast.Command) ([]ast.Command, error) {
			return RemoveGlobalsWith(ctx, types, prog, opts)
		},
	}
}

// Pipeline runs passes left to right, each on the previous one's output.
type Pipeline struct {
	passes []Pass
}

// NewPipeline builds a pipeline from passes.
func NewPipeline(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes}
}

// DefaultPipeline is the post-typecheck pipeline.
func DefaultPipeline(opts Options) *Pipeline {
	return NewPipeline(RemoveGlobalsPass(opts))
}

// Names lists the pass names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// Run applies every pass in order.
func (p *Pipeline) Run(ctx context.Context, types typeinfo.TypeQuery, prog []ast.Command) ([]ast.Command, error) {
	for _, pass := range p.passes {
		before := len(prog)
		out, err := pass.Apply(ctx, types, prog)
		if err != nil {
			return nil, fmt.Errorf("pass %s: %w", pass.Name(), err)
		}
		slog.Debug("pass applied",
			"pass", pass.Name(),
			"commands_in", before,
			"commands_out", len(out),
		)
		prog = out
	}
	return prog, nil
}
