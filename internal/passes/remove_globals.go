package passes

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/invariant"
	"github.com/roach88/eggir/internal/typeinfo"
)

// RemoveGlobalsName is the pipeline name of the pass.
const RemoveGlobalsName = "remove-globals"

// Options configures RemoveGlobalsWith.
type Options struct {
	// Workers bounds concurrent command rewrites. Values below 2 rewrite
	// sequentially.
	Workers int
}

// RemoveGlobals removes every global from prog. No top-level let and no
// global reference survives; each let is replaced in place by a function
// declaration followed by a set.
func RemoveGlobals(types typeinfo.TypeQuery, prog []ast.Command) []ast.Command {
	out := make([]ast.Command, 0, len(prog)+CountGlobals(prog))
	for _, c := range prog {
		out = RemoveGlobalsCommand(types, c).AppendTo(out)
	}
	return out
}

// RemoveGlobalsWith is RemoveGlobals with commands rewritten concurrently.
// Results are reassembled by input index, so output order equals the
// sequential result. The only error is cancellation of ctx.
func RemoveGlobalsWith(ctx context.Context, types typeinfo.TypeQuery, prog []ast.Command, opts Options) ([]ast.Command, error) {
	if opts.Workers < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return RemoveGlobals(types, prog), nil
	}

	expansions := make([]Expansion, len(prog))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, c := range prog {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			expansions[i] = RemoveGlobalsCommand(types, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", RemoveGlobalsName, err)
	}

	out := make([]ast.Command, 0, len(prog)+CountGlobals(prog))
	for _, e := range expansions {
		out = e.AppendTo(out)
	}
	return out, nil
}

// RemoveGlobalsCommand rewrites a single top-level command.
//
// A top-level let expands to two commands. Every other command keeps its
// kind and structure and only has its expressions rewritten.
func RemoveGlobalsCommand(types typeinfo.TypeQuery, c ast.Command) Expansion {
	core, ok := c.(ast.CoreAction)
	if !ok {
		return One(ast.MapCommandExprs(c, lowerExpr))
	}
	let, ok := core.Action.(ast.Let)
	if !ok {
		return One(ast.CoreAction{Action: ast.MapActionExprs(core.Action, lowerExpr)})
	}

	sort, err := types.OutputType(let.Expr)
	invariant.ExpectNoError(err, fmt.Sprintf("type query for global %q", let.Name))

	decl := ast.Function{Decl: ast.FunctionDecl{
		Name: let.Name,
		Schema: ast.Schema{
			Input:  []string{},
			Output: sort.Name(),
		},
		Default:       nil,
		Merge:         nil,
		MergeAction:   []ast.Action{},
		Cost:          nil,
		Unextractable: true,
	}}
	set := ast.CoreAction{Action: ast.Set{
		Span:  let.Span,
		Func:  ast.NullaryFunc(let.Name, sort),
		Args:  []ast.Expr{},
		Value: lowerExpr(let.Expr),
	}}

	slog.Debug("global lowered",
		"name", let.Name,
		"sort", sort.Name(),
		"pos", let.Span.String(),
	)

	return Two(decl, set)
}

// LowerGlobalRef replaces a global reference with a zero-argument call to
// the function that stores it. Every other node is returned unchanged.
func LowerGlobalRef(e ast.Expr) ast.Expr {
	v, ok := e.(ast.Var)
	if !ok || !v.IsGlobal() {
		return e
	}
	return ast.NewCall(ast.NullaryFunc(v.Name, v.Sort))
}

func lowerExpr(e ast.Expr) ast.Expr {
	return ast.MapExpr(e, LowerGlobalRef)
}

// CountGlobals returns the number of top-level lets in prog.
func CountGlobals(prog []ast.Command) int {
	n := 0
	for _, c := range prog {
		if isGlobalLet(c) {
			n++
		}
	}
	return n
}

func isGlobalLet(c ast.Command) bool {
	core, ok := c.(ast.CoreAction)
	if !ok {
		return false
	}
	_, ok = core.Action.(ast.Let)
	return ok
}
