// Package testutil provides deterministic helpers and fixture programs for
// eggir tests.
package testutil

import "github.com/roach88/eggir/internal/ast"

// AddFunc is the signature of the table function Add(i64, i64) -> i64.
var AddFunc = ast.FuncType{Name: "Add", Input: []ast.Sort{ast.SortI64, ast.SortI64}, Output: ast.SortI64}

// PlusPrim is the i64 addition primitive.
var PlusPrim = ast.Primitive{Name: "+", Input: []ast.Sort{ast.SortI64, ast.SortI64}, Output: ast.SortI64}

// NumFunc is the constructor Num(i64) -> Math.
var NumFunc = ast.FuncType{Name: "Num", Input: []ast.Sort{ast.SortI64}, Output: "Math", IsDatatype: true}

// I64 builds an integer literal expression.
func I64(n int64) ast.Lit {
	return ast.NewLit(ast.Int(n))
}

// LetCmd builds a top-level let.
func LetCmd(name string, e ast.Expr) ast.Command {
	return ast.CoreAction{Action: ast.Let{Name: name, Expr: e}}
}

// AddAndRefs is the canonical example: (let x 3) (Add x x).
func AddAndRefs() []ast.Command {
	x := ast.GlobalRef("x", ast.SortI64)
	return []ast.Command{
		ast.Function{Decl: ast.FunctionDecl{
			Name:   "Add",
			Schema: ast.Schema{Input: []string{"i64", "i64"}, Output: "i64"},
		}},
		LetCmd("x", I64(3)),
		ast.CoreAction{Action: ast.ExprAction{Expr: ast.NewCall(AddFunc, x, x)}},
	}
}

// RuleReferencingGlobal has a rule whose head and a check that reference the
// global y, next to rule-local pattern variables.
func RuleReferencingGlobal() []ast.Command {
	y := ast.GlobalRef("y", ast.SortI64)
	e := ast.LocalRef("e", "Math")
	n := ast.LocalRef("n", ast.SortI64)
	return []ast.Command{
		ast.SortDecl{Name: "Math"},
		ast.Function{Decl: ast.FunctionDecl{
			Name:   "Num",
			Schema: ast.Schema{Input: []string{"i64"}, Output: "Math"},
		}},
		LetCmd("y", I64(2)),
		ast.Rule{
			Body: []ast.Fact{ast.Eq{Exprs: []ast.Expr{e, ast.NewCall(NumFunc, n)}}},
			Head: []ast.Action{ast.Union{Left: e, Right: ast.NewCall(NumFunc, ast.NewCall(PlusPrim, n, y))}},
		},
		ast.Check{Facts: []ast.Fact{ast.Eq{Exprs: []ast.Expr{ast.NewCall(NumFunc, y), ast.NewCall(NumFunc, I64(2))}}}},
	}
}

// ChainedGlobals has a global whose initializer references an earlier one.
func ChainedGlobals() []ast.Command {
	return []ast.Command{
		LetCmd("x", I64(1)),
		LetCmd("y", ast.NewCall(PlusPrim, ast.GlobalRef("x", ast.SortI64), I64(1))),
	}
}
