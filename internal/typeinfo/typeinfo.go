// Package typeinfo provides the read-only type query service that passes
// consult after type checking.
package typeinfo

import (
	"fmt"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/invariant"
)

// TypeQuery answers the resolved output sort of an expression.
type TypeQuery interface {
	OutputType(e ast.Expr) (ast.Sort, error)
}

// UnresolvedError reports an expression whose sort is not known.
// On type-checked input this never happens.
type UnresolvedError struct {
	Expr   string
	Sort   ast.Sort
	Reason string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved type for %s: %s", e.Expr, e.Reason)
}

// TypeInfo holds the sorts and function signatures produced by the type
// checker. It is not mutated after construction, so concurrent queries are
// safe.
type TypeInfo struct {
	sorts     map[ast.Sort]bool
	functions map[string]ast.FuncType
}

// New returns a TypeInfo that knows the builtin sorts.
func New() *TypeInfo {
	ti := &TypeInfo{
		sorts:     make(map[ast.Sort]bool, len(ast.BuiltinSorts)),
		functions: make(map[string]ast.FuncType),
	}
	for _, s := range ast.BuiltinSorts {
		ti.sorts[s] = true
	}
	return ti
}

// FromProgram builds a TypeInfo from the sort and function declarations of
// an already checked program.
func FromProgram(cmds []ast.Command) *TypeInfo {
	ti := New()
	for _, c := range cmds {
		switch c := c.(type) {
		case ast.SortDecl:
			ti.DeclareSort(ast.Sort(c.Name))
		case ast.Function:
			input := make([]ast.Sort, len(c.Decl.Schema.Input))
			for i, name := range c.Decl.Schema.Input {
				input[i] = ast.Sort(name)
			}
			ti.DeclareFunction(ast.FuncType{
				Name:       c.Decl.Name,
				Input:      input,
				Output:     ast.Sort(c.Decl.Schema.Output),
				HasDefault: c.Decl.Default != nil,
			})
		}
	}
	return ti
}

// DeclareSort registers a user sort.
func (ti *TypeInfo) DeclareSort(s ast.Sort) {
	invariant.Precondition(s != "", "sort name must not be empty")
	ti.sorts[s] = true
}

// DeclareFunction registers a function signature.
func (ti *TypeInfo) DeclareFunction(f ast.FuncType) {
	invariant.Precondition(f.Name != "", "function name must not be empty")
	ti.functions[f.Name] = f
}

// HasSort reports whether s is builtin or declared.
func (ti *TypeInfo) HasSort(s ast.Sort) bool {
	return ti.sorts[s]
}

// Function looks up a declared function signature.
func (ti *TypeInfo) Function(name string) (ast.FuncType, bool) {
	f, ok := ti.functions[name]
	return f, ok
}

// OutputType returns the resolved sort of e.
func (ti *TypeInfo) OutputType(e ast.Expr) (ast.Sort, error) {
	var sort ast.Sort
	switch e := e.(type) {
	case ast.Lit:
		sort = e.Value.Sort()
	case ast.Var:
		sort = e.Sort
	case ast.Call:
		sort = e.Head.OutputSort()
	default:
		invariant.Unreachable("expression", e)
	}

	if sort == "" {
		return "", &UnresolvedError{Expr: ast.FormatExpr(e), Reason: "no sort recorded"}
	}
	if !ti.sorts[sort] {
		return "", &UnresolvedError{Expr: ast.FormatExpr(e), Sort: sort, Reason: fmt.Sprintf("sort %q is not declared", sort)}
	}
	return sort, nil
}
