package passes

import (
	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/invariant"
)

// Expansion is the result of rewriting one top-level command: zero, one or
// two commands in output order.
type Expansion struct {
	cmds [2]ast.Command
	n    int
}

// None is an empty expansion.
func None() Expansion {
	return Expansion{}
}

// One is an expansion of a single command.
func One(c ast.Command) Expansion {
	invariant.Precondition(c != nil, "expanded command must not be nil")
	return Expansion{cmds: [2]ast.Command{c}, n: 1}
}

// Two is an expansion into first followed by second.
func Two(first, second ast.Command) Expansion {
	invariant.Precondition(first != nil && second != nil, "expanded commands must not be nil")
	return Expansion{cmds: [2]ast.Command{first, second}, n: 2}
}

// Len returns the number of commands.
func (e Expansion) Len() int {
	return e.n
}

// Commands returns the commands in order.
func (e Expansion) Commands() []ast.Command {
	out := make([]ast.Command, e.n)
	copy(out, e.cmds[:e.n])
	return out
}

// AppendTo appends the commands to dst.
func (e Expansion) AppendTo(dst []ast.Command) []ast.Command {
	return append(dst, e.cmds[:e.n]...)
}
