// Package ast provides the resolved program representation consumed and
// produced by eggir passes.
//
// This package contains the shape catalog, the structural maps that every
// pass reuses, and an s-expression printer. It imports nothing internal
// except invariant, so it stays the foundational layer.
//
// Key design constraints:
//   - Every union (Expr, Callee, Action, Fact, Schedule, Command) is a sealed
//     interface; switches over them are exhaustive
//   - Expressions are trees: children live only in Call.Args
//   - Variable references carry an explicit Binding set by the resolver
//   - Values are immutable once built; maps return fresh trees
package ast
