// Package passes implements the post-typecheck rewrites of eggir.
//
// The only rewrite today is remove-globals: every top-level let becomes a
// nullary, unextractable function plus a set that stores the value, and
// every global reference becomes a zero-argument call to that function.
//
//	(let x 3)                     (function x () i64 :unextractable)
//	(Add x x)          becomes    (set (x) 3)
//	                              (Add (x) (x))
//
// Passes are pure functions of their input and a read-only TypeQuery. Input
// is assumed resolved and type-checked; a failed type query is a pipeline
// defect and panics through the invariant package.
package passes
