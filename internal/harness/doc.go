// Package harness runs pass scenarios.
//
// A scenario names a program document and a list of assertions about the
// program the default pipeline produces from it:
//
//	name: add_and_refs
//	description: one global referenced twice
//	program: ../programs/add_and_refs.yaml
//	assertions:
//	  - type: command_count
//	    count: 4
//	  - type: no_residual_globals
//	  - type: output_contains
//	    text: "(set (x) 3)"
//
// Failed assertions are collected into the Result rather than stopping the
// run, so one scenario reports every broken expectation at once. Rendered
// output can also be compared against golden files with AssertGolden.
package harness
