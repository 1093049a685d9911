// Package invariant provides contract assertions for eggir.
//
// Passes run on input that upstream stages (resolver, type checker) have
// already validated. A violated expectation is a defect in the pipeline, not a
// user error, so every function here panics instead of returning an error.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Invariant checks internal consistency during execution.
// Panics with INVARIANT VIOLATION if condition is false.
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// ExpectNoError panics if err is not nil.
// Use for operations that cannot fail on well-formed input.
func ExpectNoError(err error, msg string) {
	if err != nil {
		fail("INVARIANT", "%s must not fail: %v", msg, err)
	}
}

// Unreachable panics for a variant an exhaustive switch does not know.
// Newly added union members must be handled explicitly, never dropped.
func Unreachable(what string, v any) {
	fail("INVARIANT", "unhandled %s variant %T", what, v)
}

// fail panics with a formatted message and the caller's location.
func fail(kind, format string, args ...any) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]any{kind}, args...)...)
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
