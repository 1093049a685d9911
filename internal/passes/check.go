package passes

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/typeinfo"
)

// Property names reported by PropertyError.
const (
	PropertyNoResidualGlobals = "no_residual_globals"
	PropertyPairing           = "paired_declarations"
	PropertyCardinality       = "cardinality"
	PropertyReferences        = "reference_substitution"
	PropertyIdempotent        = "idempotent"
)

// PropertyError reports a lowered program that breaks a guarantee of
// remove-globals. Index is the offending output command, or -1.
type PropertyError struct {
	Property string
	Index    int
	Message  string
}

func (e *PropertyError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: command %d: %s", e.Property, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Property, e.Message)
}

// CheckNoResidualGlobals verifies that out has no top-level let and no
// global reference anywhere.
func CheckNoResidualGlobals(out []ast.Command) error {
	for i, c := range out {
		if isGlobalLet(c) {
			return &PropertyError{Property: PropertyNoResidualGlobals, Index: i, Message: "top-level let survived: " + ast.Format(c)}
		}
		if refs := ast.GlobalRefs(c); len(refs) > 0 {
			return &PropertyError{Property: PropertyNoResidualGlobals, Index: i, Message: fmt.Sprintf("global reference %q survived", refs[0])}
		}
	}
	return nil
}

// CheckPairing verifies that every global of in is declared in out as an
// unextractable nullary function immediately followed by the only set that
// targets it.
func CheckPairing(in, out []ast.Command) error {
	for _, name := range globalNames(in) {
		declAt := -1
		sets := 0
		for i, c := range out {
			if fn, ok := c.(ast.Function); ok && fn.Decl.Name == name {
				declAt = i
			}
			if isNullarySet(c, name) {
				sets++
			}
		}
		if declAt < 0 {
			return &PropertyError{Property: PropertyPairing, Index: -1, Message: fmt.Sprintf("no declaration for global %q", name)}
		}
		decl := out[declAt].(ast.Function).Decl
		if !decl.Unextractable || len(decl.Schema.Input) != 0 {
			return &PropertyError{Property: PropertyPairing, Index: declAt, Message: fmt.Sprintf("declaration of %q is not an unextractable nullary function", name)}
		}
		if declAt+1 >= len(out) || !isNullarySet(out[declAt+1], name) {
			return &PropertyError{Property: PropertyPairing, Index: declAt, Message: fmt.Sprintf("declaration of %q is not followed by its set", name)}
		}
		if sets != 1 {
			return &PropertyError{Property: PropertyPairing, Index: declAt, Message: fmt.Sprintf("global %q has %d sets, want 1", name, sets)}
		}
	}
	return nil
}

// CheckCardinality verifies len(out) == len(in) + number of globals.
func CheckCardinality(in, out []ast.Command) error {
	want := len(in) + CountGlobals(in)
	if len(out) != want {
		return &PropertyError{Property: PropertyCardinality, Index: -1, Message: fmt.Sprintf("got %d commands, want %d", len(out), want)}
	}
	return nil
}

// CheckReferences verifies that each global reference of in became exactly
// one zero-argument call in out. Zero-argument calls already present in in
// are carried over and count on both sides.
func CheckReferences(in, out []ast.Command) error {
	want := make(map[string]int)
	for _, c := range in {
		for _, name := range ast.GlobalRefs(c) {
			want[name]++
		}
	}
	for _, name := range globalNames(in) {
		for _, c := range in {
			want[name] += ast.NullaryCalls(c, name)
		}
		got := 0
		for _, c := range out {
			got += ast.NullaryCalls(c, name)
		}
		if got != want[name] {
			return &PropertyError{Property: PropertyReferences, Index: -1, Message: fmt.Sprintf("global %q: %d calls, want %d", name, got, want[name])}
		}
	}
	return nil
}

// CheckIdempotent verifies that lowering out again changes nothing.
func CheckIdempotent(types typeinfo.TypeQuery, out []ast.Command) error {
	again := RemoveGlobals(types, out)
	if len(again) != len(out) {
		return &PropertyError{Property: PropertyIdempotent, Index: -1, Message: fmt.Sprintf("second run produced %d commands, want %d", len(again), len(out))}
	}
	for i := range out {
		if !reflect.DeepEqual(out[i], again[i]) {
			return &PropertyError{Property: PropertyIdempotent, Index: i, Message: fmt.Sprintf("%s became %s", ast.Format(out[i]), ast.Format(again[i]))}
		}
	}
	return nil
}

// Verify runs every property check and joins the failures.
func Verify(types typeinfo.TypeQuery, in, out []ast.Command) error {
	return errors.Join(
		CheckNoResidualGlobals(out),
		CheckPairing(in, out),
		CheckCardinality(in, out),
		CheckReferences(in, out),
		CheckIdempotent(types, out),
	)
}

func globalNames(prog []ast.Command) []string {
	var names []string
	for _, c := range prog {
		if core, ok := c.(ast.CoreAction); ok {
			if let, ok := core.Action.(ast.Let); ok {
				names = append(names, let.Name)
			}
		}
	}
	return names
}

func isNullarySet(c ast.Command, name string) bool {
	core, ok := c.(ast.CoreAction)
	if !ok {
		return false
	}
	set, ok := core.Action.(ast.Set)
	return ok && set.Func.Name == name && len(set.Func.Input) == 0 && len(set.Args) == 0
}
