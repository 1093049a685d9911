package ast

import "fmt"

// Sort identifies a resolved data sort.
type Sort string

// Builtin sorts.
const (
	SortI64    Sort = "i64"
	SortF64    Sort = "f64"
	SortString Sort = "String"
	SortBool   Sort = "bool"
	SortUnit   Sort = "Unit"
)

// BuiltinSorts lists the sorts every program can use without declaring them.
var BuiltinSorts = []Sort{SortI64, SortF64, SortString, SortBool, SortUnit}

// Name returns the sort's name as used in function schemas.
func (s Sort) Name() string {
	return string(s)
}

// SortNames maps sorts to their names.
func SortNames(sorts []Sort) []string {
	if sorts == nil {
		return nil
	}
	names := make([]string, len(sorts))
	for i, s := range sorts {
		names[i] = s.Name()
	}
	return names
}

// Literal is a sealed interface over constant values.
// Only Int, Float, String, Bool and Unit implement it.
type Literal interface {
	literal()
	// Sort returns the builtin sort of the literal.
	Sort() Sort
}

// Int is a 64-bit integer literal.
type Int int64

// Float is a 64-bit floating point literal.
type Float float64

// String is a string literal.
type String string

// Bool is a boolean literal.
type Bool bool

// Unit is the single value of sort Unit.
type Unit struct{}

func (Int) literal()    {}
func (Float) literal()  {}
func (String) literal() {}
func (Bool) literal()   {}
func (Unit) literal()   {}

func (Int) Sort() Sort    { return SortI64 }
func (Float) Sort() Sort  { return SortF64 }
func (String) Sort() Sort { return SortString }
func (Bool) Sort() Sort   { return SortBool }
func (Unit) Sort() Sort   { return SortUnit }

// Span is the source annotation carried by actions.
// The zero Span means "no position".
type Span struct {
	File string
	Line int
	Col  int
}

// IsValid reports whether the span points at a source position.
func (s Span) IsValid() bool {
	return s.Line > 0
}

func (s Span) String() string {
	if !s.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}
