package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiteralSorts(t *testing.T) {
	assert.Equal(t, SortI64, Int(1).Sort())
	assert.Equal(t, SortF64, Float(1).Sort())
	assert.Equal(t, SortString, String("s").Sort())
	assert.Equal(t, SortBool, Bool(false).Sort())
	assert.Equal(t, SortUnit, Unit{}.Sort())
}

func TestSortNames(t *testing.T) {
	assert.Nil(t, SortNames(nil))
	assert.Equal(t, []string{"i64", "Math"}, SortNames([]Sort{SortI64, "Math"}))
	assert.Equal(t, "String", SortString.Name())
}

func TestSpan(t *testing.T) {
	assert.False(t, Span{}.IsValid())
	assert.Equal(t, "<unknown>", Span{}.String())
	assert.Equal(t, "prog.egg:4:2", Span{File: "prog.egg", Line: 4, Col: 2}.String())
}

func TestNullaryFunc(t *testing.T) {
	f := NullaryFunc("x", SortI64)
	assert.Equal(t, "x", f.CalleeName())
	assert.Equal(t, SortI64, f.OutputSort())
	assert.Empty(t, f.Input)
	assert.False(t, f.IsDatatype)
	assert.False(t, f.HasDefault)
}
