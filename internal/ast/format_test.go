package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatExpr_Literals(t *testing.T) {
	tests := []struct {
		lit  Literal
		want string
	}{
		{Int(-3), "-3"},
		{Float(2), "2.0"},
		{Float(1.5), "1.5"},
		{String("a \"b\""), `"a \"b\""`},
		{Bool(true), "true"},
		{Unit{}, "()"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatExpr(NewLit(tt.lit)))
	}
}

func TestFormat_Commands(t *testing.T) {
	cost := 2
	x := GlobalRef("x", SortI64)
	lowered := NewCall(NullaryFunc("x", SortI64))

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"let", CoreAction{Action: Let{Name: "x", Expr: NewLit(Int(3))}}, "(let x 3)"},
		{"set", CoreAction{Action: Set{Func: NullaryFunc("x", SortI64), Value: NewLit(Int(3))}}, "(set (x) 3)"},
		{"delete", CoreAction{Action: Change{Kind: ChangeDelete, Func: add, Args: []Expr{x, lowered}}}, "(delete (Add x (x)))"},
		{"union", CoreAction{Action: Union{Left: x, Right: lowered}}, "(union x (x))"},
		{"panic", CoreAction{Action: Panic{Message: "no"}}, `(panic "no")`},
		{
			"generated function",
			Function{Decl: FunctionDecl{Name: "x", Schema: Schema{Input: []string{}, Output: "i64"}, Unextractable: true}},
			"(function x () i64 :unextractable)",
		},
		{
			"function with options",
			Function{Decl: FunctionDecl{
				Name:        "best",
				Schema:      Schema{Input: []string{"i64", "String"}, Output: "i64"},
				Default:     NewLit(Int(0)),
				Merge:       NewCall(Primitive{Name: "min", Output: SortI64}, LocalRef("old", SortI64), LocalRef("new", SortI64)),
				MergeAction: []Action{Panic{Message: "m"}},
				Cost:        &cost,
			}},
			`(function best (i64 String) i64 :default 0 :merge (min old new) :on_merge ((panic "m")) :cost 2)`,
		},
		{"sort", SortDecl{Name: "Math"}, "(sort Math)"},
		{"presort", SortDecl{Name: "IntVec", Presort: "Vec", PresortArgs: []Expr{x}}, "(sort IntVec (Vec x))"},
		{"ruleset", AddRuleset{Name: "opt"}, "(ruleset opt)"},
		{
			"rule",
			Rule{Name: "fold", Ruleset: "opt", Body: []Fact{Eq{Exprs: []Expr{LocalRef("e", SortI64), x}}}, Head: []Action{Union{Left: LocalRef("e", SortI64), Right: lowered}}},
			`(rule ((= e x)) ((union e (x))) :ruleset opt :name "fold")`,
		},
		{
			"schedule",
			RunSchedule{Schedule: Sequence{Schedules: []Schedule{Saturate{Schedule: RunRuleset{Ruleset: "opt"}}, Repeat{Times: 3, Schedule: RunRuleset{Until: []Fact{FactExpr{Expr: x}}}}}}},
			"(run-schedule (seq (saturate (run opt)) (repeat 3 (run :until (x)))))",
		},
		{"check", Check{Facts: []Fact{FactExpr{Expr: lowered}}}, "(check (x))"},
		{"print-function", PrintTable{Name: "x", N: 5}, "(print-function x 5)"},
		{"print-size", PrintSize{Name: "x"}, "(print-size x)"},
		{"output", Output{File: "out.txt", Exprs: []Expr{lowered}}, `(output "out.txt" (x))`},
		{"push", Push{N: 1}, "(push 1)"},
		{"pop", Pop{N: 2}, "(pop 2)"},
		{"fail", Fail{Command: Check{Facts: []Fact{FactExpr{Expr: x}}}}, "(fail (check x))"},
		{"input", Input{Name: "edge", File: "edge.csv"}, `(input edge "edge.csv")`},
		{"set-option", SetOption{Name: "node_limit", Value: NewLit(Int(100))}, "(set-option node_limit 100)"},
		{"stats", PrintOverallStatistics{}, "(print-stats)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.cmd))
		})
	}
}

func TestFormatProgram_OneCommandPerLine(t *testing.T) {
	prog := []Command{Push{N: 1}, Pop{N: 1}}
	assert.Equal(t, "(push 1)\n(pop 1)\n", FormatProgram(prog))
	assert.Equal(t, "", FormatProgram(nil))
}
