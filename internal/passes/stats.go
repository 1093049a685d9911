package passes

import "github.com/roach88/eggir/internal/ast"

// Stats summarises one remove-globals run.
type Stats struct {
	InputCommands  int `json:"input_commands" yaml:"input_commands"`
	OutputCommands int `json:"output_commands" yaml:"output_commands"`
	Globals        int `json:"globals" yaml:"globals"`
	References     int `json:"references" yaml:"references"`
}

// Summarize computes Stats from a program and its lowered form.
func Summarize(in, out []ast.Command) Stats {
	refs := 0
	for _, c := range in {
		refs += len(ast.GlobalRefs(c))
	}
	return Stats{
		InputCommands:  len(in),
		OutputCommands: len(out),
		Globals:        CountGlobals(in),
		References:     refs,
	}
}
