package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/program"
)

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <program>",
		Short: "Print a program without running passes",
		Long: `Load a program document and print it. Text output is one s-expression
per command; JSON and YAML output re-encode the document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			cmds, err := loadProgram(formatter, args[0])
			if err != nil {
				return err
			}
			if formatter.Structured() {
				return formatter.Success(program.Encode(cmds))
			}
			fmt.Fprint(formatter.Writer, ast.FormatProgram(cmds))
			return nil
		},
	}
}
