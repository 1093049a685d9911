package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/program"
)

// newFormatter builds the formatter every command writes through.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting structured output
		Verbose:   opts.Verbose,
	}
}

// loadProgram reads a program document. Load failures are reported through
// the formatter and returned as command errors.
func loadProgram(formatter *OutputFormatter, path string) ([]ast.Command, error) {
	cmds, err := program.LoadFile(path)
	if err != nil {
		var le *program.LoadError
		if errors.As(err, &le) {
			var details any
			if le.Pos.IsValid() {
				details = le.Pos.String()
			}
			return nil, outputCommandError(formatter, le.Code, le.Message, details)
		}
		return nil, outputCommandError(formatter, program.ErrCodeGeneric, err.Error(), nil)
	}
	formatter.VerboseLog("Loaded %d command(s) from %s", len(cmds), path)
	return cmds, nil
}

// outputCommandError reports an error and returns it with exit code 2.
func outputCommandError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
