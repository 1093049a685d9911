package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/eggir/internal/program"
)

// DigestResult is the structured payload of digest.
type DigestResult struct {
	Program  string `json:"program" yaml:"program"`
	Digest   string `json:"digest" yaml:"digest"`
	Commands int    `json:"commands" yaml:"commands"`
}

// NewDigestCommand creates the digest command.
func NewDigestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "digest <program>",
		Short: "Print the content digest of a program",
		Long: `Print the SHA-256 digest of a program's canonical JSON form.

The digest depends only on the program, not on the document format or
field order it was written in.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			cmds, err := loadProgram(formatter, args[0])
			if err != nil {
				return err
			}
			digest, err := program.Digest(cmds)
			if err != nil {
				return outputCommandError(formatter, program.ErrCodeGeneric, err.Error(), nil)
			}
			if formatter.Structured() {
				return formatter.Success(DigestResult{Program: args[0], Digest: digest, Commands: len(cmds)})
			}
			return formatter.Success(digest)
		},
	}
}
