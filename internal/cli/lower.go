package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/eggir/internal/ast"
	"github.com/roach88/eggir/internal/passes"
	"github.com/roach88/eggir/internal/program"
	"github.com/roach88/eggir/internal/store"
	"github.com/roach88/eggir/internal/typeinfo"
)

// Error codes specific to lower.
const (
	ErrCodePassFailed   = "E008" // Pass pipeline failed
	ErrCodeCheckFailed  = "E009" // Lowered program broke a property
	ErrCodeRecordFailed = "E010" // Run log write failed
)

// LowerOptions holds flags for the lower command.
type LowerOptions struct {
	*RootOptions
	Output  string // output file path
	Record  string // run log database path
	Workers int    // concurrent command rewrites
	Check   bool   // verify properties of the output

	// IDs generates run ids for --record. Defaults to UUIDv7.
	IDs store.IDGenerator
}

// LowerResult is the structured payload of lower.
type LowerResult struct {
	Program      program.Document `json:"program" yaml:"program"`
	Stats        passes.Stats     `json:"stats" yaml:"stats"`
	InputDigest  string           `json:"input_digest,omitempty" yaml:"input_digest,omitempty"`
	OutputDigest string           `json:"output_digest,omitempty" yaml:"output_digest,omitempty"`
	RunID        string           `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Seq          int64            `json:"seq,omitempty" yaml:"seq,omitempty"`
}

// NewLowerCommand creates the lower command.
func NewLowerCommand(rootOpts *RootOptions) *cobra.Command {
	return newLowerCommand(&LowerOptions{RootOptions: rootOpts})
}

func newLowerCommand(opts *LowerOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lower <program>",
		Short: "Run the lowering pipeline over a program",
		Long: `Load a resolved program document (.yaml, .yml, .json or .cue), run the
default pass pipeline and print the lowered program.

Text output prints one command per line. JSON and YAML output wrap the
lowered document and run statistics in a response envelope.

Examples:
  eggir lower prog.yaml
  eggir lower prog.yaml -o lowered.json
  eggir lower prog.cue --record runs.db --check
  eggir lower prog.yaml --workers 8 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the lowered program to a file (format from extension)")
	cmd.Flags().StringVar(&opts.Record, "record", "", "append the run to a SQLite run log")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "rewrite commands concurrently with up to N workers")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "verify the lowered program and fail if a property is broken")

	return cmd
}

func runLower(ctx context.Context, opts *LowerOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Workers < 0 {
		return outputCommandError(formatter, program.ErrCodeGeneric, "--workers must not be negative", nil)
	}

	in, err := loadProgram(formatter, path)
	if err != nil {
		return err
	}

	types := typeinfo.FromProgram(in)
	pipeline := passes.DefaultPipeline(passes.Options{Workers: opts.Workers})
	formatter.VerboseLog("Running passes: %v", pipeline.Names())

	out, err := pipeline.Run(ctx, types, in)
	if err != nil {
		return outputCommandError(formatter, ErrCodePassFailed, err.Error(), nil)
	}

	if opts.Check {
		if err := passes.Verify(types, in, out); err != nil {
			_ = formatter.Error(ErrCodeCheckFailed, "lowered program failed verification", err.Error())
			return WrapExitError(ExitFailure, "verification failed", err)
		}
		formatter.VerboseLog("All properties hold")
	}

	result := LowerResult{
		Program: program.Encode(out),
		Stats:   passes.Summarize(in, out),
	}

	if opts.Output != "" {
		if err := program.WriteFile(opts.Output, out); err != nil {
			return outputCommandError(formatter, program.ErrCodeWriteFailed, err.Error(), nil)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	if opts.Record != "" {
		if err := recordRun(ctx, opts, path, in, out, &result); err != nil {
			return outputCommandError(formatter, ErrCodeRecordFailed, err.Error(), nil)
		}
	}

	if formatter.Structured() {
		return formatter.Success(result)
	}

	fmt.Fprint(formatter.Writer, ast.FormatProgram(out))
	if result.RunID != "" {
		formatter.VerboseLog("Recorded run %s (seq %d)", result.RunID, result.Seq)
	}
	return nil
}

func recordRun(ctx context.Context, opts *LowerOptions, source string, in, out []ast.Command, result *LowerResult) error {
	inDigest, err := program.Digest(in)
	if err != nil {
		return err
	}
	outDigest, err := program.Digest(out)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.Record)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ids := opts.IDs
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}
	run := store.NewRun(ids.Generate(), passes.RemoveGlobalsName, source, inDigest, outDigest, result.Stats)
	seq, err := st.RecordRun(ctx, run)
	if err != nil {
		return err
	}

	result.InputDigest = inDigest
	result.OutputDigest = outDigest
	result.RunID = run.ID
	result.Seq = seq
	slog.Info("run recorded", "id", run.ID, "seq", seq, "db", opts.Record)
	return nil
}
