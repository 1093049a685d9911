package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/eggir/internal/program"
	"github.com/roach88/eggir/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Input string // filter by input digest
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs <db>",
		Short: "List recorded pass runs",
		Long: `List the runs appended to a run log by "eggir lower --record", in the
order they were recorded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "only list runs whose input program has this digest")

	return cmd
}

func runRuns(opts *RunsOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	// Open creates missing files, which would hide a mistyped path.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return outputCommandError(formatter, program.ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return outputCommandError(formatter, program.ErrCodeGeneric, err.Error(), nil)
	}
	defer st.Close()

	var runs []store.Run
	if opts.Input != "" {
		runs, err = st.FindByInputDigest(cmd.Context(), opts.Input)
	} else {
		runs, err = st.ListRuns(cmd.Context())
	}
	if err != nil {
		return outputCommandError(formatter, program.ErrCodeGeneric, err.Error(), nil)
	}

	if formatter.Structured() {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tPASS\tSOURCE\tIN\tOUT\tGLOBALS\tREFS\tINPUT DIGEST")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.Seq, r.ID, r.Pass, r.Source, r.InputCommands, r.OutputCommands, r.Globals, r.References, shortDigest(r.InputDigest))
	}
	return tw.Flush()
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
