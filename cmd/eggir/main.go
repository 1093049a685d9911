// Command eggir runs lowering passes over resolved rule programs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/eggir/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
