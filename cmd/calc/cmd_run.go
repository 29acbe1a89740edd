package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	lang "github.com/asynts/lang"
)

// runEnv provides the environment for the run command.
type runEnv struct {
	flagQuiet bool
}

// getRunCmd returns the definition of the run command.
func getRunCmd() *cobra.Command {
	env := &runEnv{}
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a file line by line",
		Long: `
Evaluate a file line by line with a persistent environment, printing each
line's result the way the shell would. Blank lines are skipped. The first
failing line stops the run.`,
		Args: cobra.ExactArgs(1),
		Run:  env.runRunCmd,
	}
	cmd.Flags().BoolVarP(&env.flagQuiet, "quiet", "q", false, "Only print errors, not per-line results")
	return cmd
}

func (r *runEnv) runRunCmd(cmd *cobra.Command, args []string) {
	file := args[0]

	f, err := os.Open(file)
	if err != nil {
		failf("%s: cannot read %s: %v", appName, file, err)
	}
	defer f.Close()

	ip := lang.NewRuntime()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		v, err := ip.EvalPersistentSource(line)
		if err != nil {
			where := fmt.Sprintf("%s:%d", file, lineNo)
			failf("%v", lang.AnnotateErrorWithName(err, where, line))
		}
		if !r.flagQuiet {
			fmt.Println(lang.FormatValue(v))
		}
	}
	if err := sc.Err(); err != nil {
		failf("%s: reading %s: %v", appName, file, err)
	}
}
