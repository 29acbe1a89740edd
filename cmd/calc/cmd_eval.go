package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	lang "github.com/asynts/lang"
)

// evalEnv provides the environment for the eval command.
type evalEnv struct {
	flagTree bool
	flagDump bool
}

// getEvalCmd returns the definition of the eval command.
func getEvalCmd() *cobra.Command {
	env := &evalEnv{}
	cmd := &cobra.Command{
		Use:     "eval <expression>",
		Aliases: []string{"e"},
		Short:   "Evaluate one expression and print the result",
		Long: `
Evaluate one expression and print the result the way the shell would.
Multiple arguments are joined with spaces, so quoting is optional:

  $ calc eval 1 + 2 '*' 3
  <integer>: 7`,
		Args: cobra.MinimumNArgs(1),
		Run:  env.runEvalCmd,
	}
	cmd.Flags().BoolVar(&env.flagTree, "tree", false, "Print the parsed tree in fully parenthesized form")
	cmd.Flags().BoolVar(&env.flagDump, "dump", false, "Dump the raw syntax tree structure")
	return cmd
}

func (e *evalEnv) runEvalCmd(cmd *cobra.Command, args []string) {
	src := strings.Join(args, " ")

	tree, err := lang.ParseString(src)
	if err != nil {
		failf("%v", lang.AnnotateError(err, src))
	}
	if e.flagTree {
		fmt.Println(lang.FormatTree(tree))
	}
	if e.flagDump {
		spew.Dump(tree)
	}

	ip := lang.NewRuntime()
	v, err := ip.Evaluate(tree)
	if err != nil {
		failf("%v", lang.AnnotateError(err, src))
	}
	fmt.Println(lang.FormatValue(v))
}
