// Command-line front end for the calculator language: an interactive shell,
// one-shot evaluation, and a line-oriented file runner.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	lang "github.com/asynts/lang"
)

const appName = "calc"

func main() {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "An integer expression calculator",
		Long: `calc evaluates integer arithmetic expressions: literals, variables,
grouping, invocation of built-in functions, and the operators
+ - * / = ++ --.

Run with no arguments to start the interactive shell.`,
		Args: cobra.NoArgs,
		// Bare "calc" drops straight into the shell.
		RunE: func(cmd *cobra.Command, args []string) error {
			return (&replEnv{}).runReplCmd(cmd, args)
		},
	}

	rootCmd.AddCommand(
		getReplCmd(),
		getEvalCmd(),
		getRunCmd(),
		getVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

// getVersionCmd returns the definition of the version command.
func getVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the compiled version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(lang.Version)
		},
	}
}

// failf prints a formatted message to stderr in red and exits nonzero.
func failf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString(format, args...))
	os.Exit(1)
}
