package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	lang "github.com/asynts/lang"
)

const (
	historyFile = ".calc_history"
	prompt      = "> "
)

var helpText = `
Shell commands:
  :help     Show this help
  :vars     List the variables defined this session
  :ast      Toggle printing the parsed tree before each result
  :verbose  Toggle caret-annotated error snippets
  :quit     Exit the shell
`

// replEnv provides the environment for the repl command.
type replEnv struct {
	flagNoColor bool
	flagHistory string

	showTree bool
	verbose  bool
}

// getReplCmd returns the definition of the repl command.
func getReplCmd() *cobra.Command {
	env := &replEnv{}
	cmd := &cobra.Command{
		Use:     "repl",
		Aliases: []string{"shell"},
		Short:   "Start the interactive shell",
		Long: `
Start the interactive shell. Each line is evaluated as one expression and
the result is printed back:

  > x = 5
  <nil>
  > x + 2
  <integer>: 7

Assignments persist for the rest of the session.`,
		Args: cobra.NoArgs,
		RunE: env.runReplCmd,
	}
	cmd.Flags().BoolVar(&env.flagNoColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&env.flagHistory, "history", "", "History file (default ~/"+historyFile+")")
	return cmd
}

func (r *replEnv) runReplCmd(cmd *cobra.Command, args []string) error {
	if r.flagNoColor {
		color.NoColor = true
	}

	fmt.Printf("calc %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", lang.Version)

	histPath := r.flagHistory
	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lang.NewRuntime()

	// Tab completion over builtin names and session variables.
	ln.SetCompleter(func(line string) []string {
		prefix := line
		if i := strings.LastIndexAny(line, " \t(,"); i >= 0 {
			prefix = line[i+1:]
		}
		if prefix == "" {
			return nil
		}
		head := line[:len(line)-len(prefix)]

		var out []string
		for _, name := range ip.NativeNames() {
			if strings.HasPrefix(name, prefix) {
				out = append(out, head+name)
			}
		}
		for name := range ip.Global.Snapshot() {
			if strings.HasPrefix(name, prefix) {
				out = append(out, head+name)
			}
		}
		sort.Strings(out)
		return out
	})

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(code, ":") {
			if r.directive(ip, code) {
				return nil
			}
			continue
		}

		if r.showTree {
			if tree, err := lang.ParseString(code); err == nil {
				fmt.Println(color.YellowString("tree: %s", lang.FormatTree(tree)))
			}
		}

		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			if r.verbose {
				fmt.Fprintln(os.Stderr, color.RedString("%s", lang.AnnotateError(err, code)))
			} else {
				fmt.Fprintln(os.Stderr, color.RedString("%s", lang.FormatError(err)))
			}
			continue
		}
		fmt.Println(color.CyanString("%s", lang.FormatValue(v)))
	}
}

// directive handles a ":" shell command. It reports whether the shell should
// exit.
func (r *replEnv) directive(ip *lang.Interpreter, code string) bool {
	switch fields := strings.Fields(code); fields[0] {
	case ":quit", ":q":
		return true

	case ":help":
		fmt.Print(helpText)

	case ":vars":
		snap := ip.Global.Snapshot()
		if len(snap) == 0 {
			fmt.Println("no variables defined")
			break
		}
		names := make([]string, 0, len(snap))
		for name := range snap {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s = %s\n", name, snap[name])
		}

	case ":ast":
		r.showTree = !r.showTree
		if r.showTree {
			fmt.Println("tree printing on")
		} else {
			fmt.Println("tree printing off")
		}

	case ":verbose":
		r.verbose = !r.verbose
		if r.verbose {
			fmt.Println("verbose errors on")
		} else {
			fmt.Println("verbose errors off")
		}

	default:
		fmt.Printf("unknown command %q. Type :help for commands.\n", fields[0])
	}
	return false
}
