package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	getopt "github.com/pborman/getopt/v2"
)

// ExitKeyword ends the shell when it makes up the whole input line. It isn't
// a builtin: "exit now" runs an external program named exit.
const ExitKeyword = "exit"

// Help describes the builtins.
func Help(env *Env, args []string) error {
	opts := getopt.New()
	opts.SetProgram("help")
	opts.SetParameters("[NAME...]")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := env.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: help [-h] [NAME...]")
		fmt.Fprintln(w, "Display information about builtin commands.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		opts.PrintOptions(w)
		return nil
	}

	topics := map[string]string{
		ExitKeyword: "Exit the shell.",
	}
	for _, b := range ListBuiltins() {
		topics[b.Name] = b.Short
	}

	names := opts.Args()
	if len(names) == 0 {
		for name := range topics {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(env.Stdout(), 0, 0, 2, ' ', 0)
	defer tw.Flush()
	for _, name := range names {
		short, ok := topics[name]
		if !ok {
			PrintError(env.Stderr(), "No help topics match "+name, nil)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, short)
	}
	return nil
}

var _ BuiltinFunc = Help

func init() {
	addBuiltin("help", "Display information about builtin commands.", Help)
}
