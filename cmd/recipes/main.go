package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
)

const usage = `Usage: recipes [command] [flags]

Commands:
  browse            open the recipe browser (default)
  list              print the recipes matching --category/--search
  export <path>     write matching recipes to .xlsx, .csv or .db

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	name, rest := splitCommand(args)

	var err error
	switch name {
	case "browse":
		err = runBrowse(rest, stderr)
	case "list":
		err = runList(rest, stdout, stderr)
	case "export":
		err = runExport(rest, stdout, stderr)
	case "help":
		printUsage(stdout, newFlagSet("recipes", io.Discard))
		return 0
	default:
		fmt.Fprintf(stderr, "recipes: unknown command %q\n", name)
		printUsage(stderr, newFlagSet("recipes", io.Discard))
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "recipes: %v\n", err)
		return 1
	}
	return 0
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "browse", args
	}
	return args[0], args[1:]
}

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func printUsage(w io.Writer, fs *commandFlags) {
	fmt.Fprint(w, usage)
	fmt.Fprint(w, fs.set.FlagUsages())
}
