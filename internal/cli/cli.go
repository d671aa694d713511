// Package cli implements the rotlabel command: diffing and laying out strings the way a rotating label does, and a price ticker demo.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Version is the rotlabel version.
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// UsageError indicates a user-facing mistake (exit code 2).
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

type env struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

type command struct {
	name  string
	usage string
	short string
	run   func(e *env, args []string) error
}

func commands() []*command {
	return []*command{
		{name: "diff", usage: "diff [-strategy S] OLD NEW", short: "Print the edit script that turns OLD into NEW.", run: runDiff},
		{name: "layout", usage: "layout [-east-asian] [-emoji-wide] TEXT", short: "Print the cell layout of TEXT's graphemes.", run: runLayout},
		{name: "ticker", usage: "ticker [-config path] [-strategy S] [-direction D] [-count N] [-seed N] [-interval D]", short: "Run the price ticker demo.", run: runTicker},
		{name: "version", usage: "version", short: "Print the version.", run: runVersion},
	}
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Run has already written an error message to opts.Err || Stderr when it returns a non-zero code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	e := &env{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			e.in = opts.In
		}
		if opts.Out != nil {
			e.out = opts.Out
		}
		if opts.Err != nil {
			e.err = opts.Err
		}
	}

	err := dispatch(e, argv)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0, nil
	}

	var usageErr UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(e.err, "Error: %v\n\n", err)
		writeUsage(e.err)
		return usageErr.ExitCode(), err
	}
	fmt.Fprintf(e.err, "Error: %v\n", err)
	return 1, err
}

func dispatch(e *env, argv []string) error {
	if len(argv) == 0 {
		return usageErrorf("missing required command")
	}

	name := argv[0]
	switch name {
	case "help", "-h", "--help":
		writeUsage(e.out)
		return nil
	}
	for _, c := range commands() {
		if c.name == name {
			return c.run(e, argv[1:])
		}
	}
	return usageErrorf("unknown command: %s", name)
}

func writeUsage(w io.Writer) {
	var b strings.Builder
	b.WriteString("Usage:\n")
	for _, c := range commands() {
		fmt.Fprintf(&b, "  rotlabel %s\n        %s\n", c.usage, c.short)
	}
	_, _ = io.WriteString(w, b.String())
}

// newFlagSet returns a flag set whose parse errors and -h output go to e.err.
func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.err)
	return fs
}

// parseFlags parses args into fs. Parse failures become UsageErrors; -h is passed through as flag.ErrHelp.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return usageErrorf("%s: %v", fs.Name(), err)
}

func runVersion(e *env, args []string) error {
	if len(args) != 0 {
		return usageErrorf("version: unexpected arguments")
	}
	_, err := fmt.Fprintf(e.out, "rotlabel %s\n", Version)
	return err
}
