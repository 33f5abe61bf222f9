// ulox - interpreter for the ulox scripting language
//
// With a file argument the whole file is run once. Without arguments an
// interactive prompt evaluates one line at a time against persistent globals.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/kolkov/ulox"
)

// version is set at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: ulox [-dt] [script]"
	longUsage  = `Arguments:
  script            run the script file; without it, start a prompt

Debugging arguments:
  -d                print the parsed syntax tree instead of running
  -t                print the token stream instead of running

Other:
  -h                show this help message
  -v                show ulox version and exit
`
	prompt = "> "
)

var errColor = color.New(color.FgRed)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	dumpAST    bool
	dumpTokens bool
	script     string
}

// run is the whole command. It returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, done := parseArgs(args, stdout, stderr)
	if done {
		return code
	}

	// Buffered output for performance; flushed before anything goes to stderr.
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if opts.script == "" {
		return repl(opts, stdin, out, stderr)
	}
	return runFile(opts, out, stderr)
}

// parseArgs parses the flags. When done is true the command is finished
// and code is its exit status.
func parseArgs(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	parsed, optind, err := getopt.Getopts(args, "hvdt")
	if err != nil {
		errorf(stderr, "%v", err)
		fmt.Fprintln(stderr, shortUsage)
		return opts, ulox.ExitUsage, true
	}

	for _, opt := range parsed {
		switch opt.Option {
		case 'd':
			opts.dumpAST = true
		case 't':
			opts.dumpTokens = true
		case 'v':
			fmt.Fprintf(stdout, "ulox version %s\n", version)
			fmt.Fprintf(stdout, "  commit: %s\n", commit)
			fmt.Fprintf(stdout, "  built:  %s\n", date)
			fmt.Fprintln(stdout, "  regex:  coregex")
			return opts, ulox.ExitOK, true
		default: // case 'h':
			fmt.Fprintf(stdout, "ulox %s\n\n%s\n\n%s", version, shortUsage, longUsage)
			return opts, ulox.ExitOK, true
		}
	}

	rest := args[optind:]
	switch len(rest) {
	case 0:
	case 1:
		opts.script = rest[0]
	default:
		fmt.Fprintln(stderr, shortUsage)
		return opts, ulox.ExitUsage, true
	}
	return opts, ulox.ExitOK, false
}

// runFile runs a script file once.
func runFile(opts options, out *bufio.Writer, stderr io.Writer) int {
	src, err := os.ReadFile(opts.script)
	if err != nil {
		errorf(stderr, "cannot read script %s: %v", opts.script, err)
		return ulox.ExitUsage
	}

	prog, err := ulox.Compile(string(src))
	if err != nil {
		report(stderr, err)
		return ulox.ExitCode(err)
	}

	if dump(opts, prog, out) {
		return ulox.ExitOK
	}

	_, err = prog.Run(&ulox.Config{Output: out})
	if err != nil {
		out.Flush()
		report(stderr, err)
		return ulox.ExitCode(err)
	}
	return ulox.ExitOK
}

// repl evaluates stdin line by line until end of input. Errors are
// reported and the loop continues; globals survive between lines.
func repl(opts options, stdin io.Reader, out *bufio.Writer, stderr io.Writer) int {
	session := ulox.NewSession(&ulox.Config{Output: out})
	scanner := bufio.NewScanner(stdin)

	for {
		out.WriteString(prompt)
		out.Flush()

		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if opts.dumpAST || opts.dumpTokens {
			prog, err := ulox.Compile(line)
			if err != nil {
				report(stderr, err)
				continue
			}
			dump(opts, prog, out)
			continue
		}

		err := session.Eval(line)
		out.Flush()
		if err != nil {
			report(stderr, err)
		}
	}
	out.WriteString("\n")

	if err := scanner.Err(); err != nil {
		errorf(stderr, "reading input: %v", err)
		return ulox.ExitSoftware
	}
	return ulox.ExitOK
}

// dump writes the requested debug views of prog and reports whether any
// was requested.
func dump(opts options, prog *ulox.Program, out io.Writer) bool {
	if opts.dumpTokens {
		fmt.Fprint(out, prog.Tokens())
	}
	if opts.dumpAST {
		fmt.Fprint(out, prog.AST())
	}
	return opts.dumpAST || opts.dumpTokens
}

// report writes an interpreter error, one diagnostic per line.
func report(w io.Writer, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		errColor.Fprintln(w, line)
	}
}

// errorf writes a command error prefixed with the program name.
func errorf(w io.Writer, format string, args ...any) {
	errColor.Fprintf(w, "ulox: "+format+"\n", args...)
}
