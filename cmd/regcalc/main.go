// Command regcalc is the lazy register calculator CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"nickandperla.net/regcalc/pkg/regcalc"
)

const usage = `usage: regcalc [-q] [-j journal] [-f file | -e lines]
       regcalc -j journal -H register [-n limit]

  -e lines    process lines (separated by newlines or ';') and exit
  -f file     read lines from file instead of standard input
  -j journal  record every definition in a SQLite journal
  -H register list journaled definitions of register, newest first
  -n limit    show at most limit history entries
  -q          do not echo tokenized input lines
  -h          show this help`

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(args, "e:f:j:H:n:qh")
	if err != nil {
		fmt.Fprintf(stderr, "%v\n%s\n", err, usage)
		return 2
	}
	if optind < len(args) {
		fmt.Fprintf(stderr, "unexpected argument: %s\n%s\n", args[optind], usage)
		return 2
	}

	var (
		evalStr string
		file    string
		journal string
		history string
		limit   int
		quiet   bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			evalStr = opt.Value
		case 'f':
			file = opt.Value
		case 'j':
			journal = opt.Value
		case 'H':
			history = opt.Value
		case 'n':
			limit, err = strconv.Atoi(opt.Value)
			if err != nil || limit < 0 {
				fmt.Fprintf(stderr, "invalid -n value: %s\n", opt.Value)
				return 2
			}
		case 'q':
			quiet = true
		case 'h':
			fmt.Fprintln(stdout, usage)
			return 0
		}
	}
	if evalStr != "" && file != "" {
		fmt.Fprintf(stderr, "-e and -f are mutually exclusive\n%s\n", usage)
		return 2
	}
	if history != "" && journal == "" {
		fmt.Fprintf(stderr, "-H requires -j\n%s\n", usage)
		return 2
	}

	ropts := []regcalc.Option{regcalc.WithOutput(stdout)}
	if quiet {
		ropts = append(ropts, regcalc.WithNoEcho())
	}
	if journal != "" {
		ropts = append(ropts, regcalc.WithJournal(journal))
	}
	if evalStr == "" && file == "" && history == "" && isInteractive(stdin, stdout) {
		ropts = append(ropts, regcalc.WithPrompt(prompter(stdout)))
	}

	runtime, err := regcalc.New(ropts...)
	if err != nil {
		fatalf(stderr, "Error opening journal: %v", err)
		return 1
	}
	defer runtime.Close()

	switch {
	case history != "":
		err = printHistory(stdout, runtime, history, limit)
	case evalStr != "":
		err = runtime.Eval(strings.ReplaceAll(evalStr, ";", "\n"))
	case file != "":
		err = runtime.RunFile(file)
	default:
		err = runtime.Run(stdin)
	}
	if err != nil {
		fatalf(stderr, "Error: %v", err)
		return 1
	}
	return 0
}

func printHistory(w io.Writer, runtime *regcalc.Runtime, name string, limit int) error {
	entries, err := runtime.History(name, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err = fmt.Fprintf(w, "no history for %s\n", strings.ToLower(name))
		return err
	}
	for _, e := range entries {
		session := e.Session
		if len(session) > 8 {
			session = session[:8]
		}
		_, err = fmt.Fprintf(w, "v%-4d %-8s %-16s %s\n", e.Version, session, humanize.Time(e.Ts), e.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

var errorColor = color.New(color.FgRed, color.Bold)

func fatalf(w io.Writer, format string, args ...any) {
	errorColor.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}
