package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var promptColor = color.New(color.FgCyan)

// isInteractive reports whether both ends of the session are terminals.
func isInteractive(stdin io.Reader, stdout io.Writer) bool {
	in, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return false
	}
	out, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
}

// prompter returns a prompt function that writes "> " to w.
func prompter(w io.Writer) func() error {
	return func() error {
		_, err := promptColor.Fprint(w, "> ")
		return err
	}
}
