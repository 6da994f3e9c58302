// Package regcalc provides the public API for the regcalc register calculator.
package regcalc

import (
	"io"

	"nickandperla.net/regcalc/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sets the io.Writer for echoes, results and notices.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.output = w
	}
}

// WithNoEcho disables the tokenized-line echo.
func WithNoEcho() Option {
	return func(r *Runtime) {
		r.noEcho = true
	}
}

// WithJournal records every committed definition in a SQLite journal at path.
func WithJournal(path string) Option {
	return func(r *Runtime) {
		r.journalPath = path
	}
}

// WithMemoryJournal records definitions in memory (for testing).
func WithMemoryJournal() Option {
	return func(r *Runtime) {
		r.memoryJournal = true
	}
}

// WithSession sets the session id stamped on journal rows. By default a
// random UUID is used.
func WithSession(id string) Option {
	return func(r *Runtime) {
		r.session = id
	}
}

// WithPrompt sets a function called before each line is read.
func WithPrompt(prompt func() error) Option {
	return func(r *Runtime) {
		r.prompt = prompt
	}
}

// VersionEntry is one recorded definition of a register.
type VersionEntry = store.VersionEntry
