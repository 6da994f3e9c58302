package regcalc

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"nickandperla.net/regcalc/internal/driver"
	"nickandperla.net/regcalc/internal/store"
)

// ErrNoJournal is returned by History when no journal is configured.
var ErrNoJournal = errors.New("no journal configured")

// Runtime is the regcalc interpreter runtime.
type Runtime struct {
	driver        *driver.Driver
	journal       store.HistoryStore
	output        io.Writer
	prompt        func() error
	session       string
	journalPath   string
	memoryJournal bool
	noEcho        bool
}

// New creates a new regcalc runtime with the given options.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		output: os.Stdout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.session == "" {
		r.session = uuid.NewString()
	}

	switch {
	case r.journalPath != "":
		j, err := store.NewSQLite(r.journalPath, r.session)
		if err != nil {
			return nil, err
		}
		r.journal = j
	case r.memoryJournal:
		r.journal = store.NewMemoryJournal(r.session)
	}

	driverOpts := []driver.Option{
		driver.WithOutput(r.output),
		driver.WithEcho(!r.noEcho),
	}
	if r.journal != nil {
		driverOpts = append(driverOpts, driver.WithJournal(r.journal))
	}
	if r.prompt != nil {
		driverOpts = append(driverOpts, driver.WithPrompt(r.prompt))
	}
	r.driver = driver.New(driverOpts...)

	return r, nil
}

// Exec processes a single line. It returns true once the runtime has
// terminated.
func (r *Runtime) Exec(line string) (bool, error) {
	status, err := r.driver.Exec(line)
	return status == driver.Terminated, err
}

// Eval processes every line of input.
func (r *Runtime) Eval(input string) error {
	return r.driver.Run(strings.NewReader(input))
}

// Run processes lines from reader until quit or end of input.
func (r *Runtime) Run(reader io.Reader) error {
	return r.driver.Run(reader)
}

// RunFile processes the lines of a file.
func (r *Runtime) RunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Run(f)
}

// Registers returns the names of all defined registers in sorted order.
func (r *Runtime) Registers() []string {
	return r.driver.Table().Names()
}

// Session returns the session id stamped on journal rows.
func (r *Runtime) Session() string {
	return r.session
}

// History returns journaled definitions of name, newest first.
func (r *Runtime) History(name string, limit int) ([]VersionEntry, error) {
	if r.journal == nil {
		return nil, ErrNoJournal
	}
	return r.journal.GetHistory(strings.ToLower(name), limit)
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.journal != nil {
		return r.journal.Close()
	}
	return nil
}
