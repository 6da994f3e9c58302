// Package driver applies regcalc input lines to the register table.
package driver

import (
	"fmt"
	"io"
	"strconv"

	"nickandperla.net/regcalc/internal/eval"
	"nickandperla.net/regcalc/internal/expr"
	"nickandperla.net/regcalc/internal/scanner"
	"nickandperla.net/regcalc/internal/store"
	"nickandperla.net/regcalc/internal/token"
)

// Notices written to the output for recoverable errors.
const (
	MsgInvalidInput = "Invalid input. Try again"
	MsgUnableToOp   = "Unable to perform operation: %s"
	MsgUnableToEval = "Unable to evaluate %s: %v"
)

// Status reports whether the driver keeps reading after a line.
type Status int

const (
	Running Status = iota
	Terminated
)

func (s Status) String() string {
	if s == Terminated {
		return "TERMINATED"
	}
	return "RUNNING"
}

// Driver reads lines, mutates the register table and prints registers.
type Driver struct {
	table   *store.Memory
	journal store.Journal
	out     *errWriter
	echo    bool
	prompt  func() error
	status  Status
}

// Option configures a Driver.
type Option func(*Driver)

// WithTable sets the register table. The default is an empty table.
func WithTable(t *store.Memory) Option {
	return func(d *Driver) { d.table = t }
}

// WithOutput sets where echoes, results and notices are written.
func WithOutput(w io.Writer) Option {
	return func(d *Driver) { d.out = &errWriter{w: w} }
}

// WithEcho enables or disables the tokenized-line echo.
func WithEcho(on bool) Option {
	return func(d *Driver) { d.echo = on }
}

// WithJournal records every committed definition in j.
func WithJournal(j store.Journal) Option {
	return func(d *Driver) { d.journal = j }
}

// WithPrompt sets a function called by Run before each read.
func WithPrompt(prompt func() error) Option {
	return func(d *Driver) { d.prompt = prompt }
}

// New creates a Driver. Output defaults to io.Discard and echo to on.
func New(opts ...Option) *Driver {
	d := &Driver{
		out:  &errWriter{w: io.Discard},
		echo: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.table == nil {
		d.table = store.NewMemory()
	}
	return d
}

// Table returns the register table.
func (d *Driver) Table() *store.Memory {
	return d.table
}

// Status returns Terminated once quit was read or input ended.
func (d *Driver) Status() Status {
	return d.status
}

// Exec processes one input line. The returned error is non-nil only for
// I/O failures; every other problem is reported on the output and leaves
// the table as it was.
func (d *Driver) Exec(line string) (Status, error) {
	if d.status == Terminated {
		return d.status, nil
	}

	l := scanner.Parse(line)
	if d.echo {
		d.out.println(scanner.Echo(l.Tokens))
	}

	var err error
	switch l.Kind {
	case scanner.Quit:
		d.status = Terminated
	case scanner.Print:
		d.print(l.Names)
	case scanner.Mutation:
		err = d.mutate(l.Register, l.Op, l.Operand)
	default:
		d.out.println(MsgInvalidInput)
	}
	if err == nil && d.out.err != nil {
		err = fmt.Errorf("write output: %w", d.out.err)
	}
	return d.status, err
}

// Run executes lines from r until quit, end of input or an I/O error.
func (d *Driver) Run(r io.Reader) error {
	scan := scanner.New(r)
	for d.status == Running {
		if d.prompt != nil {
			if err := d.prompt(); err != nil {
				return fmt.Errorf("prompt: %w", err)
			}
		}
		line, err := scan.Next()
		if err == io.EOF {
			d.status = Terminated
			break
		}
		if err != nil {
			return fmt.Errorf("read line %d: %w", scan.Line()+1, err)
		}
		if _, err := d.Exec(line); err != nil {
			return fmt.Errorf("line %d: %w", scan.Line(), err)
		}
	}
	return nil
}

func (d *Driver) print(names []string) {
	for _, name := range names {
		v, ok := d.table.Get(name)
		if !ok {
			continue
		}
		n, err := eval.Evaluate(v, d.table)
		if err != nil {
			d.out.printf(MsgUnableToEval+"\n", name, err)
			continue
		}
		d.out.println(strconv.FormatInt(int64(n), 10))
	}
}

// mutate applies "reg op operand". Only journal failures are returned.
func (d *Driver) mutate(reg, op, operand string) error {
	rhs, ok := d.operand(operand)
	if !ok {
		d.out.println(MsgInvalidInput)
		return nil
	}

	next := rhs
	if cur, ok := d.table.Get(reg); ok {
		t, ok := token.Lookup(op)
		if !ok {
			d.out.printf(MsgUnableToOp+"\n", fmt.Sprintf("bad int operator: '%s'", op))
			return nil
		}
		next = expr.NewBinary(t, cur, rhs)
	}
	// The first assignment ignores op, so "x add x" on a new x would
	// otherwise store a reference to itself.
	if next.RefersTo(reg) {
		d.out.printf(MsgUnableToOp+"\n", fmt.Sprintf("register '%s' cannot refer to itself", reg))
		return nil
	}

	if d.journal != nil {
		if err := d.journal.Record(reg, next); err != nil {
			return err
		}
	}
	d.table.Put(reg, next)
	return nil
}

// operand builds the lazy value for the right-hand side of a mutation.
// An existing register is aliased by value; an unknown name becomes a
// reference resolved at evaluation time.
func (d *Driver) operand(s string) (*expr.Value, bool) {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return expr.NewLiteral(int32(n)), true
	}
	if !scanner.IsName(s) {
		return nil, false
	}
	if v, ok := d.table.Get(s); ok {
		return v, true
	}
	return expr.NewReference(s), true
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) println(s string) {
	ew.printf("%s\n", s)
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
