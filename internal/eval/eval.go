// Package eval evaluates lazy register values.
package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/ahrtr/gocontainer/set"
	"github.com/edwingeng/deque"

	"nickandperla.net/regcalc/internal/expr"
	"nickandperla.net/regcalc/internal/token"
)

// Table is the read-only view of the registers consulted during evaluation.
type Table interface {
	Get(name string) (*expr.Value, bool)
}

var (
	// ErrUnresolvedReference is returned when a reference names a register
	// that does not exist at evaluation time.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrDivisionByZero is returned when a divide evaluates its rhs to zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrCyclicReference is returned when resolving a reference reaches a
	// register that is already being resolved.
	ErrCyclicReference = errors.New("cyclic reference")
)

type step uint8

const (
	stepVisit   step = iota // push children or a leaf result
	stepApply               // combine the two topmost results
	stepRelease             // a reference finished resolving
)

type task struct {
	step step
	v    *expr.Value
}

// evaluation holds the state of a single Evaluate call.
type evaluation struct {
	table   Table
	work    deque.Deque   // pending tasks, used as a stack
	results deque.Deque   // int32 operands, used as a stack
	active  set.Interface // registers currently being resolved
	memo    map[*expr.Value]int32
}

// Evaluate computes the integer value of v against table.
//
// Evaluation is post-order: lhs, then rhs, then the operator. It runs on
// an explicit work stack, so expression depth is bounded by memory rather
// than by the goroutine stack. Results are memoized per node for the
// duration of the call, so a subtree shared by several parents is
// evaluated once.
func Evaluate(v *expr.Value, table Table) (int32, error) {
	ev := &evaluation{
		table:   table,
		work:    deque.NewDeque(),
		results: deque.NewDeque(),
		active:  set.New(),
		memo:    make(map[*expr.Value]int32),
	}
	return ev.run(v)
}

func (ev *evaluation) run(root *expr.Value) (int32, error) {
	ev.work.PushBack(task{step: stepVisit, v: root})
	for ev.work.Len() > 0 {
		t := ev.work.PopBack().(task)
		switch t.step {
		case stepVisit:
			if err := ev.visit(t.v); err != nil {
				return 0, err
			}
		case stepApply:
			rhs := ev.results.PopBack().(int32)
			lhs := ev.results.PopBack().(int32)
			n, err := Apply(t.v.Op(), lhs, rhs)
			if err != nil {
				return 0, err
			}
			ev.memo[t.v] = n
			ev.results.PushBack(n)
		case stepRelease:
			ev.active.Remove(t.v.Name())
			ev.memo[t.v] = ev.results.Back().(int32)
		}
	}
	return ev.results.PopBack().(int32), nil
}

func (ev *evaluation) visit(v *expr.Value) error {
	if n, ok := ev.memo[v]; ok {
		ev.results.PushBack(n)
		return nil
	}
	switch v.Kind() {
	case expr.Literal:
		ev.results.PushBack(v.Int())
	case expr.Reference:
		name := v.Name()
		if ev.active.Contains(name) {
			return fmt.Errorf("%w: %s", ErrCyclicReference, name)
		}
		target, ok := ev.table.Get(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnresolvedReference, name)
		}
		ev.active.Add(name)
		ev.work.PushBack(task{step: stepRelease, v: v})
		ev.work.PushBack(task{step: stepVisit, v: target})
	case expr.Binary:
		lhs, rhs := v.Operands()
		// Stack order: lhs is popped and finished first.
		ev.work.PushBack(task{step: stepApply, v: v})
		ev.work.PushBack(task{step: stepVisit, v: rhs})
		ev.work.PushBack(task{step: stepVisit, v: lhs})
	default:
		return fmt.Errorf("unknown value kind %v", v.Kind())
	}
	return nil
}

// Apply performs one 32-bit operation. add, subtract and multiply wrap on
// overflow; divide truncates toward zero.
func Apply(op token.Token, lhs, rhs int32) (int32, error) {
	switch op {
	case token.ADD:
		return lhs + rhs, nil
	case token.SUBTRACT:
		return lhs - rhs, nil
	case token.MULTIPLY:
		return lhs * rhs, nil
	case token.DIVIDE:
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		if lhs == math.MinInt32 && rhs == -1 {
			return math.MinInt32, nil
		}
		return lhs / rhs, nil
	}
	return 0, fmt.Errorf("bad int operator: '%s'", op)
}
