// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines the lazy values stored in registers.
package expr

import (
	"strconv"
	"strings"

	"nickandperla.net/regcalc/internal/token"
)

// Kind tags the shape of a Value.
type Kind uint8

const (
	Literal   Kind = iota // signed 32-bit integer
	Reference             // register name, resolved at evaluation time
	Binary                // operator applied to two child values
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Reference:
		return "reference"
	case Binary:
		return "binary"
	}
	return "unknown"
}

// Value is an immutable node in an expression graph. Only the fields
// matching Kind are meaningful. Values may be shared between registers.
type Value struct {
	kind Kind
	lit  int32
	name string
	op   token.Token
	lhs  *Value
	rhs  *Value
}

// NewLiteral creates a literal value.
func NewLiteral(n int32) *Value {
	return &Value{kind: Literal, lit: n}
}

// NewReference creates a reference to the named register.
func NewReference(name string) *Value {
	return &Value{kind: Reference, name: name}
}

// NewBinary creates op(lhs, rhs). It panics if op is not an arithmetic
// operator or either child is nil.
func NewBinary(op token.Token, lhs, rhs *Value) *Value {
	if !op.IsOperator() {
		panic("expr: NewBinary with non-operator " + op.String())
	}
	if lhs == nil || rhs == nil {
		panic("expr: NewBinary with nil operand")
	}
	return &Value{kind: Binary, op: op, lhs: lhs, rhs: rhs}
}

// Kind returns the shape of the value.
func (v *Value) Kind() Kind { return v.kind }

// Int returns the integer held by a Literal.
func (v *Value) Int() int32 { return v.lit }

// Name returns the register named by a Reference.
func (v *Value) Name() string { return v.name }

// Op returns the operator of a Binary.
func (v *Value) Op() token.Token { return v.op }

// Operands returns the children of a Binary.
func (v *Value) Operands() (lhs, rhs *Value) { return v.lhs, v.rhs }

// RefersTo reports whether v is a bare Reference to name.
func (v *Value) RefersTo(name string) bool {
	return v.kind == Reference && v.name == name
}

// MaxRenderNodes bounds how many nodes String renders; the rest is
// elided as "...".
const MaxRenderNodes = 256

// String renders the expression with explicit parentheses, e.g. ((5 + 3) * x).
func (v *Value) String() string {
	return v.Format(MaxRenderNodes)
}

// Format renders at most budget nodes of the expression.
func (v *Value) Format(budget int) string {
	var sb strings.Builder
	v.write(&sb, &budget)
	return sb.String()
}

func (v *Value) write(sb *strings.Builder, budget *int) {
	if *budget <= 0 {
		sb.WriteString("...")
		return
	}
	*budget--
	switch v.kind {
	case Literal:
		sb.WriteString(strconv.FormatInt(int64(v.lit), 10))
	case Reference:
		sb.WriteString(v.name)
	case Binary:
		sb.WriteByte('(')
		v.lhs.write(sb, budget)
		sb.WriteByte(' ')
		sb.WriteString(v.op.Symbol())
		sb.WriteByte(' ')
		v.rhs.write(sb, budget)
		sb.WriteByte(')')
	}
}
