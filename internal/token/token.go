// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines regcalc keywords and arithmetic operators.
package token

// Token represents a regcalc operator.
type Token int

const (
	ILLEGAL Token = iota

	// Arithmetic operators
	ADD      // add
	SUBTRACT // subtract
	MULTIPLY // multiply
	DIVIDE   // divide
)

// Keywords recognized as the first word of a line.
const (
	KeywordQuit  = "quit"
	KeywordPrint = "print"
)

var words = map[string]Token{
	"add":      ADD,
	"subtract": SUBTRACT,
	"multiply": MULTIPLY,
	"divide":   DIVIDE,
}

// Lookup returns the operator named by a lowercase word.
func Lookup(word string) (Token, bool) {
	t, ok := words[word]
	return t, ok
}

// String returns the keyword spelling of a token.
func (t Token) String() string {
	switch t {
	case ADD:
		return "add"
	case SUBTRACT:
		return "subtract"
	case MULTIPLY:
		return "multiply"
	case DIVIDE:
		return "divide"
	}
	return "ILLEGAL"
}

// Symbol returns the infix symbol used when rendering expressions.
func (t Token) Symbol() string {
	switch t {
	case ADD:
		return "+"
	case SUBTRACT:
		return "-"
	case MULTIPLY:
		return "*"
	case DIVIDE:
		return "/"
	}
	return "?"
}

// IsOperator returns true if the token is one of the four arithmetic operators.
func (t Token) IsOperator() bool {
	switch t {
	case ADD, SUBTRACT, MULTIPLY, DIVIDE:
		return true
	}
	return false
}
