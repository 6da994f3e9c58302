// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner reads regcalc input and splits it into classified lines.
package scanner

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"nickandperla.net/regcalc/internal/token"
)

// Scanner reads input one line at a time.
type Scanner struct {
	reader *bufio.Reader
	line   int // Number of lines returned so far
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the 1-based number of the last line returned by Next.
func (s *Scanner) Line() int {
	return s.line
}

// Next returns the next line without its terminator. A final line with
// no trailing newline is still returned; io.EOF follows it.
func (s *Scanner) Next() (string, error) {
	text, err := s.reader.ReadString('\n')
	if err == io.EOF && text != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	s.line++
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

// Kind classifies an input line.
type Kind int

const (
	Invalid  Kind = iota // anything not matching the forms below
	Quit                 // quit ...
	Print                // print name...
	Mutation             // reg op operand
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "QUIT"
	case Print:
		return "PRINT"
	case Mutation:
		return "MUTATION"
	}
	return "INVALID"
}

// Line is a tokenized and classified input line.
type Line struct {
	Kind   Kind
	Tokens []string

	// Print
	Names []string

	// Mutation
	Register string
	Op       string
	Operand  string
}

var namePattern = regexp.MustCompile(`^\w+$`)

// IsName reports whether s is a valid register name.
func IsName(s string) bool {
	return namePattern.MatchString(s)
}

// Tokenize lowercases a line and splits it on runs of whitespace. A blank
// line yields a single empty token.
func Tokenize(line string) []string {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return []string{""}
	}
	return fields
}

// Parse tokenizes and classifies a line. Mutation operands and operators
// are not validated here; the register must be a valid name.
func Parse(line string) Line {
	tokens := Tokenize(line)
	l := Line{Tokens: tokens}
	switch {
	case tokens[0] == token.KeywordQuit:
		l.Kind = Quit
	case tokens[0] == token.KeywordPrint:
		l.Kind = Print
		l.Names = tokens[1:]
	case len(tokens) == 3 && IsName(tokens[0]):
		l.Kind = Mutation
		l.Register, l.Op, l.Operand = tokens[0], tokens[1], tokens[2]
	}
	return l
}

// Echo formats tokens as a bracketed, comma separated list: [a, add, 5].
func Echo(tokens []string) string {
	return "[" + strings.Join(tokens, ", ") + "]"
}
