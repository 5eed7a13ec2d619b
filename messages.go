// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"fmt"
	"slices"
)

// Origin identifies the pipeline stage that reported a diagnostic.
type Origin byte

// Constants defining the valid Origin values.
const (
	OriginLexer  Origin = iota + 1 // lexical analysis
	OriginParser                   // syntax analysis
)

func (o Origin) String() string {
	switch o {
	case OriginLexer:
		return "lexer"
	case OriginParser:
		return "parser"
	default:
		return "unknown"
	}
}

// ErrorKind classifies a diagnostic.
type ErrorKind byte

// Lexical error kinds.
const (
	NoError        ErrorKind = iota
	IOError                  // the source could not be read
	UnclosedString           // end of input inside a string
	UnclosedEscape           // end of input inside an escape sequence
	InvalidHexDigit          // bad digit in a \u escape
	UnknownEscape            // unrecognized character after \
	InvalidLiteral           // not one of true, false, null
	UnexpectedChar           // a character that cannot start or continue a lexeme
	InvalidNumber            // malformed numeral
)

// Syntactic error kinds.
const (
	ExpectedArray ErrorKind = iota + 32
	ExpectedObject
	ExpectedValue
	ExpectedLiteral
	ExpectedNumber
	ExpectedString
	UnclosedArray
	UnclosedObject
	ExpectedSeparator
	ExpectedNameSeparator
	ExpectedMemberName
	EmptyMemberName
	DuplicateMemberName
	NotContainer
	UnexpectedLexeme
	TooDeep
)

var kindStr = map[ErrorKind]string{
	NoError:         "no error",
	IOError:         "I/O error",
	UnclosedString:  "unclosed string",
	UnclosedEscape:  "unclosed escape sequence",
	InvalidHexDigit: "invalid hex digit",
	UnknownEscape:   "unknown escape",
	InvalidLiteral:  "invalid literal",
	UnexpectedChar:  "unexpected character",
	InvalidNumber:   "invalid number",

	ExpectedArray:         "expected array",
	ExpectedObject:        "expected object",
	ExpectedValue:         "expected value",
	ExpectedLiteral:       "expected literal",
	ExpectedNumber:        "expected number",
	ExpectedString:        "expected string",
	UnclosedArray:         "unclosed array",
	UnclosedObject:        "unclosed object",
	ExpectedSeparator:     "expected separator",
	ExpectedNameSeparator: "expected name separator",
	ExpectedMemberName:    "expected member name",
	EmptyMemberName:       "empty member name",
	DuplicateMemberName:   "duplicate member name",
	NotContainer:          "parent is not a container",
	UnexpectedLexeme:      "unexpected lexeme",
	TooDeep:               "nesting too deep",
}

func (k ErrorKind) String() string {
	if s, ok := kindStr[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", byte(k))
}

// A Message is a single diagnostic record.
type Message struct {
	Origin Origin
	Kind   ErrorKind
	Pos    Position
	Source string // name of the input
	Text   string // description, often quoting the offending text
}

// Error satisfies the error interface.
func (m *Message) Error() string {
	if m.Source == "" {
		return fmt.Sprintf("at %s: %s: %s", m.Pos, m.Kind, m.Text)
	}
	return fmt.Sprintf("%s:%s: %s: %s", m.Source, m.Pos, m.Kind, m.Text)
}

// Messages accumulates diagnostics in the order they are reported.
// A zero value is ready for use. It is not safe for concurrent use.
type Messages struct {
	list []Message
}

// AddError records an error diagnostic and returns a copy of the record.
// Later changes to m do not affect the returned message.
func (m *Messages) AddError(origin Origin, kind ErrorKind, pos Position, source, text string) *Message {
	msg := &Message{
		Origin: origin,
		Kind:   kind,
		Pos:    pos,
		Source: source,
		Text:   text,
	}
	m.list = append(m.list, *msg)
	return msg
}

// HasErrors reports whether any error has been recorded.
func (m *Messages) HasErrors() bool { return len(m.list) != 0 }

// Len reports the number of recorded diagnostics.
func (m *Messages) Len() int { return len(m.list) }

// Errors returns a copy of the recorded diagnostics in order of reporting.
func (m *Messages) Errors() []Message { return slices.Clone(m.list) }

// Err returns the first recorded diagnostic as an error, or nil.
func (m *Messages) Err() error {
	if len(m.list) == 0 {
		return nil
	}
	msg := m.list[0]
	return &msg
}

// Reset discards all recorded diagnostics.
func (m *Messages) Reset() { m.list = nil }
