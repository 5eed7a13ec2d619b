// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jdom/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Unknown        Token = iota // unknown token
	BeginArray                  // left square bracket "["
	EndArray                    // right square bracket "]"
	BeginObject                 // left brace "{"
	EndObject                   // right brace "}"
	NameSeparator               // colon ":"
	ValueSeparator              // comma ","
	String                      // quoted string
	Integer                     // number: integer with no fraction or exponent
	Float                       // number with an exponent
	Decimal                     // number with a fraction and no exponent
	True                        // constant: true
	False                       // constant: false
	Null                        // constant: null
)

var tokenStr = [...]string{
	Unknown:        "unknown token",
	BeginArray:     `"["`,
	EndArray:       `"]"`,
	BeginObject:    `"{"`,
	EndObject:      `"}"`,
	NameSeparator:  `":"`,
	ValueSeparator: `","`,
	String:         "string",
	Integer:        "integer",
	Float:          "float",
	Decimal:        "decimal",
	True:           "true",
	False:          "false",
	Null:           "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Unknown]
	}
	return tokenStr[v]
}

// IsNumber reports whether t is one of the numeric tokens.
func (t Token) IsNumber() bool { return t == Integer || t == Float || t == Decimal }

// IsLiteral reports whether t is one of the constants true, false, null.
func (t Token) IsLiteral() bool { return t == True || t == False || t == Null }

// A Lexeme is a classified token with its text and starting position.
//
// The Text of a String lexeme is the decoded string value without quotation
// marks. The Text of every other lexeme is its source text.
type Lexeme struct {
	Pos   Position
	Token Token
	Text  string
}

func (x Lexeme) String() string {
	switch x.Token {
	case String:
		return fmt.Sprintf("%v %s at %v", x.Token, Quote(x.Text), x.Pos)
	case Unknown:
		return x.Token.String()
	default:
		return fmt.Sprintf("%q at %v", x.Text, x.Pos)
	}
}

// A Lexer reads lexemes from a Source.  Each call to Next advances the lexer
// to the next lexeme, or reports an error.
//
// Errors are recorded in the Messages passed to NewLexer at the position of
// the offending character. An error is fatal: once Next has reported an
// error, subsequent calls report the same error.
type Lexer struct {
	src  Source
	msgs *Messages
	buf  bytes.Buffer // text of the current lexeme
	cur  Lexeme
	at   Position // position of the most recently read character
	err  error
}

// NewLexer constructs a new lexer that consumes input from src and records
// errors in msgs. If msgs == nil, errors are recorded in a private sink.
func NewLexer(src Source, msgs *Messages) *Lexer {
	if msgs == nil {
		msgs = new(Messages)
	}
	return &Lexer{src: src, msgs: msgs}
}

// Next advances l to the next lexeme of the input, or reports an error.
// At the end of the input, Next returns io.EOF. Any other error is the
// *Message recorded for it.
func (l *Lexer) Next() error {
	l.buf.Reset()
	l.cur = Lexeme{}
	if l.err != nil {
		return l.err
	}

	for {
		pos := l.src.Pos()
		ch, ok := l.read()
		if !ok {
			if err := l.src.Err(); err != nil {
				return l.failf(IOError, "%v", err)
			}
			l.err = io.EOF
			return l.err
		}

		// Discard whitespace.
		if isSpace(ch) {
			continue
		}
		l.cur.Pos = pos

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			l.cur.Token = t
			l.cur.Text = string(ch)
			return nil
		}

		switch {
		case ch == '"':
			return l.scanString()
		case isNumStart(ch):
			return l.scanNumber(ch)
		case ch == 't' || ch == 'f' || ch == 'n':
			return l.scanLiteral(ch)
		}
		return l.failf(UnexpectedChar, "unexpected %q", ch)
	}
}

// Lexeme returns the current lexeme.  It is the zero Lexeme if the most
// recent call to Next did not succeed.
func (l *Lexer) Lexeme() Lexeme { return l.cur }

// Token returns the type of the current lexeme.
func (l *Lexer) Token() Token { return l.cur.Token }

// Err returns the last error reported by Next, or nil.
func (l *Lexer) Err() error { return l.err }

// Source returns the source of l.
func (l *Lexer) Source() Source { return l.src }

func (l *Lexer) scanString() error {
	var hi rune // a pending high surrogate, or 0
	flush := func() {
		if hi != 0 {
			l.buf.WriteRune(utf8.RuneError)
			hi = 0
		}
	}
	for {
		ch, ok := l.read()
		if !ok {
			return l.atEOF(UnclosedString, "unclosed string")
		}
		switch {
		case ch == '"':
			flush()
			l.cur.Token = String
			l.cur.Text = l.buf.String()
			return nil

		case ch == '\\':
			esc, ok := l.read()
			if !ok {
				return l.atEOF(UnclosedEscape, "unclosed escape sequence")
			}
			if esc != 'u' {
				flush()
				c, ok := escape.Simple(esc)
				if !ok {
					return l.failf(UnknownEscape, "invalid %q after escape", esc)
				}
				l.buf.WriteRune(c)
				continue
			}
			u, err := l.readHex4()
			if err != nil {
				return err
			}
			if c, ok := escape.Pair(hi, u); hi != 0 && ok {
				l.buf.WriteRune(c)
				hi = 0
			} else {
				flush()
				if escape.IsHighSurrogate(u) {
					hi = u
				} else {
					l.buf.WriteRune(u) // a lone low surrogate is written as U+FFFD
				}
			}

		case ch < ' ':
			return l.failf(UnexpectedChar, "unescaped control %q in string", ch)

		default:
			flush()
			l.buf.WriteRune(ch)
		}
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input and returns
// their value.
func (l *Lexer) readHex4() (rune, error) {
	var v rune
	for range 4 {
		ch, ok := l.read()
		if !ok {
			return 0, l.atEOF(UnclosedEscape, "incomplete Unicode escape")
		}
		d := escape.HexValue(ch)
		if d < 0 {
			return 0, l.failf(InvalidHexDigit, "not a hex digit: %q", ch)
		}
		v = v<<4 | rune(d)
	}
	return v, nil
}

func (l *Lexer) scanNumber(first rune) error {
	l.buf.WriteRune(first)

	if first == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in first.
		ch, err := l.requireDigit("after sign")
		if err != nil {
			return err
		}
		first = ch
	}

	// A leading zero must be the only digit of the integer part.
	if first != '0' {
		l.readDigits()
	}

	tok := Integer
	if l.src.IsNext(".") {
		l.readInto()
		if _, err := l.requireDigit("after decimal point"); err != nil {
			return err
		}
		l.readDigits()
		tok = Decimal
	}
	if l.src.IsNext("eE") {
		l.readInto()
		if l.src.IsNext("+-") {
			l.readInto()
		}
		if _, err := l.requireDigit("in exponent"); err != nil {
			return err
		}
		l.readDigits()
		tok = Float
	}

	// The numeral must be followed by a delimiter or the end of input.
	if !l.src.AtEnd() && !l.src.IsNext(delimiters) {
		ch, ok := l.read()
		if !ok {
			return l.atEOF(InvalidNumber, "unreadable input after number")
		}
		return l.failf(InvalidNumber, "unexpected %q after %s", ch, l.buf.String())
	}
	l.cur.Token = tok
	l.cur.Text = l.buf.String()
	return nil
}

func (l *Lexer) scanLiteral(first rune) error {
	l.buf.WriteRune(first)
	for !l.src.AtEnd() && !l.src.IsNext(delimiters) {
		ch, ok := l.read()
		if !ok {
			return l.atEOF(InvalidLiteral, "unreadable input in literal")
		}
		l.buf.WriteRune(ch)
	}

	got := mem.B(l.buf.Bytes())
	switch {
	case got.Equal(mem.S("true")):
		l.cur.Token = True
	case got.Equal(mem.S("false")):
		l.cur.Token = False
	case got.Equal(mem.S("null")):
		l.cur.Token = Null
	default:
		l.at = l.cur.Pos
		return l.failf(InvalidLiteral, "unknown constant %q", got.StringCopy())
	}
	l.cur.Text = l.buf.String()
	return nil
}

// read consumes the next character, recording its position.
func (l *Lexer) read() (rune, bool) {
	l.at = l.src.Pos()
	return l.src.Next()
}

// readInto consumes the next character and adds it to the current lexeme.
// The caller must have checked that a character is available.
func (l *Lexer) readInto() {
	if ch, ok := l.read(); ok {
		l.buf.WriteRune(ch)
	}
}

// readDigits consumes decimal digits into the current lexeme until a
// non-digit or the end of input. It returns the number of digits consumed.
func (l *Lexer) readDigits() int {
	var nr int
	for l.src.IsNext(digits) {
		l.readInto()
		nr++
	}
	return nr
}

// requireDigit consumes a single decimal digit into the current lexeme, or
// reports an InvalidNumber error mentioning where.
func (l *Lexer) requireDigit(where string) (rune, error) {
	ch, ok := l.read()
	if !ok {
		return 0, l.atEOF(InvalidNumber, "missing digit "+where)
	} else if !isDigit(ch) {
		return 0, l.failf(InvalidNumber, "got %q, want digit %s", ch, where)
	}
	l.buf.WriteRune(ch)
	return ch, nil
}

// atEOF reports an error for input that ended prematurely, either as the
// failure of the source or as the specified kind.
func (l *Lexer) atEOF(kind ErrorKind, text string) error {
	if err := l.src.Err(); err != nil {
		return l.failf(IOError, "%v", err)
	}
	return l.failf(kind, "%s", text)
}

func (l *Lexer) failf(kind ErrorKind, msg string, args ...any) error {
	l.cur = Lexeme{}
	l.err = l.msgs.AddError(OriginLexer, kind, l.at, l.src.Name(), fmt.Sprintf(msg, args...))
	return l.err
}

const (
	digits     = "0123456789"
	delimiters = " \t\r\n[]{}:,"
)

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }

var self = [...]Token{BeginObject, EndObject, BeginArray, EndArray, ValueSeparator, NameSeparator}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Unknown, false
}
