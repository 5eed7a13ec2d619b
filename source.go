// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is reported by a Source whose input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 encoding")

// A Source delivers decoded characters one at a time to a Lexer.
type Source interface {
	// Next consumes and returns the next character. It reports false at the
	// end of the input or if reading failed; use Err to tell them apart.
	Next() (rune, bool)

	// IsNext reports whether the next character is one of the characters in
	// set, without consuming it.
	IsNext(set string) bool

	// AtEnd reports whether no further characters are available.
	AtEnd() bool

	// Name returns a human-readable name for the input, such as a file name.
	Name() string

	// Pos returns the position of the next character.
	Pos() Position

	// Err returns the error that stopped the source, or nil if the source is
	// still readable or ended normally.
	Err() error
}

// NewSource constructs a Source that decodes UTF-8 text from r.  The name is
// used in diagnostics.
func NewSource(name string, r io.Reader) Source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &readerSource{r: br, name: name, pos: StartPosition}
}

// NewStringSource constructs a Source that reads the characters of text.
func NewStringSource(name, text string) Source {
	return NewSource(name, strings.NewReader(text))
}

type readerSource struct {
	r    *bufio.Reader
	name string
	pos  Position
	err  error
}

func (s *readerSource) Next() (rune, bool) {
	ch, nb, ok := s.read()
	if !ok {
		return 0, false
	} else if ch == utf8.RuneError && nb == 1 {
		s.err = fmt.Errorf("%w at offset %d", ErrInvalidUTF8, s.pos.Offset)
		return 0, false
	}
	s.pos.advance(ch, nb)
	return ch, true
}

func (s *readerSource) IsNext(set string) bool {
	ch, ok := s.peek()
	return ok && strings.ContainsRune(set, ch)
}

func (s *readerSource) AtEnd() bool { _, ok := s.peek(); return !ok }

func (s *readerSource) Name() string { return s.name }

func (s *readerSource) Pos() Position { return s.pos }

func (s *readerSource) Err() error { return s.err }

func (s *readerSource) read() (rune, int, bool) {
	if s.err != nil {
		return 0, 0, false
	}
	ch, nb, err := s.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return 0, 0, false
	}
	return ch, nb, true
}

func (s *readerSource) peek() (rune, bool) {
	ch, _, ok := s.read()
	if ok {
		s.r.UnreadRune()
	}
	return ch, ok
}
