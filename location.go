// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import "fmt"

// A Position describes the location of a character in source text.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // character offset in line, 1-based
}

// StartPosition is the position of the first character of an input.
var StartPosition = Position{Line: 1, Column: 1}

// IsValid reports whether p denotes an actual location.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// advance moves p past ch, whose encoding is size bytes long.
// A newline moves p to the start of the next line.
func (p *Position) advance(ch rune, size int) {
	p.Offset += size
	if ch == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
}
