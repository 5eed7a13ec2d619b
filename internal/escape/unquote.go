// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Simple reports the character denoted by the single-character escape \c,
// and whether c is a valid single-character escape.
func Simple(c rune) (rune, bool) {
	switch c {
	case '"', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// HexValue reports the value of the hexadecimal digit c, or -1.
func HexValue(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	}
	return -1
}

// IsHighSurrogate reports whether u is the first half of a UTF-16 surrogate
// pair.
func IsHighSurrogate(u rune) bool { return 0xd800 <= u && u < 0xdc00 }

// Pair combines the UTF-16 units hi and lo into a single code point.  It
// reports false if they are not a valid surrogate pair.
func Pair(hi, lo rune) (rune, bool) {
	r := utf16.DecodeRune(hi, lo)
	return r, r != utf8.RuneError
}

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u escape
// of a high surrogate immediately followed by a \u escape of a low surrogate
// decodes to a single code point; an unpaired surrogate decodes to the
// Unicode replacement rune. Unquote reports an error for an incomplete or
// unknown escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	var hi rune // pending high surrogate, or 0
	flush := func() {
		if hi != 0 {
			dec = utf8.AppendRune(dec, utf8.RuneError)
			hi = 0
		}
	}
	for i >= 0 {
		if i > 0 {
			flush()
			dec = mem.Append(dec, src.SliceTo(i))
		}
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		if r != 'u' {
			flush()
			c, ok := Simple(r)
			if !ok {
				return nil, fmt.Errorf("unknown escape %q", r)
			}
			dec = utf8.AppendRune(dec, c)
		} else if src.Len() < 4 {
			return nil, errors.New("incomplete Unicode escape")
		} else {
			u, err := parseHex(src.SliceTo(4))
			if err != nil {
				return nil, err
			}
			src = src.SliceFrom(4)
			if c, ok := Pair(hi, u); hi != 0 && ok {
				dec = utf8.AppendRune(dec, c)
				hi = 0
			} else {
				flush()
				if IsHighSurrogate(u) {
					hi = u
				} else {
					dec = utf8.AppendRune(dec, u) // lone low surrogates become U+FFFD
				}
			}
		}
		i = mem.IndexByte(src, '\\')
	}
	if src.Len() != 0 {
		flush()
		dec = mem.Append(dec, src)
	}
	flush()
	return dec, nil
}

func parseHex(data mem.RO) (rune, error) {
	var v rune
	for i := 0; i < data.Len(); i++ {
		d := HexValue(rune(data.At(i)))
		if d < 0 {
			return 0, fmt.Errorf("invalid hex digit %q", data.At(i))
		}
		v = v<<4 | rune(d)
	}
	return v, nil
}
