// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jdom implements a JSON lexer and the diagnostics shared by the
// jdom parser.
//
// # Sources
//
// A Source delivers decoded characters to the lexer and tracks the Position
// of each one. Construct a source from an io.Reader with NewSource, or from
// a string with NewStringSource. The name of a source is used in error
// messages.
//
// # Lexing
//
// The Lexer type splits a Source into lexemes. Call its Next method to
// advance to the next lexeme. Next returns nil on success, io.EOF at the end
// of the input, or an error describing a lexical problem:
//
//	lex := jdom.NewLexer(jdom.NewStringSource("input", text), &msgs)
//	for lex.Next() == nil {
//	   log.Printf("Next lexeme: %v", lex.Lexeme())
//	}
//
// String lexemes carry their decoded text; escape sequences are resolved and
// UTF-16 surrogate pairs written as two \u escapes are combined. Numbers and
// literals carry their source text.
//
// # Diagnostics
//
// Lexical and syntax errors are recorded as Message values in a Messages
// sink, with the origin, kind, and position of the error. The first error
// stops processing, and is also returned as an error of concrete type
// *jdom.Message.
//
// The dom package builds a mutable document from the lexemes of a source.
package jdom
