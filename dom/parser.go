// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"fmt"
	"io"

	"github.com/creachadair/jdom"
	"github.com/pkg/errors"
)

// DefaultMaxDepth is the default limit on the nesting depth of arrays and
// objects accepted by a Parser.
const DefaultMaxDepth = 1000

// Parse parses a single JSON value from src into doc, and reports whether it
// succeeded. In case of error, the error is recorded in msgs and doc is not
// modified. If the input is empty, Parse succeeds and leaves doc with no
// root; otherwise the parsed value replaces the previous tree of doc.
func Parse(src jdom.Source, msgs *jdom.Messages, doc *Document) bool {
	return NewParser(src, msgs).Parse(doc)
}

// ParseString parses a JSON value from text into a new document. The name
// identifies the input in error messages. In case of error, the returned
// error has concrete type *jdom.Message.
func ParseString(name, text string) (*Document, error) {
	return parseNew(jdom.NewStringSource(name, text))
}

// ParseReader parses a JSON value from r into a new document. The name
// identifies the input in error messages. In case of error, the returned
// error has concrete type *jdom.Message.
func ParseReader(name string, r io.Reader) (*Document, error) {
	return parseNew(jdom.NewSource(name, r))
}

func parseNew(src jdom.Source) (*Document, error) {
	var msgs jdom.Messages
	doc := New()
	if !Parse(src, &msgs, doc) {
		return nil, msgs.Err()
	}
	return doc, nil
}

// A Parser is a recursive-descent parser that builds a Document from the
// lexemes of a source.
//
// Parsing stops at the first error, which is recorded in the Messages given
// to NewParser. Every value is constructed speculatively and destroyed again
// unless it was attached to the tree, so a failed parse leaves nothing
// behind in the document.
type Parser struct {
	lex      *jdom.Lexer
	src      jdom.Source
	msgs     *jdom.Messages
	doc      *Document
	maxDepth int
	depth    int
}

// NewParser constructs a new Parser that consumes input from src and
// records errors in msgs. If msgs == nil, errors are recorded in a private
// sink; see Messages.
func NewParser(src jdom.Source, msgs *jdom.Messages) *Parser {
	if msgs == nil {
		msgs = new(jdom.Messages)
	}
	return &Parser{
		lex:      jdom.NewLexer(src, msgs),
		src:      src,
		msgs:     msgs,
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth sets the maximum nesting depth of arrays and objects. Deeper
// input is rejected with a TooDeep error. If n <= 0, DefaultMaxDepth is used.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Messages returns the diagnostics sink of p.
func (p *Parser) Messages() *jdom.Messages { return p.msgs }

// parseAbort is the panic value used to unwind the parser after an error has
// been recorded.
type parseAbort struct{}

func (p *Parser) recoverParseError(ok *bool) {
	if x := recover(); x != nil {
		if _, abort := x.(parseAbort); !abort {
			panic(x)
		}
		*ok = false
	}
}

// Parse parses a single JSON value from the input into doc, and reports
// whether it succeeded. See the package-level Parse function.
func (p *Parser) Parse(doc *Document) (ok bool) {
	defer p.recoverParseError(&ok)
	p.doc, p.depth = doc, 0

	if err := p.lex.Next(); err == io.EOF {
		doc.Clear() // empty input, no root
		return true
	} else if err != nil {
		return false // already recorded by the lexer
	}
	p.parseValue(context{})
	return true
}

// A context describes where a value being parsed is to be attached.
// For the document value, parent is nil.
type context struct {
	parent Value
	name   string        // pending member name, if named
	named  bool          // whether a member name is pending
	at     jdom.Position // position of the member name
}

// A guard destroys a speculatively constructed value when released, unless
// the value was accepted first.
type guard struct {
	v  Value
	ok bool
}

func (g *guard) accept() { g.ok = true }

func (g *guard) release() {
	if !g.ok && g.v != nil {
		g.v.Document().destroy(g.v)
	}
}

// parseValue consumes a single value of any type starting at the current
// lexeme, and attaches it as directed by ctx.
func (p *Parser) parseValue(ctx context) {
	x := p.lex.Lexeme()
	var v Value
	switch tok := x.Token; {
	case tok == jdom.BeginArray:
		v = p.doc.NewArray()
	case tok == jdom.BeginObject:
		v = p.doc.NewObject()
	case tok.IsLiteral():
		v = p.newLiteral(x)
	case tok.IsNumber():
		v = p.newNumber(x)
	case tok == jdom.String:
		v = p.newString(x)
	default:
		p.failf(jdom.ExpectedValue, x.Pos, "expected value, got %v", tok)
	}

	g := guard{v: v}
	defer g.release()

	switch t := v.(type) {
	case *Array:
		p.parseArray(t)
	case *Object:
		p.parseObject(t)
	}
	p.attach(ctx, v, x.Pos)
	g.accept()
}

// parseArray consumes zero or more comma-separated array values.
// Precondition: token == BeginArray.
// Postcondition: token == EndArray.
func (p *Parser) parseArray(a *Array) {
	open := p.lex.Lexeme()
	if open.Token != jdom.BeginArray {
		p.failf(jdom.ExpectedArray, open.Pos, "expected array, got %v", open.Token)
	}
	p.enter(open)
	defer p.leave()

	if p.advance(jdom.UnclosedArray, open) == jdom.EndArray {
		return // empty array
	}
	for {
		p.parseValue(context{parent: a})

		switch tok := p.advance(jdom.UnclosedArray, open); tok {
		case jdom.EndArray:
			return // end of array
		case jdom.ValueSeparator:
			p.advance(jdom.UnclosedArray, open) // advance to the next value
		default:
			p.failHere(jdom.ExpectedSeparator, `expected "," or "]", got %v`, tok)
		}
	}
}

// parseObject consumes zero or more name:value object members.
// Precondition: token == BeginObject.
// Postcondition: token == EndObject.
func (p *Parser) parseObject(o *Object) {
	open := p.lex.Lexeme()
	if open.Token != jdom.BeginObject {
		p.failf(jdom.ExpectedObject, open.Pos, "expected object, got %v", open.Token)
	}
	p.enter(open)
	defer p.leave()

	if p.advance(jdom.UnclosedObject, open) == jdom.EndObject {
		return // empty object
	}
	for {
		// Parse a single member: "name": value
		name := p.lex.Lexeme()
		if name.Token != jdom.String {
			p.failHere(jdom.ExpectedMemberName, "expected member name, got %v", name.Token)
		}
		if tok := p.advance(jdom.UnclosedObject, open); tok != jdom.NameSeparator {
			p.failHere(jdom.ExpectedNameSeparator, `expected ":", got %v`, tok)
		}
		p.advance(jdom.UnclosedObject, open)
		p.parseValue(context{parent: o, name: name.Text, named: true, at: name.Pos})

		switch tok := p.advance(jdom.UnclosedObject, open); tok {
		case jdom.EndObject:
			return // end of object
		case jdom.ValueSeparator:
			p.advance(jdom.UnclosedObject, open) // advance to the next name
		default:
			p.failHere(jdom.ExpectedSeparator, `expected "," or "}", got %v`, tok)
		}
	}
}

func (p *Parser) newLiteral(x jdom.Lexeme) Value {
	if !x.Token.IsLiteral() {
		p.failf(jdom.ExpectedLiteral, x.Pos, "expected literal, got %v", x.Token)
	}
	lit, err := p.doc.NewLiteral(x.Text)
	if err != nil {
		p.failf(jdom.InvalidLiteral, x.Pos, "%v", err)
	}
	return lit
}

func (p *Parser) newNumber(x jdom.Lexeme) Value {
	switch x.Token {
	case jdom.Integer:
		return p.doc.NewNumber(x.Text, Integer)
	case jdom.Float, jdom.Decimal:
		return p.doc.NewNumber(x.Text, Float)
	}
	p.failf(jdom.ExpectedNumber, x.Pos, "expected number, got %v", x.Token)
	panic("unreachable")
}

func (p *Parser) newString(x jdom.Lexeme) Value {
	if x.Token != jdom.String {
		p.failf(jdom.ExpectedString, x.Pos, "expected string, got %v", x.Token)
	}
	return p.doc.NewString(x.Text)
}

// attach attaches a completed value v that started at pos as directed by
// ctx. The document value is attached only once the input is exhausted.
func (p *Parser) attach(ctx context, v Value, pos jdom.Position) {
	var err error
	switch t := ctx.parent.(type) {
	case nil:
		p.requireEnd()
		err = p.doc.SetRoot(v)
	case *Array:
		err = t.Append(v)
	case *Object:
		if !ctx.named {
			p.failf(jdom.ExpectedMemberName, pos, "missing member name")
		}
		pos = ctx.at
		err = t.Append(ctx.name, v)
	default:
		p.failf(jdom.NotContainer, pos, "cannot attach %v to %v", v.Kind(), t.Kind())
	}

	switch {
	case err == nil:
		return
	case errors.Is(err, ErrEmptyName):
		p.failf(jdom.EmptyMemberName, pos, "empty member name")
	case errors.Is(err, ErrDuplicateName):
		p.failf(jdom.DuplicateMemberName, pos, "duplicate member name %s", jdom.Quote(ctx.name))
	default:
		panic(fmt.Sprintf("attach %v: %v", v.Kind(), err))
	}
}

// advance reads the next lexeme inside the container opened at open, and
// returns its token. If the input ends first, it reports the unclosed error.
func (p *Parser) advance(unclosed jdom.ErrorKind, open jdom.Lexeme) jdom.Token {
	if err := p.lex.Next(); err == io.EOF {
		p.failf(unclosed, p.src.Pos(), "missing close for %v at %v", open.Token, open.Pos)
	} else if err != nil {
		panic(parseAbort{}) // already recorded by the lexer
	}
	return p.lex.Token()
}

// requireEnd checks that no lexemes remain after the document value.
func (p *Parser) requireEnd() {
	if err := p.lex.Next(); err == io.EOF {
		return
	} else if err != nil {
		panic(parseAbort{})
	}
	x := p.lex.Lexeme()
	p.failf(jdom.UnexpectedLexeme, x.Pos, "unexpected %v after value", x)
}

func (p *Parser) enter(open jdom.Lexeme) {
	p.depth++
	if p.depth > p.maxDepth {
		p.failf(jdom.TooDeep, open.Pos, "nesting depth exceeds %d", p.maxDepth)
	}
}

func (p *Parser) leave() { p.depth-- }

// failHere records an error at the current lexeme and aborts the parse.
func (p *Parser) failHere(kind jdom.ErrorKind, msg string, args ...any) {
	p.failf(kind, p.lex.Lexeme().Pos, msg, args...)
}

// failf records an error and aborts the parse.
func (p *Parser) failf(kind jdom.ErrorKind, pos jdom.Position, msg string, args ...any) {
	p.msgs.AddError(jdom.OriginParser, kind, pos, p.src.Name(), fmt.Sprintf(msg, args...))
	panic(parseAbort{})
}
