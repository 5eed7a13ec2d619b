// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package dom defines a mutable document object model for JSON values, and a
// parser that constructs documents from JSON source.
//
// Every value belongs to the Document that created it, for its whole
// lifetime. A value is attached at most once, either as the root of its
// document or as an element of an array or object of the same document; it
// cannot be moved afterward. Clearing a document destroys its tree.
package dom

import (
	"slices"

	"github.com/pkg/errors"
)

// Kind identifies the concrete type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	ArrayKind Kind = iota + 1
	ObjectKind
	LiteralKind
	NumberKind
	StringKind
)

var kindStr = [...]string{
	0:           "invalid",
	ArrayKind:   "array",
	ObjectKind:  "object",
	LiteralKind: "literal",
	NumberKind:  "number",
	StringKind:  "string",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// IsContainer reports whether values of kind k can have children.
func (k Kind) IsContainer() bool { return k == ArrayKind || k == ObjectKind }

// A Value is a JSON value belonging to a Document.
// The concrete type is one of *Array, *Object, *Literal, *Number, *String.
type Value interface {
	// Kind reports the concrete kind of the value.
	Kind() Kind

	// Document returns the document that owns the value.
	Document() *Document

	// Parent returns the array or object containing the value, or nil.
	Parent() Value

	// Member returns the object member naming the value, or nil if the value
	// is not the value of an object member.
	Member() *Member

	// Attached reports whether the value is the root of its document or the
	// child of a container.
	Attached() bool

	// Text returns the text payload of the value. For a string this is the
	// decoded string; for numbers and literals it is the source text. The
	// text of a container is empty.
	Text() string

	// JSON returns the compact JSON encoding of the value.
	JSON() string

	base() *node
}

// node carries the state shared by all values.
type node struct {
	doc      *Document
	parent   Value
	member   *Member
	attached bool
	dead     bool
	text     string
}

// Document satisfies part of the Value interface.
func (n *node) Document() *Document { return n.doc }

// Parent satisfies part of the Value interface.
func (n *node) Parent() Value { return n.parent }

// Member satisfies part of the Value interface.
func (n *node) Member() *Member { return n.member }

// Attached satisfies part of the Value interface.
func (n *node) Attached() bool { return n.attached }

// Text satisfies part of the Value interface.
func (n *node) Text() string { return n.text }

func (n *node) base() *node { return n }

// An Array is an ordered sequence of values.
type Array struct {
	node
	values []Value
}

// Kind satisfies the Value interface.
func (*Array) Kind() Kind { return ArrayKind }

// JSON satisfies the Value interface.
func (a *Array) JSON() string { return string(appendJSON(nil, a)) }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.values) }

// At returns the element of a at index i. It panics if i is out of range.
func (a *Array) At(i int) Value { return a.values[i] }

// Values returns a copy of the elements of a, in order.
func (a *Array) Values() []Value { return slices.Clone(a.values) }

// Append adds v to the end of a. It reports an error without modifying a if
// v is nil, destroyed, owned by another document, already attached, or an
// ancestor of a.
func (a *Array) Append(v Value) error {
	if err := checkAttach(a, v); err != nil {
		return errors.Wrap(err, "append to array")
	}
	b := v.base()
	b.parent = a
	b.attached = true
	a.values = append(a.values, v)
	return nil
}

// An Object is an ordered collection of uniquely named members. Members keep
// the order in which they were appended for iteration and output, but the
// order is not significant to Equal.
type Object struct {
	node
	members []*Member
	index   map[string]*Member
}

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return ObjectKind }

// JSON satisfies the Value interface.
func (o *Object) JSON() string { return string(appendJSON(nil, o)) }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// At returns the member of o at index i. It panics if i is out of range.
func (o *Object) At(i int) *Member { return o.members[i] }

// Members returns a copy of the members of o, in insertion order.
func (o *Object) Members() []*Member { return slices.Clone(o.members) }

// Keys returns the names of the members of o, in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.name
	}
	return keys
}

// Find returns the member of o with the given name, or nil.
func (o *Object) Find(name string) *Member { return o.index[name] }

// Append adds a new member with the given name and value to the end of o.
// In addition to the conditions checked by Array.Append, it reports an error
// if name is empty or o already has a member with that name.
func (o *Object) Append(name string, v Value) error {
	if err := checkAttach(o, v); err != nil {
		return errors.Wrapf(err, "append member %q", name)
	} else if name == "" {
		return ErrEmptyName
	} else if o.index[name] != nil {
		return errors.Wrapf(ErrDuplicateName, "member %q", name)
	}
	m := &Member{name: name, value: v}
	b := v.base()
	b.parent = o
	b.member = m
	b.attached = true
	o.members = append(o.members, m)
	if o.index == nil {
		o.index = make(map[string]*Member)
	}
	o.index[name] = m
	return nil
}

// A Member is a single named value belonging to an Object.
type Member struct {
	name  string
	value Value
}

// Name returns the name of the member.
func (m *Member) Name() string { return m.name }

// Value returns the value of the member.
func (m *Member) Value() Value { return m.value }

// A Literal is one of the constants true, false, or null.
type Literal struct{ node }

// Kind satisfies the Value interface.
func (*Literal) Kind() Kind { return LiteralKind }

// JSON satisfies the Value interface.
func (l *Literal) JSON() string { return l.text }

// SetText replaces the text of l. It reports ErrInvalidLiteral and leaves l
// unchanged unless text is "true", "false", or "null".
func (l *Literal) SetText(text string) error {
	if !isLiteral(text) {
		return errors.Wrapf(ErrInvalidLiteral, "text %q", text)
	}
	l.text = text
	return nil
}

// IsNull reports whether l is the constant null.
func (l *Literal) IsNull() bool { return l.text == "null" }

// Bool reports whether l is the constant true.
func (l *Literal) Bool() bool { return l.text == "true" }

func isLiteral(s string) bool { return s == "true" || s == "false" || s == "null" }

// NumberType distinguishes integer from non-integer numbers.
type NumberType byte

// Constants defining the valid NumberType values.
const (
	Integer NumberType = iota // no fraction or exponent
	Float                     // fraction and/or exponent
)

func (t NumberType) String() string {
	if t == Integer {
		return "integer"
	}
	return "float"
}

// A Number is a numeric value. Its text is kept exactly as written.
type Number struct {
	node
	typ NumberType
}

// Kind satisfies the Value interface.
func (*Number) Kind() Kind { return NumberKind }

// JSON satisfies the Value interface.
func (n *Number) JSON() string { return n.text }

// Type reports whether n is an integer or a float.
func (n *Number) Type() NumberType { return n.typ }

// A String is a string value. Its text is the decoded string.
type String struct{ node }

// Kind satisfies the Value interface.
func (*String) Kind() Kind { return StringKind }

// JSON satisfies the Value interface.
func (s *String) JSON() string { return string(appendJSON(nil, s)) }

// checkAttach reports whether v may become a child of c.
func checkAttach(c, v Value) error {
	if v == nil {
		return ErrNilValue
	}
	b := v.base()
	switch {
	case c.base().dead || b.dead:
		return ErrDestroyed
	case b.doc != c.Document():
		return ErrForeignValue
	case b.attached:
		return ErrAttached
	}
	for p := c; p != nil; p = p.Parent() {
		if p == v {
			return ErrCycle
		}
	}
	return nil
}
