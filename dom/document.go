// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// A Document owns a tree of values with a single root.
// A zero Document is ready for use and has no root.
//
// A Document and its values are not safe for concurrent use.
type Document struct {
	root Value
	live int // values created and not yet destroyed
}

// New constructs a new empty document.
func New() *Document { return new(Document) }

// Root returns the root value of d, or nil if d is empty.
func (d *Document) Root() Value { return d.root }

// SetRoot makes v the root of d, destroying the previous tree of d.
// If v is nil, SetRoot is equivalent to Clear. If v is already the root of d,
// SetRoot does nothing.
//
// SetRoot reports an error without modifying d if v is destroyed, belongs to
// another document, or is already attached.
func (d *Document) SetRoot(v Value) error {
	if v == nil {
		d.Clear()
		return nil
	} else if v == d.root {
		return nil
	}
	b := v.base()
	switch {
	case b.dead:
		return errors.Wrap(ErrDestroyed, "set root")
	case b.doc != d:
		return errors.Wrap(ErrForeignValue, "set root")
	case b.attached:
		return errors.Wrap(ErrAttached, "set root")
	}
	d.Clear()
	b.attached = true
	d.root = v
	return nil
}

// Clear destroys the tree of d and leaves d without a root.
func (d *Document) Clear() {
	if d.root != nil {
		d.destroy(d.root)
		d.root = nil
	}
}

// Live reports the number of values created by d that have not yet been
// destroyed. Values are destroyed when their tree is cleared.
func (d *Document) Live() int { return d.live }

// NewArray creates a new empty array owned by d.
func (d *Document) NewArray() *Array {
	d.live++
	return &Array{node: node{doc: d}}
}

// NewObject creates a new empty object owned by d.
func (d *Document) NewObject() *Object {
	d.live++
	return &Object{node: node{doc: d}}
}

// NewLiteral creates a new literal owned by d. It reports ErrInvalidLiteral
// unless text is "true", "false", or "null".
func (d *Document) NewLiteral(text string) (*Literal, error) {
	if !isLiteral(text) {
		return nil, errors.Wrapf(ErrInvalidLiteral, "text %q", text)
	}
	d.live++
	return &Literal{node: node{doc: d, text: text}}, nil
}

// NewNumber creates a new number owned by d, whose text is kept verbatim.
// The text is not checked; the parser only constructs numbers from valid
// JSON numerals.
func (d *Document) NewNumber(text string, typ NumberType) *Number {
	d.live++
	return &Number{node: node{doc: d, text: text}, typ: typ}
}

// NewString creates a new string owned by d with the given decoded text.
func (d *Document) NewString(text string) *String {
	d.live++
	return &String{node: node{doc: d, text: text}}
}

// destroy destroys v and all the values it contains. Destroyed values are
// detached from their parents and emptied, and cannot be attached again.
func (d *Document) destroy(v Value) {
	stk := []Value{v}
	for len(stk) != 0 {
		cur := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		switch t := cur.(type) {
		case *Array:
			stk = append(stk, t.values...)
			t.values = nil
		case *Object:
			for _, m := range t.members {
				stk = append(stk, m.value)
			}
			t.members, t.index = nil, nil
		}
		b := cur.base()
		if b.dead {
			continue
		}
		b.parent, b.member = nil, nil
		b.attached, b.dead = false, true
		d.live--
	}
}

// ValueOf converts a Go value into a new unattached Value owned by d.
// The input must be nil, a bool, string, integer, finite float, []any,
// map[string]any, or a Value owned by d, which is returned unchanged.
// Object members from a map are added in order of their names.
// ValueOf panics if v or any of its elements does not have one of those
// types.
func (d *Document) ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return d.mustLiteral("null")
	case Value:
		if t.Document() != d {
			panic(fmt.Sprintf("value belongs to another document: %v", t.Kind()))
		}
		return t
	case bool:
		return d.mustLiteral(strconv.FormatBool(t))
	case string:
		return d.NewString(t)
	case float32:
		return d.ValueOf(float64(t))
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			panic(fmt.Sprintf("cannot represent %v", t))
		}
		return d.NewNumber(strconv.FormatFloat(t, 'g', -1, 64), Float)
	case []any:
		a := d.NewArray()
		for _, elt := range t {
			mustOK(a.Append(d.ValueOf(elt)))
		}
		return a
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		o := d.NewObject()
		for _, key := range keys {
			mustOK(o.Append(key, d.ValueOf(t[key])))
		}
		return o
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.NewNumber(strconv.FormatInt(rv.Int(), 10), Integer)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return d.NewNumber(strconv.FormatUint(rv.Uint(), 10), Integer)
	}
	panic(fmt.Sprintf("unsupported value type %T", v))
}

func (d *Document) mustLiteral(text string) *Literal {
	lit, err := d.NewLiteral(text)
	mustOK(err)
	return lit
}

func mustOK(err error) {
	if err != nil {
		panic(err)
	}
}
