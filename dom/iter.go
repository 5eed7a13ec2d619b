// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"iter"
	"slices"
)

// An Iterator visits the values of a document in depth-first pre-order,
// reporting each value with its path from the root.
//
// An Iterator is read-only. The effect of modifying the document during an
// iteration is not specified.
//
//	for it := doc.Iter(); !it.Done(); it.Next() {
//	   log.Printf("%v: %s", it.Path(), it.Value().JSON())
//	}
type Iterator struct {
	cur  Value
	stk  []Value // containers enclosing cur
	path []int   // index of each step below the root
}

// Iter returns an iterator positioned at the root of d. If d has no root,
// the iterator is already done.
func (d *Document) Iter() *Iterator { return &Iterator{cur: d.root} }

// All returns a sequence of the values of d in depth-first pre-order, each
// with its path from the root. The path slice is only valid for the current
// iteration step.
func (d *Document) All() iter.Seq2[[]int, Value] {
	return func(yield func([]int, Value) bool) {
		for it := d.Iter(); !it.Done(); it.Next() {
			if !yield(it.path, it.cur) {
				return
			}
		}
	}
}

// Done reports whether it has visited every value.
func (it *Iterator) Done() bool { return it.cur == nil }

// Value returns the current value, or nil if it is done.
func (it *Iterator) Value() Value { return it.cur }

// Path returns the indices of the steps from the root to the current value.
// For an object, the index is the position of the member. The root has an
// empty path.
func (it *Iterator) Path() []int { return slices.Clone(it.path) }

// Depth reports the number of containers enclosing the current value.
func (it *Iterator) Depth() int { return len(it.stk) }

// Next advances it to the next value in pre-order. It reports false when no
// values remain. Calling Next on a done iterator has no effect.
func (it *Iterator) Next() bool {
	if it.cur == nil {
		return false
	}

	// Descend into a non-empty container.
	if childCount(it.cur) != 0 {
		it.stk = append(it.stk, it.cur)
		it.path = append(it.path, 0)
		it.cur = childAt(it.cur, 0)
		return true
	}

	// Otherwise, move to the next sibling of the nearest enclosing container
	// that has one.
	for n := len(it.stk); n > 0; n = len(it.stk) {
		up := it.stk[n-1]
		if i := it.path[n-1] + 1; i < childCount(up) {
			it.path[n-1] = i
			it.cur = childAt(up, i)
			return true
		}
		it.stk = it.stk[:n-1]
		it.path = it.path[:n-1]
	}
	it.cur = nil
	return false
}

func childCount(v Value) int {
	switch t := v.(type) {
	case *Array:
		return len(t.values)
	case *Object:
		return len(t.members)
	}
	return 0
}

func childAt(v Value, i int) Value {
	switch t := v.(type) {
	case *Array:
		return t.values[i]
	case *Object:
		return t.members[i].value
	}
	return nil
}
