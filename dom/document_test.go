// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func mustLiteral(t *testing.T, d *dom.Document, text string) *dom.Literal {
	t.Helper()
	lit, err := d.NewLiteral(text)
	if err != nil {
		t.Fatalf("NewLiteral %q: unexpected error: %v", text, err)
	}
	return lit
}

func TestDocumentRoot(t *testing.T) {
	d := dom.New()
	if d.Root() != nil || d.Live() != 0 {
		t.Fatalf("New: root %v, live %d", d.Root(), d.Live())
	}

	a := d.NewArray()
	a.Append(d.NewNumber("1", dom.Integer))
	a.Append(d.NewString("two"))
	if got := d.Live(); got != 3 {
		t.Errorf("Live: got %d, want 3", got)
	}
	if err := d.SetRoot(a); err != nil {
		t.Fatalf("SetRoot: unexpected error: %v", err)
	}
	if d.Root() != a || !a.Attached() {
		t.Errorf("SetRoot: root %v, attached %v", d.Root(), a.Attached())
	}
	if err := d.SetRoot(a); err != nil {
		t.Errorf("SetRoot same value: unexpected error: %v", err)
	}

	// Replacing the root destroys the previous tree.
	s := d.NewString("new")
	if err := d.SetRoot(s); err != nil {
		t.Fatalf("SetRoot: unexpected error: %v", err)
	}
	if got := d.Live(); got != 1 {
		t.Errorf("Live after replace: got %d, want 1", got)
	}
	if a.Len() != 0 || a.Attached() {
		t.Errorf("Old root: len %d, attached %v", a.Len(), a.Attached())
	}
	if err := d.SetRoot(a); !errors.Is(err, dom.ErrDestroyed) {
		t.Errorf("SetRoot destroyed: got %v, want %v", err, dom.ErrDestroyed)
	}

	d.Clear()
	if d.Root() != nil || d.Live() != 0 {
		t.Errorf("Clear: root %v, live %d", d.Root(), d.Live())
	}
	if err := d.SetRoot(nil); err != nil || d.Root() != nil {
		t.Errorf("SetRoot nil: err %v, root %v", err, d.Root())
	}
}

func TestAttach(t *testing.T) {
	d := dom.New()
	other := dom.New()

	t.Run("Nil", func(t *testing.T) {
		if err := d.NewArray().Append(nil); !errors.Is(err, dom.ErrNilValue) {
			t.Errorf("Append nil: got %v, want %v", err, dom.ErrNilValue)
		}
	})
	t.Run("Foreign", func(t *testing.T) {
		v := other.NewString("x")
		if err := d.NewArray().Append(v); !errors.Is(err, dom.ErrForeignValue) {
			t.Errorf("Append: got %v, want %v", err, dom.ErrForeignValue)
		}
		if err := d.SetRoot(v); !errors.Is(err, dom.ErrForeignValue) {
			t.Errorf("SetRoot: got %v, want %v", err, dom.ErrForeignValue)
		}
		if v.Attached() {
			t.Error("Foreign value was attached")
		}
	})
	t.Run("Twice", func(t *testing.T) {
		a, b := d.NewArray(), d.NewArray()
		v := d.NewString("x")
		if err := a.Append(v); err != nil {
			t.Fatalf("Append: unexpected error: %v", err)
		}
		if err := b.Append(v); !errors.Is(err, dom.ErrAttached) {
			t.Errorf("Append again: got %v, want %v", err, dom.ErrAttached)
		}
		if err := d.NewObject().Append("v", v); !errors.Is(err, dom.ErrAttached) {
			t.Errorf("Append member: got %v, want %v", err, dom.ErrAttached)
		}
		if err := d.SetRoot(v); !errors.Is(err, dom.ErrAttached) {
			t.Errorf("SetRoot: got %v, want %v", err, dom.ErrAttached)
		}
		if v.Parent() != a || b.Len() != 0 {
			t.Errorf("Parent: got %v, want %v; other len %d", v.Parent(), a, b.Len())
		}
	})
	t.Run("Root", func(t *testing.T) {
		d := dom.New()
		v := d.NewString("root")
		d.SetRoot(v)
		if err := d.NewArray().Append(v); !errors.Is(err, dom.ErrAttached) {
			t.Errorf("Append root: got %v, want %v", err, dom.ErrAttached)
		}
	})
	t.Run("Cycle", func(t *testing.T) {
		a, b := d.NewArray(), d.NewObject()
		if err := a.Append(a); !errors.Is(err, dom.ErrCycle) {
			t.Errorf("Append self: got %v, want %v", err, dom.ErrCycle)
		}
		if err := a.Append(b); err != nil {
			t.Fatalf("Append: unexpected error: %v", err)
		}
		if err := b.Append("a", a); !errors.Is(err, dom.ErrCycle) {
			t.Errorf("Append ancestor: got %v, want %v", err, dom.ErrCycle)
		}
		if b.Len() != 0 || a.Attached() {
			t.Errorf("After cycle: len %d, attached %v", b.Len(), a.Attached())
		}
	})
}

func TestObject(t *testing.T) {
	d := dom.New()
	o := d.NewObject()
	x, y := d.NewNumber("1", dom.Integer), d.NewNumber("2", dom.Integer)

	if err := o.Append("", x); !errors.Is(err, dom.ErrEmptyName) {
		t.Errorf("Append empty name: got %v, want %v", err, dom.ErrEmptyName)
	}
	if x.Attached() {
		t.Error("Value attached despite empty name")
	}
	if err := o.Append("a", x); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if err := o.Append("a", y); !errors.Is(err, dom.ErrDuplicateName) {
		t.Errorf("Append duplicate: got %v, want %v", err, dom.ErrDuplicateName)
	}
	if y.Attached() {
		t.Error("Value attached despite duplicate name")
	}
	if err := o.Append("b", y); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, o.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
	if m := o.Find("b"); m == nil || m.Value() != y || m.Name() != "b" {
		t.Errorf("Find b: got %v", m)
	}
	if m := o.Find("c"); m != nil {
		t.Errorf("Find c: got %v, want nil", m)
	}
	if y.Member() != o.Find("b") || y.Parent() != o {
		t.Errorf("Member: got %v, parent %v", y.Member(), y.Parent())
	}
	if o.At(0).Value() != x || len(o.Members()) != 2 {
		t.Errorf("At(0): got %v; members %d", o.At(0).Value(), len(o.Members()))
	}
	if got, want := o.JSON(), `{"a":1,"b":2}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
}

func TestLiteral(t *testing.T) {
	d := dom.New()
	if _, err := d.NewLiteral("maybe"); !errors.Is(err, dom.ErrInvalidLiteral) {
		t.Errorf("NewLiteral: got %v, want %v", err, dom.ErrInvalidLiteral)
	}
	if d.Live() != 0 {
		t.Errorf("Live after failed NewLiteral: got %d, want 0", d.Live())
	}

	lit := mustLiteral(t, d, "null")
	if !lit.IsNull() || lit.Bool() {
		t.Errorf("null: IsNull %v, Bool %v", lit.IsNull(), lit.Bool())
	}
	if err := lit.SetText("true"); err != nil {
		t.Fatalf("SetText: unexpected error: %v", err)
	}
	if !lit.Bool() || lit.JSON() != "true" {
		t.Errorf("true: Bool %v, JSON %q", lit.Bool(), lit.JSON())
	}
	if err := lit.SetText("True"); !errors.Is(err, dom.ErrInvalidLiteral) {
		t.Errorf("SetText: got %v, want %v", err, dom.ErrInvalidLiteral)
	}
	if lit.Text() != "true" {
		t.Errorf("Text after failed SetText: got %q, want true", lit.Text())
	}
}

func TestValueOf(t *testing.T) {
	d := dom.New()
	tests := []struct {
		input any
		want  string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{"a\tb", `"a\tb"`},
		{25, "25"},
		{int8(-3), "-3"},
		{uint64(math.MaxUint64), "18446744073709551615"},
		{1.5, "1.5"},
		{float32(0.25), "0.25"},
		{1e21, "1e+21"},
		{[]any{}, "[]"},
		{[]any{1, "two", nil}, `[1,"two",null]`},
		{map[string]any{}, "{}"},
		{map[string]any{"b": []any{true}, "a": 1}, `{"a":1,"b":[true]}`},
	}
	for _, tc := range tests {
		v := d.ValueOf(tc.input)
		if got := v.JSON(); got != tc.want {
			t.Errorf("ValueOf(%#v): got %#q, want %#q", tc.input, got, tc.want)
		}
		if v.Attached() || v.Document() != d {
			t.Errorf("ValueOf(%#v): attached %v, document %p", tc.input, v.Attached(), v.Document())
		}
	}

	if n, ok := d.ValueOf(3).(*dom.Number); !ok || n.Type() != dom.Integer {
		t.Errorf("ValueOf(3): got %#v, want integer", n)
	}
	if n, ok := d.ValueOf(3.0).(*dom.Number); !ok || n.Type() != dom.Float {
		t.Errorf("ValueOf(3.0): got %#v, want float", n)
	}

	s := d.NewString("same")
	if got := d.ValueOf(s); got != s {
		t.Errorf("ValueOf(value): got %v, want %v", got, s)
	}

	t.Run("Panics", func(t *testing.T) {
		mtest.MustPanic(t, func() { d.ValueOf([]bool{true}) })
		mtest.MustPanic(t, func() { d.ValueOf(func() {}) })
		mtest.MustPanic(t, func() { d.ValueOf(make(chan struct{})) })
		mtest.MustPanic(t, func() { d.ValueOf(math.Inf(1)) })
		mtest.MustPanic(t, func() { d.ValueOf(math.NaN()) })
		mtest.MustPanic(t, func() { d.ValueOf(dom.New().NewArray()) })
	})
}

func TestEqual(t *testing.T) {
	d1, d2 := dom.New(), dom.New()
	tests := []struct {
		a, b any
		want bool
	}{
		{nil, nil, true},
		{1, 1, true},
		{1, 2, false},
		{1, "1", false},
		{true, true, true},
		{true, nil, false},
		{[]any{1, 2}, []any{1, 2}, true},
		{[]any{1, 2}, []any{2, 1}, false},
		{[]any{1}, []any{1, 1}, false},
		{map[string]any{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}, true},
		{map[string]any{"a": 1}, map[string]any{"a": 2}, false},
		{map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{map[string]any{"a": []any{}}, map[string]any{"a": map[string]any{}}, false},
	}
	for _, tc := range tests {
		a, b := d1.ValueOf(tc.a), d2.ValueOf(tc.b)
		if got := dom.Equal(a, b); got != tc.want {
			t.Errorf("Equal(%s, %s): got %v, want %v", a.JSON(), b.JSON(), got, tc.want)
		}
		if got := dom.Equal(b, a); got != tc.want {
			t.Errorf("Equal(%s, %s): got %v, want %v", b.JSON(), a.JSON(), got, tc.want)
		}
	}

	// Member order does not affect equality.
	o1, o2 := d1.NewObject(), d1.NewObject()
	o1.Append("x", d1.ValueOf(1))
	o1.Append("y", d1.ValueOf(2))
	o2.Append("y", d1.ValueOf(2))
	o2.Append("x", d1.ValueOf(1))
	if !dom.Equal(o1, o2) {
		t.Errorf("Equal(%s, %s): got false, want true", o1.JSON(), o2.JSON())
	}

	if dom.Equal(nil, d1.ValueOf(nil)) || !dom.Equal(nil, nil) {
		t.Error("Equal with nil values is wrong")
	}
}

func TestIterator(t *testing.T) {
	d, err := dom.ParseString("test", `{"a": [1, {"b": null}], "c": "d", "e": []}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	type visit struct {
		Path  []int
		Depth int
		JSON  string
	}
	var got []visit
	for it := d.Iter(); !it.Done(); it.Next() {
		got = append(got, visit{it.Path(), it.Depth(), it.Value().JSON()})
	}
	want := []visit{
		{[]int{}, 0, `{"a":[1,{"b":null}],"c":"d","e":[]}`},
		{[]int{0}, 1, `[1,{"b":null}]`},
		{[]int{0, 0}, 2, `1`},
		{[]int{0, 1}, 2, `{"b":null}`},
		{[]int{0, 1, 0}, 3, `null`},
		{[]int{1}, 1, `"d"`},
		{[]int{2}, 1, `[]`},
	}
	if diff := cmp.Diff(want, got, cmpEmptyPath); diff != "" {
		t.Errorf("Iterator (-want, +got):\n%s", diff)
	}

	var n int
	for path, v := range d.All() {
		if n == 4 {
			if v.Text() != "null" || len(path) != 3 {
				t.Errorf("All step 4: got %s at %v", v.JSON(), path)
			}
			break
		}
		n++
	}

	it := dom.New().Iter()
	if !it.Done() || it.Next() || it.Value() != nil {
		t.Errorf("Empty document: done %v, value %v", it.Done(), it.Value())
	}
}

// cmpEmptyPath treats nil and empty paths as equal.
var cmpEmptyPath = cmp.Comparer(func(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
})
