// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

// Equal reports whether a and b are structurally equal, regardless of which
// documents own them. Leaves are equal if they have the same kind and text.
// Arrays are equal if they have equal elements in the same order. Objects
// are equal if they have the same member names with equal values; the order
// of members does not matter, so {"a":1,"b":2} equals {"b":2,"a":1}.
//
// Two nil values are equal; a nil value is not equal to any other value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	} else if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Array:
		y := b.(*Array)
		if x.Len() != y.Len() {
			return false
		}
		for i, v := range x.values {
			if !Equal(v, y.values[i]) {
				return false
			}
		}
		return true

	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		for _, m := range x.members {
			n := y.Find(m.name)
			if n == nil || !Equal(m.value, n.value) {
				return false
			}
		}
		return true

	case *Literal, *Number, *String:
		return a.Text() == b.Text()

	default:
		panic("unknown value type")
	}
}
