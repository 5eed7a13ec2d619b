// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import "github.com/pkg/errors"

// Errors reported by the document model.  Operations wrap these with context;
// use errors.Is to test for them.
var (
	// ErrNilValue is reported when a nil Value is attached.
	ErrNilValue = errors.New("nil value")

	// ErrForeignValue is reported when a value is attached to a tree in a
	// document other than the one that created it.
	ErrForeignValue = errors.New("value belongs to a different document")

	// ErrAttached is reported when a value that already has a parent, or is
	// the root of its document, is attached again.
	ErrAttached = errors.New("value is already attached")

	// ErrCycle is reported when a container is appended to itself or to one
	// of its own descendants.
	ErrCycle = errors.New("value would contain itself")

	// ErrDestroyed is reported when a destroyed value is used.
	ErrDestroyed = errors.New("value was destroyed")

	// ErrEmptyName is reported when an object member has an empty name.
	ErrEmptyName = errors.New("empty member name")

	// ErrDuplicateName is reported when an object already has a member with
	// the given name.
	ErrDuplicateName = errors.New("duplicate member name")

	// ErrInvalidLiteral is reported for literal text other than "true",
	// "false", or "null".
	ErrInvalidLiteral = errors.New("invalid literal")
)
