// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"bufio"
	"bytes"
	"cmp"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/creachadair/jdom"
	"github.com/pkg/errors"
)

// appendJSON appends the compact JSON encoding of v to buf.
func appendJSON(buf []byte, v Value) []byte {
	switch t := v.(type) {
	case *Array:
		buf = append(buf, '[')
		for i, elt := range t.values {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSON(buf, elt)
		}
		return append(buf, ']')
	case *Object:
		buf = append(buf, '{')
		for i, m := range t.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = jdom.AppendQuote(buf, m.name)
			buf = append(buf, ':')
			buf = appendJSON(buf, m.value)
		}
		return append(buf, '}')
	case *String:
		return jdom.AppendQuote(buf, t.text)
	default:
		return append(buf, v.Text()...)
	}
}

// A Formatter carries the settings for pretty-printing values.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the indentation added for each level of nesting.
	// If empty, two spaces are used.
	Indent string

	// MaxLineItems is the largest number of elements an array of simple
	// values may have to be rendered on a single line. If zero, 3 is used.
	MaxLineItems int
}

func (f Formatter) indent() string { return cmp.Or(f.Indent, "  ") }

func (f Formatter) maxLineItems() int { return cmp.Or(f.MaxLineItems, 3) }

// Values in a column are aligned unless the indentation has tabs, which
// would be mistaken for column breaks.
func (f Formatter) align() bool { return !strings.Contains(f.indent(), "\t") }

// Format renders a pretty-printed representation of v to w with default
// settings.
func Format(w io.Writer, v Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString formats v to a string with default settings.
// In case of error in formatting, it returns an empty string.
func FormatToString(v Value) string {
	var buf bytes.Buffer
	if Format(&buf, v) != nil {
		return ""
	}
	return buf.String()
}

// Format renders a pretty-printed representation of v to w using the settings
// from f. The output ends with a newline.
func (f Formatter) Format(w io.Writer, v Value) error {
	if v == nil {
		return errors.New("no value to format")
	}
	var fw writeFlusher
	if f.align() {
		fw = tabwriter.NewWriter(w, 4, 4, 1, ' ', 0)
	} else {
		fw = bufio.NewWriter(w)
	}
	f.formatValue(fw, v, "")
	io.WriteString(fw, "\n")
	return fw.Flush()
}

type writeFlusher interface {
	io.Writer
	Flush() error
}

// formatValue writes a representation of v to w. Lines after the first are
// indented by indent.
func (f Formatter) formatValue(w writeFlusher, v Value, indent string) {
	switch t := v.(type) {
	case *Array:
		f.formatArray(w, t, indent)
	case *Object:
		f.formatObject(w, t, indent)
	case *Literal, *Number, *String:
		io.WriteString(w, v.JSON())
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func (f Formatter) formatArray(w writeFlusher, a *Array, indent string) {
	if f.isBoring(a) {
		io.WriteString(w, "[")
		for i, v := range a.values {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			f.formatValue(w, v, "")
		}
		io.WriteString(w, "]")
		return
	}

	io.WriteString(w, "[\n")
	adent := indent + f.indent()
	for i, v := range a.values {
		io.WriteString(w, adent)
		f.formatValue(w, v, adent)
		io.WriteString(w, f.sep(i, len(a.values)))
	}
	w.Flush()
	fmt.Fprint(w, indent, "]")
}

func (f Formatter) formatObject(w writeFlusher, o *Object, indent string) {
	if f.isBoring(o) {
		io.WriteString(w, "{")
		for i, m := range o.members {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			fmt.Fprint(w, jdom.Quote(m.name), ": ")
			f.formatValue(w, m.value, "")
		}
		io.WriteString(w, "}")
		return
	}

	io.WriteString(w, "{\n")
	mdent := indent + f.indent()
	prevBoring, curBoring := true, true
	for i, m := range o.members {
		// Leave extra space before the next member if either it or its
		// predecessor was non-boring.
		prevBoring, curBoring = curBoring, f.isBoring(m.value)
		if i != 0 && !(prevBoring && curBoring) {
			io.WriteString(w, "\n")
		}

		fmt.Fprint(w, mdent, jdom.Quote(m.name), f.objSep(m.value))
		f.formatValue(w, m.value, mdent)
		io.WriteString(w, f.sep(i, len(o.members)))
	}
	w.Flush()
	fmt.Fprint(w, indent, "}")
}

// sep returns the text following element i of a container with n elements.
func (Formatter) sep(i, n int) string {
	if i+1 < n {
		return ",\n"
	}
	return "\n"
}

// objSep returns a name-value separator for the given value.
// Boring values get indented so they line up in columns;
// non-boring values are stapled directly to the name.
func (f Formatter) objSep(v Value) string {
	if f.align() && f.isBoring(v) {
		return ":\t"
	}
	return ": "
}

// isBoring reports whether v has a simple enough structure that it can be
// rendered on one line.
func (f Formatter) isBoring(v Value) bool {
	switch t := v.(type) {
	case *Array:
		if len(t.values) > f.maxLineItems() {
			return false
		}
		for _, elt := range t.values {
			if elt.Kind().IsContainer() && !f.isBoring(elt) {
				return false
			}
		}
		return true
	case *Object:
		if len(t.members) == 1 {
			return !t.members[0].value.Kind().IsContainer()
		}
		return len(t.members) == 0
	default:
		return true
	}
}
