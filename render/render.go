// Package render is the templating capability used by code generated with
// enumtmpl. Every generated auxiliary type compiles its template annotation
// with MustCompile and forwards to the returned *Compiled; the generated
// union facade satisfies Template.
//
// A union interface may embed Template next to its marker method:
//
//	type Page interface {
//		isPage()
//		render.Template
//	}
//
// Every variant gets the Template methods from the generated code, so a
// Page value renders directly with page.Render() or fmt.Sprint(page).
//
// Templates use pongo2 (Django/Jinja) syntax. Named variant fields are
// available by name, and `self` holds the variant data: a map of the named
// fields, or a list of the positional values so that {{ self.0 }} works.
package render

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNilVariant is returned when a nil pointer variant is rendered.
	ErrNilVariant = errors.New("render: nil variant")
	// ErrDisplay is the only failure reported by the display adapter.
	ErrDisplay = errors.New("render: display failed")
	// ErrSpec wraps every template annotation error.
	ErrSpec = errors.New("render: invalid template annotation")
)

// Template is implemented by every generated union variant and auxiliary type.
type Template interface {
	// Render renders the template into a string.
	Render() (string, error)
	// RenderInto renders the template into w.
	RenderInto(w io.Writer) error
	// Extension is the template file extension, or "" if unknown.
	Extension() string
	// SizeHint is an estimate of the rendered size in bytes.
	SizeHint() int
	// MimeType is the MIME type of the rendered output.
	MimeType() string
}

// Context is the data a template is executed with.
type Context map[string]any

// Named builds the context of a variant with named fields. Each field is
// available by its name and under self.
func Named(fields map[string]any) Context {
	if fields == nil {
		fields = map[string]any{}
	}
	ctx := make(Context, len(fields)+1)
	for name, value := range fields {
		ctx[name] = value
	}
	ctx["self"] = fields
	return ctx
}

// Positional builds the context of a variant with positional values.
func Positional(values ...any) Context {
	return Context{"self": values}
}

// Format writes t into f. It is the body of the generated fmt.Formatter
// methods. A bare %v or %s streams the output straight into f. Any other
// verb or flag formats the rendered text as a string would be, so %q quotes
// it, %x hex-encodes it, %#v prints a Go string literal and widths pad it.
// A render failure is reported as ErrDisplay in fmt's %!verb(...) notation
// and its cause is dropped.
func Format(f fmt.State, verb rune, t Template) {
	if plain(f, verb) {
		if err := t.RenderInto(f); err != nil {
			fmt.Fprintf(f, "%%!%c(%v)", verb, ErrDisplay)
		}
		return
	}
	s, err := t.Render()
	if err != nil {
		fmt.Fprintf(f, "%%!%c(%v)", verb, ErrDisplay)
		return
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), s)
}

func plain(f fmt.State, verb rune) bool {
	if verb != 'v' && verb != 's' {
		return false
	}
	if _, ok := f.Width(); ok {
		return false
	}
	if _, ok := f.Precision(); ok {
		return false
	}
	for _, flag := range "+-# 0" {
		if f.Flag(int(flag)) {
			return false
		}
	}
	return true
}
