package derive

import (
	"fmt"
	"strings"

	"enumtmpl/internal/model"
)

// RenderEntry is the entry point producing the rendered string.
func RenderEntry(union *model.Union) model.EntryPoint {
	return model.EntryPoint{
		Method:  "Render",
		Func:    "_" + union.Name + "_render",
		Results: "(string, error)",
		Zero:    `"", `,
	}
}

// RenderIntoEntry is the entry point writing into a caller-supplied sink.
func RenderIntoEntry(union *model.Union) model.EntryPoint {
	return model.EntryPoint{
		Method:  "RenderInto",
		Func:    "_" + union.Name + "_renderInto",
		Params:  []string{"w io.Writer"},
		Args:    []string{"w"},
		Results: "error",
	}
}

// BuildDispatch builds the type switch of one entry point. Every variant gets
// a case; value variants get a second case for their pointer type, which also
// implements the marker method.
func BuildDispatch(union *model.Union, aux []model.AuxType, entry model.EntryPoint) model.Dispatch {
	d := model.Dispatch{Entry: entry}
	args := TypeArgs(union.TypeParams)

	for i := range aux {
		a := &aux[i]
		v := a.Variant
		name := v.Name + args
		literal := auxLiteral(a, args)

		if !v.Pointer {
			d.Cases = append(d.Cases, model.Case{
				Type:     name,
				Bindings: bindings(v, false),
				Literal:  literal,
			})
		}
		b := bindings(v, true)
		d.Cases = append(d.Cases, model.Case{
			Type:     "*" + name,
			Guard:    len(b) > 0,
			Bindings: b,
			Literal:  literal,
		})
	}
	d.BindSelf = BindsSelf(d)
	return d
}

// bindings binds one temporary per field, each a pointer into self.
func bindings(v *model.Variant, pointer bool) []model.Binding {
	switch v.Shape {
	case model.ShapeNamed:
		b := make([]model.Binding, len(v.Fields))
		for i, f := range v.Fields {
			b[i] = model.Binding{Name: fmt.Sprintf("_%d", i), Expr: "&self." + f.Name}
		}
		return b
	case model.ShapeUnnamed:
		self := "&self"
		if pointer {
			self = "self"
		}
		return []model.Binding{{
			Name: "_0",
			Expr: fmt.Sprintf("(*%s)(%s)", v.Fields[0].Type, self),
		}}
	}
	return nil
}

// auxLiteral constructs the auxiliary value from the case bindings. The
// phantom marker is left at its zero value.
func auxLiteral(a *model.AuxType, args string) string {
	elems := make([]string, len(a.Fields))
	for i, f := range a.Fields {
		elems[i] = fmt.Sprintf("%s: _%d", f.Name, i)
	}
	return a.Name + args + "{" + strings.Join(elems, ", ") + "}"
}

// BindsSelf reports whether any case of the dispatch reads the switched value.
func BindsSelf(d model.Dispatch) bool {
	for _, c := range d.Cases {
		if c.Guard || len(c.Bindings) > 0 {
			return true
		}
	}
	return false
}
