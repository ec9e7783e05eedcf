// Package derive turns template unions into the declarations that render
// them: one auxiliary type per variant, a type switch per entry point, and
// the union-level facade.
package derive

import (
	"fmt"
	"strings"

	"enumtmpl/internal/model"
)

// Derive validates the named type and derives its expansion.
func Derive(pkg *model.Package, name string) (*model.Expansion, error) {
	typ := lookup(pkg, name)
	if typ == nil {
		return nil, fmt.Errorf("type %s not found in package %s", name, pkg.Name)
	}

	union, err := BuildUnion(pkg, typ)
	if err != nil {
		return nil, err
	}
	unionSpec, err := ExtractUnion(union.Directives)
	if err != nil {
		return nil, err
	}
	aux, dflt, err := Materialize(union, unionSpec)
	if err != nil {
		return nil, err
	}

	dispatches := []model.Dispatch{
		BuildDispatch(union, aux, RenderEntry(union)),
		BuildDispatch(union, aux, RenderIntoEntry(union)),
	}
	return &model.Expansion{
		Union:  union,
		Aux:    aux,
		Facade: EmitFacade(union, dispatches, &aux[dflt]),
	}, nil
}

// DeriveAll derives every named union. Failing unions are reported in the
// returned diagnostics and left out of the expansions.
func DeriveAll(pkg *model.Package, names []string) ([]*model.Expansion, error) {
	var (
		expansions []*model.Expansion
		diags      Diagnostics
		owners     = make(map[string]string)
	)

	for _, name := range names {
		exp, err := Derive(pkg, name)
		if err != nil {
			diag, ok := err.(*Diagnostic)
			if !ok {
				return nil, err
			}
			diags = append(diags, diag)
			continue
		}

		var conflict *Diagnostic
		for _, v := range exp.Union.Variants {
			if owner, ok := owners[v.Name]; ok {
				conflict = failAt(v.Pos, "type %s already belongs to union %s", v.Name, owner)
				break
			}
		}
		if conflict != nil {
			diags = append(diags, conflict)
			continue
		}
		for _, v := range exp.Union.Variants {
			owners[v.Name] = exp.Union.Name
		}
		expansions = append(expansions, exp)
	}

	diags.Sort()
	return expansions, diags.Err()
}

// Discover returns the types carrying the //enumtmpl:derive directive, in
// declaration order.
func Discover(pkg *model.Package) []string {
	var names []string
	for _, t := range pkg.Types {
		if HasDirective(t.Directives, DeriveMarker) {
			names = append(names, t.Name)
		}
	}
	return names
}

// BuildUnion checks that typ is a sealed interface and collects its variants.
func BuildUnion(pkg *model.Package, typ *model.Type) (*model.Union, error) {
	switch typ.Kind {
	case model.KindInterface:
	case model.KindTypeSet:
		return nil, failAt(typ.KeywordPos, "enumtmpl cannot be used with type-set unions")
	case model.KindStruct:
		return nil, failAt(typ.KeywordPos, "enumtmpl can only be used with sealed interfaces")
	default:
		return nil, failAt(typ.Pos, "enumtmpl can only be used with sealed interfaces")
	}
	if len(typ.Markers) == 0 {
		return nil, failAt(typ.Pos, "union interface needs an unexported marker method")
	}

	union := &model.Union{
		Name:       typ.Name,
		Pos:        typ.Pos,
		Marker:     typ.Markers[0],
		TypeParams: typ.TypeParams,
		Directives: typ.Directives,
	}

	for i := range pkg.Types {
		t := &pkg.Types[i]
		method, ok := findMethod(t, union.Marker)
		if !ok || t.Name == typ.Name {
			continue
		}
		v, err := buildVariant(union, t, method.Pointer)
		if err != nil {
			return nil, err
		}
		v.Index = len(union.Variants)
		union.Variants = append(union.Variants, v)
	}

	if len(union.Variants) == 0 {
		return nil, failAt(typ.Pos, "union %s has no variants implementing %s()", typ.Name, union.Marker)
	}
	return union, nil
}

func buildVariant(union *model.Union, t *model.Type, pointer bool) (model.Variant, error) {
	v := model.Variant{
		Name:       t.Name,
		Pos:        t.Pos,
		Pointer:    pointer,
		TypeParams: t.TypeParams,
		Directives: t.Directives,
	}

	if !sameParams(union.TypeParams, t.TypeParams) {
		return v, failAt(t.Pos, "variant must declare the union's type parameters %s",
			TypeArgs(union.TypeParams))
	}

	switch t.Kind {
	case model.KindStruct:
		if len(t.Fields) == 0 {
			v.Shape = model.ShapeUnit
		} else {
			v.Shape = model.ShapeNamed
			v.Fields = t.Fields
		}
	case model.KindNamed:
		v.Shape = model.ShapeUnnamed
		v.Fields = []model.Field{{Type: t.Underlying, Pos: t.Pos}}
	default:
		return v, failAt(t.Pos, "variant %s must be a defined type, found %s", t.Name, t.Kind)
	}
	return v, nil
}

func lookup(pkg *model.Package, name string) *model.Type {
	for i := range pkg.Types {
		if pkg.Types[i].Name == name {
			return &pkg.Types[i]
		}
	}
	return nil
}

func findMethod(t *model.Type, name string) (model.Method, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return model.Method{}, false
}

func sameParams(union, variant []model.TypeParam) bool {
	if len(union) != len(variant) {
		return false
	}
	for i := range union {
		if union[i].Name != variant[i].Name {
			return false
		}
	}
	return true
}

// TypeArgs renders type parameters as instantiation arguments: [K, V].
func TypeArgs(params []model.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// TypeParams renders type parameters as a declaration list: [K comparable, V any].
func TypeParams(params []model.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	decls := make([]string, len(params))
	for i, p := range params {
		decls[i] = p.Name + " " + p.Constraint
	}
	return "[" + strings.Join(decls, ", ") + "]"
}
