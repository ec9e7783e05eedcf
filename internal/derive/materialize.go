package derive

import (
	"fmt"

	"enumtmpl/internal/model"
)

// AuxName returns the auxiliary type name of a variant. Union name and index
// keep it unique within the package.
func AuxName(union *model.Union, v *model.Variant) string {
	return fmt.Sprintf("_%s_%d_%s", union.Name, v.Index, v.Name)
}

// Materialize builds one auxiliary type per variant and returns the index of
// the default variant: the first one without its own annotation, or the
// first variant when every variant is annotated.
func Materialize(union *model.Union, unionSpec *model.TemplateSpec) ([]model.AuxType, int, error) {
	aux := make([]model.AuxType, 0, len(union.Variants))
	dflt := -1
	phantom := "[0]*" + union.Name + TypeArgs(union.TypeParams)

	for i := range union.Variants {
		v := &union.Variants[i]

		local, err := ExtractVariant(v.Directives)
		if err != nil {
			return nil, 0, err
		}
		if local == nil && dflt < 0 {
			dflt = i
		}
		spec := local
		if spec == nil {
			spec = unionSpec
		}
		if spec == nil {
			return nil, 0, failAt(v.Pos, "need a template annotation")
		}

		aux = append(aux, model.AuxType{
			Name:       AuxName(union, v),
			Variant:    v,
			Fields:     auxFields(v),
			Phantom:    phantom,
			Spec:       *spec,
			TypeParams: union.TypeParams,
		})
	}

	if dflt < 0 {
		dflt = 0
	}
	aux[dflt].IsDefault = true
	return aux, dflt, nil
}

// auxFields rewrites every field of the variant to a pointer to its type.
func auxFields(v *model.Variant) []model.AuxField {
	switch v.Shape {
	case model.ShapeNamed:
		fields := make([]model.AuxField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = model.AuxField{Name: f.Name, Type: "*" + f.Type, Source: f.Name}
		}
		return fields
	case model.ShapeUnnamed:
		fields := make([]model.AuxField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = model.AuxField{Name: fmt.Sprintf("_%d", i), Type: "*" + f.Type}
		}
		return fields
	}
	return nil
}
