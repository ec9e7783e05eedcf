package derive

import "enumtmpl/internal/model"

// EmitFacade assembles the union-level code: the dispatch functions, and on
// every variant the render.Template methods and the display adapter. Static
// metadata is read off the default variant's auxiliary type.
func EmitFacade(union *model.Union, dispatches []model.Dispatch, dflt *model.AuxType) model.Facade {
	args := TypeArgs(union.TypeParams)
	f := model.Facade{
		Union:        union,
		TypeParams:   TypeParams(union.TypeParams),
		TypeArgs:     args,
		Dispatches:   dispatches,
		Default:      dflt,
		AssertValues: len(union.TypeParams) == 0,
	}

	for _, v := range union.Variants {
		r := model.Receiver{Type: v.Name + args}
		if v.Pointer {
			r.Type = "*" + r.Type
			r.Zero = "(" + r.Type + ")(nil)"
		} else {
			r.Zero = "*new(" + r.Type + ")"
		}
		f.Receivers = append(f.Receivers, r)
	}
	return f
}
