package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"enumtmpl/internal/model"
)

func TestBuildDispatch(t *testing.T) {
	exp, err := Derive(parse(t, messageSource), "Message")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	render := exp.Facade.Dispatches[0]
	if !render.BindSelf {
		t.Error("dispatch with bindings must bind self")
	}

	want := []model.Case{
		{Type: "Fallback[T]", Literal: "_Message_0_Fallback[T]{}"},
		{Type: "*Fallback[T]", Literal: "_Message_0_Fallback[T]{}"},
		{
			Type:     "Quoted[T]",
			Bindings: []model.Binding{{Name: "_0", Expr: "(*string)(&self)"}},
			Literal:  "_Message_1_Quoted[T]{_0: _0}",
		},
		{
			Type:     "*Quoted[T]",
			Guard:    true,
			Bindings: []model.Binding{{Name: "_0", Expr: "(*string)(self)"}},
			Literal:  "_Message_1_Quoted[T]{_0: _0}",
		},
		{
			Type:  "*Detail[T]",
			Guard: true,
			Bindings: []model.Binding{
				{Name: "_0", Expr: "&self.Some"},
				{Name: "_1", Expr: "&self.More"},
			},
			Literal: "_Message_2_Detail[T]{Some: _0, More: _1}",
		},
	}
	if diff := cmp.Diff(want, render.Cases); diff != "" {
		t.Errorf("cases mismatch (-want +got):\n%s", diff)
	}

	into := exp.Facade.Dispatches[1]
	if diff := cmp.Diff(render.Cases, into.Cases); diff != "" {
		t.Errorf("entry points must share cases (-render +renderInto):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"w"}, into.Entry.Args); diff != "" {
		t.Errorf("renderInto args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDispatchUnitOnly(t *testing.T) {
	src := `package views

type Letter interface{ isLetter() }

//enumtmpl:template(ext="txt", source="A")
type A struct{}

//enumtmpl:template(ext="txt", source="B")
type B struct{}

func (A) isLetter()  {}
func (*B) isLetter() {}
`
	exp, err := Derive(parse(t, src), "Letter")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	d := exp.Facade.Dispatches[0]
	if d.BindSelf {
		t.Error("unit variants never read self")
	}
	var types []string
	for _, c := range d.Cases {
		if c.Guard {
			t.Errorf("case %s should not be guarded", c.Type)
		}
		types = append(types, c.Type)
	}
	if diff := cmp.Diff([]string{"A", "*A", "*B"}, types); diff != "" {
		t.Errorf("case types mismatch (-want +got):\n%s", diff)
	}
	if !exp.Facade.AssertValues {
		t.Error("non-generic unions should be asserted")
	}
}
