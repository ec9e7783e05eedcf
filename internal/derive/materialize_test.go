package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"enumtmpl/internal/model"
)

func TestMaterialize(t *testing.T) {
	pkg := parse(t, messageSource)
	union, err := BuildUnion(pkg, lookup(pkg, "Message"))
	if err != nil {
		t.Fatalf("BuildUnion: %v", err)
	}
	unionSpec, err := ExtractUnion(union.Directives)
	if err != nil {
		t.Fatalf("ExtractUnion: %v", err)
	}

	aux, dflt, err := Materialize(union, unionSpec)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if dflt != 0 {
		t.Errorf("default = %d, want 0", dflt)
	}

	type summary struct {
		Name    string
		Fields  []model.AuxField
		Phantom string
		Args    string
		Default bool
	}
	var got []summary
	for _, a := range aux {
		got = append(got, summary{a.Name, a.Fields, a.Phantom, a.Spec.Args, a.IsDefault})
	}
	want := []summary{
		{
			Name:    "_Message_0_Fallback",
			Phantom: "[0]*Message[T]",
			Args:    `ext="txt", source="DEFAULT"`,
			Default: true,
		},
		{
			Name:    "_Message_1_Quoted",
			Fields:  []model.AuxField{{Name: "_0", Type: "*string"}},
			Phantom: "[0]*Message[T]",
			Args:    `ext="html", source="x{{ self.0 }}y"`,
		},
		{
			Name: "_Message_2_Detail",
			Fields: []model.AuxField{
				{Name: "Some", Type: "*T", Source: "Some"},
				{Name: "More", Type: "*uint32", Source: "More"},
			},
			Phantom: "[0]*Message[T]",
			Args:    `ext="txt", source="{{ Some }}|{{ More }}"`,
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("aux types mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterializeDefaultVariant(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantDefault string
	}{
		{
			name: "first unannotated variant",
			src: `package views

//enumtmpl:template(ext="md", source="default")
type Page interface{ isPage() }

//enumtmpl:template(ext="html", source="a")
type A struct{}

type B struct{}

type C struct{}

func (A) isPage() {}
func (B) isPage() {}
func (C) isPage() {}
`,
			wantDefault: "B",
		},
		{
			name: "every variant annotated",
			src: `package views

type Page interface{ isPage() }

//enumtmpl:template(ext="html", source="a")
type A struct{}

//enumtmpl:template(ext="txt", source="b")
type B struct{}

func (A) isPage() {}
func (B) isPage() {}
`,
			wantDefault: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := Derive(parse(t, tt.src), "Page")
			if err != nil {
				t.Fatalf("Derive: %v", err)
			}
			if got := exp.Facade.Default.Variant.Name; got != tt.wantDefault {
				t.Errorf("default = %s, want %s", got, tt.wantDefault)
			}
			for _, a := range exp.Aux {
				if a.IsDefault != (a.Variant.Name == tt.wantDefault) {
					t.Errorf("%s IsDefault = %v", a.Name, a.IsDefault)
				}
			}
		})
	}
}

func TestMaterializeMissingAnnotation(t *testing.T) {
	src := `package views

type Page interface{ isPage() }

//enumtmpl:template(ext="txt", source="a")
type A struct{}

type B struct {
	Title string
}

func (A) isPage()  {}
func (*B) isPage() {}
`
	_, err := Derive(parse(t, src), "Page")
	diagnostic(t, err, "need a template annotation", 8)
}

func TestMaterializeDuplicateVariantAnnotation(t *testing.T) {
	src := `package views

type Page interface{ isPage() }

//enumtmpl:template(ext="txt", source="a")
//enumtmpl:template(ext="txt", source="b")
type A struct{}

func (A) isPage() {}
`
	_, err := Derive(parse(t, src), "Page")
	diagnostic(t, err, "more than one template annotation for a variant", 6)
}

func TestAuxNameIsUniqueAcrossUnions(t *testing.T) {
	v := &model.Variant{Name: "Item", Index: 2}
	a := AuxName(&model.Union{Name: "Page"}, v)
	b := AuxName(&model.Union{Name: "Mail"}, v)
	if a == b || a != "_Page_2_Item" {
		t.Errorf("names = %s, %s", a, b)
	}
}
