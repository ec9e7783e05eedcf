package derive

import (
	"strings"

	"enumtmpl/internal/model"
)

const (
	// DirectivePrefix namespaces every enumtmpl comment directive.
	DirectivePrefix = "enumtmpl:"
	// TemplateMarker is the name of the template annotation.
	TemplateMarker = "template"
	// DeriveMarker selects a type for derivation when no -type is given.
	DeriveMarker = "derive"
)

// ExtractUnion returns the union-level template annotation, if any.
func ExtractUnion(directives []model.Directive) (*model.TemplateSpec, error) {
	return extract(directives, "cannot have more than one template annotation for a type")
}

// ExtractVariant returns the variant-level template annotation, if any.
func ExtractVariant(directives []model.Directive) (*model.TemplateSpec, error) {
	return extract(directives, "cannot have more than one template annotation for a variant")
}

func extract(directives []model.Directive, duplicate string) (*model.TemplateSpec, error) {
	var found *model.TemplateSpec
	for _, d := range directives {
		args, ok := templateArgs(d.Text)
		if !ok {
			continue
		}
		if found != nil {
			return nil, failAt(d.Pos, "%s", duplicate)
		}
		found = &model.TemplateSpec{Args: args, Pos: d.Pos}
	}
	return found, nil
}

// templateArgs returns the argument list of a template directive in list
// shape, e.g. `enumtmpl:template(ext="txt", source="A")`.
func templateArgs(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, DirectivePrefix+TemplateMarker)
	if !ok || !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return "", false
	}
	args := rest[1 : len(rest)-1]
	if !balanced(args) {
		return "", false
	}
	return strings.TrimSpace(args), true
}

// HasDirective reports whether a bare //enumtmpl:<name> directive is present.
func HasDirective(directives []model.Directive, name string) bool {
	for _, d := range directives {
		if strings.TrimSpace(d.Text) == DirectivePrefix+name {
			return true
		}
	}
	return false
}

// balanced reports whether parentheses outside string literals are balanced.
func balanced(s string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '`':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && quote == 0
}
