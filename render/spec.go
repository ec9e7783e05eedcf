package render

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
)

// Spec is a parsed template annotation, e.g. `ext="html", source="<b>{{ name }}</b>"`.
type Spec struct {
	Ext    string // File extension without the dot
	Source string // Inline template source
	Path   string // Template file, relative to the template file system
	Escape string // "html", "none", or "" for the extension default
	Mime   string // MIME type override

	hasSource bool
}

// ParseSpec parses a comma-separated list of key = "string" pairs.
func ParseSpec(args string) (Spec, error) {
	var (
		spec Spec
		s    scanner.Scanner
		errs scanner.ErrorList
		seen = make(map[string]bool)
	)
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(args))
	s.Init(file, []byte(args), func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)

	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF || (tok == token.SEMICOLON && lit == "\n") {
			break
		}
		if tok != token.IDENT {
			return Spec{}, fmt.Errorf("%w: expected key, found %s", ErrSpec, describe(tok, lit))
		}
		key := lit

		if _, tok, lit = s.Scan(); tok != token.ASSIGN {
			return Spec{}, fmt.Errorf("%w: expected = after %s, found %s", ErrSpec, key, describe(tok, lit))
		}
		_, tok, lit = s.Scan()
		if err := errs.Err(); err != nil {
			return Spec{}, fmt.Errorf("%w: %v", ErrSpec, err)
		}
		if tok != token.STRING {
			return Spec{}, fmt.Errorf("%w: expected string value for %s, found %s", ErrSpec, key, describe(tok, lit))
		}
		value, err := strconv.Unquote(lit)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: value of %s: %v", ErrSpec, key, err)
		}

		if seen[key] {
			return Spec{}, fmt.Errorf("%w: duplicate key %s", ErrSpec, key)
		}
		seen[key] = true
		switch key {
		case "ext":
			spec.Ext = value
		case "source":
			spec.Source = value
			spec.hasSource = true
		case "path":
			spec.Path = value
		case "escape":
			spec.Escape = value
		case "mime":
			spec.Mime = value
		default:
			return Spec{}, fmt.Errorf("%w: unknown key %s", ErrSpec, key)
		}

		_, tok, lit = s.Scan()
		if tok == token.EOF || (tok == token.SEMICOLON && lit == "\n") {
			break
		}
		if tok != token.COMMA {
			return Spec{}, fmt.Errorf("%w: expected , after %s, found %s", ErrSpec, key, describe(tok, lit))
		}
	}
	if err := errs.Err(); err != nil {
		return Spec{}, fmt.Errorf("%w: %v", ErrSpec, err)
	}

	switch {
	case spec.hasSource && spec.Path != "":
		return Spec{}, fmt.Errorf("%w: source and path are mutually exclusive", ErrSpec)
	case !spec.hasSource && spec.Path == "":
		return Spec{}, fmt.Errorf("%w: need a source or a path", ErrSpec)
	}
	switch spec.Escape {
	case "", "html", "none":
	default:
		return Spec{}, fmt.Errorf("%w: unknown escape mode %q", ErrSpec, spec.Escape)
	}
	return spec, nil
}

func describe(tok token.Token, lit string) string {
	if lit != "" && tok != token.SEMICOLON {
		return lit
	}
	if tok == token.SEMICOLON || tok == token.EOF {
		return "end of annotation"
	}
	return tok.String()
}
