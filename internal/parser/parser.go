// Package parser provides Go package parsing functionality.
package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"enumtmpl/internal/model"
)

// directivePattern matches //prefix:name comment lines (no space after //).
var directivePattern = regexp.MustCompile(`^//[a-z0-9]+:[a-z]`)

// Parser parses Go source files and extracts type definitions.
type Parser struct {
	fset  *token.FileSet
	build build.Context
	skip  map[string]bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithBuildTags adds build tags used to select files.
func WithBuildTags(tags ...string) Option {
	return func(p *Parser) {
		p.build.BuildTags = append(p.build.BuildTags, tags...)
	}
}

// WithSkipFiles excludes files by base name, typically the generated output.
func WithSkipFiles(names ...string) Option {
	return func(p *Parser) {
		for _, name := range names {
			p.skip[name] = true
		}
	}
}

// New creates a new Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		fset:  token.NewFileSet(),
		build: build.Default,
		skip:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FileSet returns the file set positions are recorded in.
func (p *Parser) FileSet() *token.FileSet {
	return p.fset
}

// ParseDir parses the non-test Go files of a package directory.
func (p *Parser) ParseDir(dir string) (*model.Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if p.skip[name] {
			continue
		}
		ok, err := p.build.MatchFile(dir, name)
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", name, err)
		}
		if ok {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	pkg, err := p.ParseFiles(paths...)
	if err != nil {
		return nil, err
	}
	pkg.Dir = dir
	return pkg, nil
}

// ParseFiles parses the given files as one package.
func (p *Parser) ParseFiles(paths ...string) (*model.Package, error) {
	result := &model.Package{}
	if len(paths) > 0 {
		result.Dir = filepath.Dir(paths[0])
	}

	index := make(map[string]int)
	methods := make(map[string][]model.Method)
	seenImports := make(map[string]bool)

	for _, path := range paths {
		file, err := parser.ParseFile(p.fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if result.Name == "" {
			result.Name = file.Name.Name
		} else if result.Name != file.Name.Name {
			return nil, fmt.Errorf("parsing %s: found package %s, expected %s", path, file.Name.Name, result.Name)
		}
		result.Files = append(result.Files, path)

		for _, imp := range p.extractImports(file) {
			if seenImports[imp.Path] {
				continue
			}
			seenImports[imp.Path] = true
			result.Imports = append(result.Imports, imp)
		}

		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					continue
				}
				for _, spec := range decl.Specs {
					typeSpec, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					doc := typeSpec.Doc
					if doc == nil && !decl.Lparen.IsValid() {
						doc = decl.Doc
					}
					index[typeSpec.Name.Name] = len(result.Types)
					result.Types = append(result.Types, p.extractType(typeSpec, doc))
				}
			case *ast.FuncDecl:
				if decl.Recv == nil || len(decl.Recv.List) == 0 {
					continue
				}
				name, pointer := receiverName(decl.Recv.List[0].Type)
				if name == "" {
					continue
				}
				methods[name] = append(methods[name], model.Method{
					Name:    decl.Name.Name,
					Pointer: pointer,
				})
			}
		}
	}

	for name, ms := range methods {
		if i, ok := index[name]; ok {
			result.Types[i].Methods = append(result.Types[i].Methods, ms...)
		}
	}

	return result, nil
}

// extractImports extracts import statements from a Go file.
func (p *Parser) extractImports(file *ast.File) []model.Import {
	var imports []model.Import
	for _, imp := range file.Imports {
		i := model.Import{
			Path: strings.Trim(imp.Path.Value, `"`),
		}
		if imp.Name != nil {
			i.Alias = imp.Name.Name
		}
		imports = append(imports, i)
	}
	return imports
}

// extractType extracts type information from an ast.TypeSpec.
func (p *Parser) extractType(spec *ast.TypeSpec, doc *ast.CommentGroup) model.Type {
	t := model.Type{
		Name:       spec.Name.Name,
		Pos:        p.fset.Position(spec.Name.Pos()),
		IsExported: ast.IsExported(spec.Name.Name),
		Doc:        commentText(doc),
		Directives: p.directives(doc),
		TypeParams: p.extractTypeParams(spec.TypeParams),
	}

	if spec.Assign.IsValid() {
		t.Kind = model.KindAlias
		t.Underlying = p.exprString(spec.Type)
		return t
	}

	switch typeExpr := spec.Type.(type) {
	case *ast.StructType:
		t.Kind = model.KindStruct
		t.KeywordPos = p.fset.Position(typeExpr.Struct)
		t.Fields = p.extractFields(typeExpr.Fields)

	case *ast.InterfaceType:
		t.Kind = model.KindInterface
		t.KeywordPos = p.fset.Position(typeExpr.Interface)
		for _, m := range typeExpr.Methods.List {
			if len(m.Names) == 0 {
				if isTypeTerm(m.Type) {
					t.Kind = model.KindTypeSet
				}
				continue
			}
			fn, ok := m.Type.(*ast.FuncType)
			if !ok {
				continue
			}
			name := m.Names[0].Name
			if !ast.IsExported(name) && fn.Params.NumFields() == 0 && fn.Results.NumFields() == 0 {
				t.Markers = append(t.Markers, name)
			}
		}

	default:
		t.Kind = model.KindNamed
		t.Underlying = p.exprString(typeExpr)
	}

	return t
}

// extractTypeParams extracts type parameters with their constraint text.
func (p *Parser) extractTypeParams(list *ast.FieldList) []model.TypeParam {
	if list == nil {
		return nil
	}
	var params []model.TypeParam
	for _, f := range list.List {
		constraint := p.exprString(f.Type)
		for _, name := range f.Names {
			params = append(params, model.TypeParam{Name: name.Name, Constraint: constraint})
		}
	}
	return params
}

// extractFields extracts fields from a struct.
func (p *Parser) extractFields(fieldList *ast.FieldList) []model.Field {
	if fieldList == nil {
		return nil
	}

	var fields []model.Field
	for _, f := range fieldList.List {
		typ := p.exprString(f.Type)

		if len(f.Names) == 0 {
			// Embedded field
			fields = append(fields, model.Field{
				Name:       embeddedName(f.Type),
				Type:       typ,
				Pos:        p.fset.Position(f.Pos()),
				IsEmbedded: true,
			})
			continue
		}
		for _, name := range f.Names {
			if name.Name == "_" {
				continue
			}
			fields = append(fields, model.Field{
				Name: name.Name,
				Type: typ,
				Pos:  p.fset.Position(name.Pos()),
			})
		}
	}
	return fields
}

// directives returns the directive lines of a comment group.
func (p *Parser) directives(cg *ast.CommentGroup) []model.Directive {
	if cg == nil {
		return nil
	}
	var result []model.Directive
	for _, c := range cg.List {
		if !directivePattern.MatchString(c.Text) {
			continue
		}
		result = append(result, model.Directive{
			Text: strings.TrimRight(c.Text[2:], " \t"),
			Pos:  p.fset.Position(c.Slash),
		})
	}
	return result
}

// exprString prints an expression as Go source.
func (p *Parser) exprString(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fset, expr); err != nil {
		return "invalid"
	}
	return buf.String()
}

// receiverName returns the base type name of a method receiver.
func receiverName(expr ast.Expr) (string, bool) {
	pointer := false
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer = true
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.IndexExpr:
		expr = t.X
	case *ast.IndexListExpr:
		expr = t.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name, pointer
	}
	return "", false
}

// embeddedName returns the field name implied by an embedded type.
func embeddedName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.SelectorExpr:
			return t.Sel.Name
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// predeclared lists the predeclared non-interface type names that can only
// appear in an interface as type terms.
var predeclared = map[string]bool{
	"bool": true, "string": true, "byte": true, "rune": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

// isTypeTerm reports whether an embedded interface element is a type term
// (~T, A | B, or a predeclared non-interface type).
func isTypeTerm(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.BinaryExpr:
		return t.Op == token.OR
	case *ast.UnaryExpr:
		return t.Op == token.TILDE
	case *ast.Ident:
		return predeclared[t.Name]
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.StructType, *ast.StarExpr:
		return true
	}
	return false
}

// commentText extracts text from a comment group.
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}
