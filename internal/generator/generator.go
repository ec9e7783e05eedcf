// Package generator renders derived template unions as Go source.
package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"text/template"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/imports"

	"enumtmpl/internal/config"
	"enumtmpl/internal/derive"
	"enumtmpl/internal/model"
)

//go:embed templates/enumtmpl.go.tmpl
var templates embed.FS

// ErrNoUnions is returned when no type is selected for derivation.
var ErrNoUnions = errors.New("no unions selected: use -type or the //enumtmpl:derive directive")

// Generator derives template unions and writes the generated file.
type Generator struct {
	config   *config.Config
	template *template.Template
	log      logrus.FieldLogger
}

// New creates a new Generator.
func New(cfg *config.Config, log logrus.FieldLogger) *Generator {
	tmpl := template.Must(template.New("enumtmpl.go.tmpl").
		Funcs(templateFuncs()).
		ParseFS(templates, "templates/enumtmpl.go.tmpl"))
	return &Generator{
		config:   cfg,
		template: tmpl,
		log:      log,
	}
}

// TemplateData represents data passed to the output template.
type TemplateData struct {
	Package      string             // Package name of the generated file
	Imports      []model.Import     // Imports carried over from the package
	Render       string             // Identifier the render package is referred to by
	RenderAlias  string             // Import name of the render package, if not its own
	RenderImport string             // Import path of the render package
	Expansions   []*model.Expansion // Derived unions
}

// Generate derives the selected unions of pkg and writes the formatted file
// to w. Nothing is written when any union fails to derive.
func (g *Generator) Generate(pkg *model.Package, w io.Writer) error {
	names := g.config.SelectTypes(derive.Discover(pkg))
	if len(names) == 0 {
		return ErrNoUnions
	}

	expansions, err := derive.DeriveAll(pkg, names)
	if err != nil {
		return err
	}

	for _, exp := range expansions {
		g.log.WithFields(logrus.Fields{
			"union":    exp.Union.Name,
			"variants": len(exp.Union.Variants),
			"default":  exp.Facade.Default.Variant.Name,
		}).Debug("derived union")
	}

	src, err := g.Source(pkg, expansions)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Source executes the output template and formats the result.
func (g *Generator) Source(pkg *model.Package, expansions []*model.Expansion) ([]byte, error) {
	renderImport := g.config.Options.RenderImport
	data := &TemplateData{
		Package:      pkg.Name,
		Imports:      carriedImports(pkg.Imports, renderImport),
		Render:       renderName(pkg.Imports, renderImport),
		RenderImport: renderImport,
		Expansions:   expansions,
	}
	if data.Render != path.Base(renderImport) {
		data.RenderAlias = data.Render
	}

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	filename := filepath.Join(pkg.Dir, g.config.OutputName(pkg.Name))
	src, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}

// carriedImports returns the package imports that field types and
// constraints may refer to. Unused ones are pruned when formatting.
func carriedImports(all []model.Import, renderImport string) []model.Import {
	var result []model.Import
	for _, imp := range all {
		switch {
		case imp.Alias == "_" || imp.Alias == ".":
		case imp.Path == "fmt" || imp.Path == "io" || imp.Path == renderImport:
		default:
			result = append(result, imp)
		}
	}
	return result
}

// renderName picks the identifier of the render import, avoiding a clash
// with another package imported as render.
func renderName(all []model.Import, renderImport string) string {
	name := path.Base(renderImport)
	for _, imp := range all {
		if imp.Path == renderImport {
			continue
		}
		used := imp.Alias
		if used == "" {
			used = path.Base(imp.Path)
		}
		if used == name {
			return "enumtmpl" + name
		}
	}
	return name
}
