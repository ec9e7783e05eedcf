package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultRenderImport, cfg.Options.RenderImport)
	assert.Equal(t, "views_enumtmpl.go", cfg.OutputName("Views"))
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "enumtmpl.yaml",
			content: `options:
  output: pages_gen.go
  renderImport: example.com/app/render
  includeTypes: [Page, Mail]
  excludeTypes: [Mail]
  buildTags: [integration]
`,
		},
		{
			name: "json",
			file: "enumtmpl.json",
			content: `{"options": {
  "output": "pages_gen.go",
  "renderImport": "example.com/app/render",
  "includeTypes": ["Page", "Mail"],
  "excludeTypes": ["Mail"],
  "buildTags": ["integration"]
}}`,
		},
		{
			name:    "unknown extension",
			file:    "enumtmplrc",
			content: "options:\n  output: pages_gen.go\n  renderImport: example.com/app/render\n  includeTypes: [Page, Mail]\n  excludeTypes: [Mail]\n  buildTags: [integration]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			require.NoError(t, cfg.LoadFile(writeConfig(t, tt.file, tt.content)))

			assert.Equal(t, "pages_gen.go", cfg.OutputName("views"))
			assert.Equal(t, "example.com/app/render", cfg.Options.RenderImport)
			assert.Equal(t, []string{"integration"}, cfg.Options.BuildTags)
			assert.Equal(t, []string{"Page"}, cfg.SelectTypes([]string{"Other"}))
		})
	}
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.LoadFile(writeConfig(t, "c.yml", "options:\n  excludeTypes: [Draft]\n")))

	assert.Equal(t, DefaultRenderImport, cfg.Options.RenderImport)
	assert.Equal(t, []string{"Page"}, cfg.SelectTypes([]string{"Page", "Draft"}))
}

func TestLoadFileErrors(t *testing.T) {
	cfg := New()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, cfg.LoadFile(writeConfig(t, "bad.json", "{")))
	assert.Error(t, cfg.LoadFile(writeConfig(t, "bad.yaml", "options: [")))
}

func TestSelectTypes(t *testing.T) {
	cfg := New()
	assert.Empty(t, cfg.SelectTypes(nil))
	assert.Equal(t, []string{"A", "B"}, cfg.SelectTypes([]string{"A", "B"}))

	cfg.Options.IncludeTypes = []string{"C"}
	assert.Equal(t, []string{"C"}, cfg.SelectTypes([]string{"A", "B"}))

	cfg.Options.ExcludeTypes = []string{"C"}
	assert.Empty(t, cfg.SelectTypes([]string{"A"}))
}
