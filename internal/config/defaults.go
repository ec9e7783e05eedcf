// Package config provides configuration handling for enumtmpl.
package config

// DefaultRenderImport is the import path of the render package used by
// generated code.
const DefaultRenderImport = "enumtmpl/render"

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		RenderImport: DefaultRenderImport,
	}
}
