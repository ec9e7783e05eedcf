package render

import (
	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizePolicy = bluemonday.UGCPolicy()

func init() {
	if !pongo2.FilterExists("sanitize") {
		_ = pongo2.RegisterFilter("sanitize", filterSanitize)
	}
}

// filterSanitize strips unsafe markup with the bluemonday UGC policy and
// marks the result safe, so autoescaping leaves the kept markup intact.
func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(sanitizePolicy.Sanitize(in.String())), nil
}
