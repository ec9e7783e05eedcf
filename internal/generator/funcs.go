package generator

import (
	"strconv"
	"strings"
	"text/template"

	"enumtmpl/internal/derive"
)

// templateFuncs returns the output template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"quote":      strconv.Quote,
		"join":       strings.Join,
		"typeArgs":   derive.TypeArgs,
		"typeParams": derive.TypeParams,
	}
}
