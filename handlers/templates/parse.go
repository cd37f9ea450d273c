package templates

import (
	"embed"
	"encoding/json"
	"html/template"
	"strconv"
)

// FS holds the page templates.
//
//go:embed *.html
var FS embed.FS

// ParseTemplates parses HTML templates from the embedded filesystem.
// It takes a variadic list of template file paths and returns a parsed template
// or an error if parsing fails.
func ParseTemplates(files ...string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
		"formatFloat": func(f float64) string {
			return strconv.FormatFloat(f, 'f', -1, 64)
		},
	}

	return template.New("").Funcs(funcMap).ParseFS(FS, files...)
}
