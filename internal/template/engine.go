package template

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders shell command templates. It exposes the sprig text
// functions plus shquote, which single-quotes a value for POSIX shells.
type Engine struct {
	funcs template.FuncMap
}

// New creates a new template engine
func New() *Engine {
	funcs := sprig.TxtFuncMap()
	funcs["shquote"] = ShellQuote
	return &Engine{funcs: funcs}
}

// Render executes text against context. Referencing a key that is not in
// the context is an error rather than rendering "<no value>".
func (e *Engine) Render(name, text string, context Context) (string, error) {
	tmpl, err := template.New(name).
		Funcs(e.funcs).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, map[string]interface{}(context)); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return sb.String(), nil
}

// ShellQuote wraps s in single quotes so a shell treats it as one literal word.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
