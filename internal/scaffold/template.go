package scaffold

import (
	"fmt"
	"strings"
)

// Template is a prompt template with optional default variables. Tokens of
// the form $name are replaced at render time; anything else passes through
// untouched.
type Template struct {
	Content   string         `json:"content" yaml:"content"`
	Variables map[string]any `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// NewTemplate creates a template with no default variables.
func NewTemplate(content string) Template {
	return Template{Content: content}
}

// Render substitutes $name tokens using the template defaults merged with
// context, where context entries win. The content is scanned once, left to
// right: a token is '$' followed by the longest run of letters, digits, or
// underscores. Tokens without a matching key stay verbatim, and substituted
// values are never re-scanned, so rendering cannot recurse. Render never
// mutates the template.
func (t Template) Render(context map[string]any) string {
	merged := make(map[string]any, len(t.Variables)+len(context))
	for k, v := range t.Variables {
		merged[k] = v
	}
	for k, v := range context {
		merged[k] = v
	}

	s := t.Content
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}

		j := i + 1
		for j < len(s) && isTokenChar(s[j]) {
			j++
		}
		if j == i+1 {
			// Bare '$' with no token after it.
			b.WriteByte(s[i])
			i++
			continue
		}

		if v, ok := merged[s[i+1:j]]; ok {
			b.WriteString(stringify(v))
		} else {
			b.WriteString(s[i:j])
		}
		i = j
	}

	return b.String()
}

func isTokenChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}
