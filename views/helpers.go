package views

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// metaLine formats a single <meta> element. attr is "name" or "property".
func metaLine(attr, key, value string) string {
	return `<meta ` + attr + `="` + templ.EscapeString(key) + `" content="` + templ.EscapeString(value) + `">`
}

// tagWriter accumulates head elements, one per line.
type tagWriter struct {
	lines []string
}

func (t *tagWriter) add(line string) {
	t.lines = append(t.lines, line)
}

// optional adds a meta element only when value is non-empty.
func (t *tagWriter) optional(attr, key, value string) {
	if value == "" {
		return
	}
	t.add(metaLine(attr, key, value))
}

func (t *tagWriter) dimension(key string, v int) {
	if v <= 0 {
		return
	}
	t.add(metaLine("property", key, strconv.Itoa(v)))
}

func (t *tagWriter) String() string {
	return strings.Join(t.lines, "\n")
}
