package render

import "strings"

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	r, err := renderers.lookup(opts)
	if err != nil {
		return "", err
	}
	return r.render(content)
}

// MarkdownWithWidth renders with default options at the given width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// Reply renders a model reply, falling back to the raw text when the
// renderer fails. The result never carries glamour's outer blank lines.
func Reply(content string, opts Options) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
