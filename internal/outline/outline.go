// Package outline extracts the heading structure of a markdown buffer so
// the editor can jump between sections.
package outline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a markdown outline. Line is 1-based.
type Heading struct {
	Level int
	Title string
	Line  int
}

var md = goldmark.New()

// Extract parses src as markdown and returns its headings in buffer order.
func Extract(src string) []Heading {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}

		seg := h.Lines().At(0)
		out = append(out, Heading{
			Level: h.Level,
			Title: strings.TrimSpace(string(seg.Value(source))),
			Line:  1 + strings.Count(src[:seg.Start], "\n"),
		})
		return ast.WalkContinue, nil
	})
	return out
}

// IsMarkdown reports whether name looks like a markdown file.
func IsMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
