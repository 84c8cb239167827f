// Package markdown inspects the prose sections of feature documents.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PlaceholderPrefix marks prose that was never written.
const PlaceholderPrefix = "TODO"

// Section is a heading and what directly follows it.
type Section struct {
	Title string
	Level int
	// Placeholder is true when the first paragraph under the heading
	// starts with PlaceholderPrefix.
	Placeholder bool
}

type Outliner struct {
	markdown goldmark.Markdown
}

func NewOutliner() *Outliner {
	return &Outliner{markdown: goldmark.New()}
}

// Outline returns the document's headings in order.
func (o *Outliner) Outline(source []byte) []Section {
	doc := o.markdown.Parser().Parse(text.NewReader(source))

	var sections []Section
	current := -1
	seenBody := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			sections = append(sections, Section{
				Title: extractText(node, source),
				Level: node.Level,
			})
			current = len(sections) - 1
			seenBody = false
		case *ast.Paragraph:
			if current < 0 || seenBody {
				continue
			}
			seenBody = true
			body := strings.TrimSpace(extractText(node, source))
			sections[current].Placeholder = strings.HasPrefix(body, PlaceholderPrefix)
		default:
			if current >= 0 {
				seenBody = true
			}
		}
	}

	return sections
}

// Placeholders returns the titles of sections still holding placeholder prose.
func (o *Outliner) Placeholders(source []byte) []string {
	var titles []string
	for _, s := range o.Outline(source) {
		if s.Placeholder {
			titles = append(titles, s.Title)
		}
	}
	return titles
}

func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
				if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
