package processor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/apiglot/apiglot"
	"golang.org/x/net/html"
)

// HTMLProcessor lists the visible text of a page, for dry runs.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return NewHTMLProcessorWithIgnoredTags(DefaultIgnoredTags)
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool, len(tags))
	for _, tag := range tags {
		ignored[strings.ToLower(strings.TrimSpace(tag))] = true
	}
	return &HTMLProcessor{ignoredTags: ignored}
}

// Extract parses content and returns its translatable text nodes in document
// order, each distinct text once. An Astro frontmatter block is skipped, as
// are text nodes that are only a {expression}.
func (p *HTMLProcessor) Extract(content string) ([]TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(StripFrontmatter(content)))
	if err != nil {
		return nil, fmt.Errorf("parsing page markup: %w", err)
	}

	var nodes []TextNode
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && p.skip(n) {
			return
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" && !isExpression(text) {
				hash := apiglot.HashText(text)
				if !seen[hash] {
					seen[hash] = true
					nodes = append(nodes, TextNode{
						Text:    text,
						Hash:    hash,
						Context: describeParent(n),
					})
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}

	return nodes, nil
}

func (p *HTMLProcessor) skip(n *html.Node) bool {
	if p.ignoredTags[strings.ToLower(n.Data)] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == "data-no-translate" {
			return true
		}
	}
	return false
}

// StripFrontmatter removes a leading "---" fenced block.
func StripFrontmatter(content string) string {
	rest := strings.TrimLeft(content, "\ufeff \t\r\n")
	first, body, ok := strings.Cut(rest, "\n")
	if !ok || strings.TrimSpace(first) != "---" {
		return content
	}

	for len(body) > 0 {
		line, next, _ := strings.Cut(body, "\n")
		if strings.TrimSpace(line) == "---" {
			return next
		}
		body = next
	}
	return content
}

func isExpression(text string) bool {
	return strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}")
}

// describeParent renders the element a text node sits in, e.g. `<p class="lead">`.
func describeParent(n *html.Node) string {
	parent := n.Parent
	if parent == nil || parent.Type != html.ElementNode {
		return ""
	}

	for _, key := range []string{"class", "id"} {
		for _, attr := range parent.Attr {
			if attr.Key == key && attr.Val != "" {
				return fmt.Sprintf("<%s %s=%q>", parent.Data, key, attr.Val)
			}
		}
	}
	return fmt.Sprintf("<%s>", parent.Data)
}

var _ Inspector = (*HTMLProcessor)(nil)
