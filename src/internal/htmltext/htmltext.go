// Package htmltext flattens HTML into whitespace-normalized plain text
// suitable for substring search. Layout fidelity is not a goal.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	reSpaces     = regexp.MustCompile(`[\r\t ]+`)
	reNewlines   = regexp.MustCompile(`\n+`)
	reEdgeSpaces = regexp.MustCompile(` ?\n ?`)
)

// Elements whose contents never contain searchable prose.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"template": true,
}

// Elements that end a text block.
var blockElements = map[string]bool{
	"p":   true,
	"div": true,
	"li":  true,
	"tr":  true,
	"h1":  true,
	"h2":  true,
	"h3":  true,
	"h4":  true,
	"h5":  true,
	"h6":  true,
}

// Flatten converts an HTML document into plain text: body region only,
// comments dropped, block boundaries as newlines, whitespace collapsed.
func Flatten(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}

	var sb strings.Builder
	walk(root, &sb, 0)
	return collapse(sb.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func walk(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 100 {
		return
	}
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipElements[n.Data] {
			return
		}
		if n.Data == "br" {
			sb.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, sb, depth+1)
	}

	if n.Type == html.ElementNode {
		if blockElements[n.Data] {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
}

func collapse(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = reEdgeSpaces.ReplaceAllString(s, "\n")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
