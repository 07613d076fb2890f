// Package dom provides the handful of browser-style conveniences
// that codemark needs on top of golang.org/x/net/html:
// attribute lookup and reading or replacing an element's inner markup.
package dom

import (
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/html"
)

// Attr returns the value of the attribute named key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Class returns the class attribute of n,
// or an empty string if it doesn't have one.
func Class(n *html.Node) string {
	class, _ := Attr(n, "class")
	return class
}

// InnerHTML renders the children of n back to markup.
func InnerHTML(n *html.Node) (string, error) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	return sb.String(), nil
}

// SetInnerHTML replaces the children of n
// with the result of parsing markup in the context of n.
//
// Like assigning to innerHTML in a browser,
// unbalanced or misnested markup is repaired by the HTML parser.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return errtrace.Wrap(err)
	}

	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
