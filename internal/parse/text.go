package parse

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeText returns the concatenated text content of a raw HTML node.
// Used for script elements, where goquery's Text() would also be fine
// but a direct walk avoids building an intermediate selection.
func nodeText(node *html.Node) string {
	var b strings.Builder
	collectText(node, &b)
	return b.String()
}

func collectText(node *html.Node, b *strings.Builder) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		b.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
}

// cleanText collapses runs of whitespace to single spaces and trims the
// result. Listing anchors and spec cells often carry layout whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
