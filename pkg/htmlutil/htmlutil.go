package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// GetTrimmedTexts returns the text content of every node in the selection with
// surrounding whitespace removed, in document order.
func GetTrimmedTexts(sel *goquery.Selection) []string {
	texts := make([]string, 0, len(sel.Nodes))
	for _, n := range sel.Nodes {
		texts = append(texts, strings.TrimSpace(GetText(n)))
	}
	return texts
}
