package util

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var allowedTags = map[string]bool{
	"div": true, "b": true, "em": true, "strong": true, "a": true,
	"p": true, "br": true, "span": true, "ul": true, "ol": true,
	"li": true, "h1": true, "h2": true, "h3": true, "hr": true, "img": true,
}

var allowedAttrs = map[string]bool{
	"href": true, "style": true, "src": true,
}

// SanitizeDescription reduces provider HTML to a small tag whitelist.
// Disallowed elements are unwrapped (their text survives), disallowed
// attributes are dropped, and literal newlines are removed. It never fails:
// input that will not parse comes back cleaned but otherwise untouched.
func SanitizeDescription(s string) string {
	s = html.UnescapeString(s)
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return strings.ReplaceAll(s, "\n", "")
	}

	var b strings.Builder
	for _, n := range nodes {
		renderSanitized(&b, n)
	}
	return strings.ReplaceAll(b.String(), "\n", "")
}

func renderSanitized(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		if allowedTags[n.Data] {
			b.WriteString("<" + n.Data)
			for _, a := range n.Attr {
				if allowedAttrs[a.Key] {
					b.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
				}
			}
			if voidTag(n.Data) && n.FirstChild == nil {
				b.WriteString(">")
				return
			}
			b.WriteString(">")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				renderSanitized(b, c)
			}
			b.WriteString("</" + n.Data + ">")
			return
		}
		// unwrap: keep children, drop the element itself
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderSanitized(b, c)
		}
	default:
		// comments, doctypes etc. are dropped
	}
}

func voidTag(tag string) bool {
	return tag == "br" || tag == "hr" || tag == "img"
}
