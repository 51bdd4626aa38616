// Package content turns post bodies into something a terminal can show and
// turns what the user types into the HTML the server stores.
package content

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultExcerptLength is the excerpt size used by post lists.
const DefaultExcerptLength = 150

// block elements get a line break in PlainText so paragraphs do not run
// into each other.
var block = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Tr: true, atom.Hr: true,
}

// PlainText returns the text of an HTML fragment. Paragraph-like elements
// end up on separate lines; whitespace inside a line is collapsed.
func PlainText(fragment string) string {
	nodes, err := parse(fragment)
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	var buf bytes.Buffer
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && block[n.DataAtom] {
			buf.WriteByte('\n')
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	lines := strings.Split(buf.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// Excerpt returns the plain text of fragment on a single line, cut to max
// runes and suffixed with "..." when longer.
func Excerpt(fragment string, max int) string {
	text := strings.Join(strings.Fields(PlainText(fragment)), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// FirstImageURL returns the src of the first <img>, or "" if there is none.
func FirstImageURL(fragment string) string {
	nodes, err := parse(fragment)
	if err != nil {
		return ""
	}

	var find func(n *html.Node) string
	find = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			for _, a := range n.Attr {
				if a.Key == "src" {
					return a.Val
				}
			}
			return ""
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if src := find(c); src != "" {
				return src
			}
		}
		return ""
	}
	for _, n := range nodes {
		if src := find(n); src != "" {
			return src
		}
	}
	return ""
}

func parse(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}
