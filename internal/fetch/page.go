package fetch

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// CleanText collapses whitespace and replaces en dashes with hyphens
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "–", "-")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Page is a parsed HTML document
type Page struct {
	URL  *url.URL
	root *html.Node
}

// Table is an HTML table with its header row
type Table struct {
	Header []string
	Rows   [][]string
}

// ParsePage parses an HTML document fetched from rawURL
func ParsePage(rawURL string, r io.Reader) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeFetchFailed, "invalid url").WithDetail("url", rawURL)
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeFetchFailed, "failed to parse html").WithDetail("url", rawURL)
	}
	return &Page{URL: u, root: root}, nil
}

// Paragraphs returns the cleaned text of every <p> element. When container
// is set, only paragraphs below the first element whose tag, id or class
// equals container are returned.
func (p *Page) Paragraphs(container string) []string {
	scope := p.root
	if container != "" {
		scope = find(p.root, func(n *html.Node) bool { return matches(n, container) })
		if scope == nil {
			return nil
		}
	}

	var texts []string
	walk(scope, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			if t := CleanText(textContent(n)); t != "" {
				texts = append(texts, t)
			}
			return false
		}
		return true
	})
	return texts
}

// Links returns the absolute http(s) targets of every anchor, without
// fragments, in document order and without duplicates
func (p *Page) Links() []string {
	seen := make(map[string]bool)
	var links []string
	walk(p.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			return true
		}
		href := attr(n, "href")
		if href == "" {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := p.URL.ResolveReference(ref)
		abs.Fragment = ""
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}
		if s := abs.String(); !seen[s] {
			seen[s] = true
			links = append(links, s)
		}
		return true
	})
	return links
}

// Tables returns every table of the page. The first row with <th> cells, or
// the first row, is the header.
func (p *Page) Tables() []Table {
	var tables []Table
	walk(p.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, parseTable(n))
			return false
		}
		return true
	})
	return tables
}

// Column returns the cells of the named column
func (t Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, h := range t.Header {
		if strings.EqualFold(h, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	var cells []string
	for _, row := range t.Rows {
		if idx < len(row) {
			cells = append(cells, row[idx])
		}
	}
	return cells, true
}

func parseTable(table *html.Node) Table {
	var t Table
	walk(table, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if n.DataAtom == atom.Table && n != table {
			return false
		}
		if n.DataAtom != atom.Tr {
			return true
		}

		var cells []string
		header := false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Th:
				header = true
				cells = append(cells, CleanText(textContent(c)))
			case atom.Td:
				cells = append(cells, CleanText(textContent(c)))
			}
		}
		if len(cells) == 0 {
			return false
		}
		if t.Header == nil && (header || len(t.Rows) == 0) {
			t.Header = cells
		} else {
			t.Rows = append(t.Rows, cells)
		}
		return false
	})
	return t
}

// walk visits n and its descendants in document order. Returning false from
// visit skips the children of that node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

func matches(n *html.Node, selector string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.Data == selector || attr(n, "id") == selector {
		return true
	}
	for _, class := range strings.Fields(attr(n, "class")) {
		if class == selector {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && (c.DataAtom == atom.Script || c.DataAtom == atom.Style):
			return false
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			b.WriteString(" ")
		}
		return true
	})
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
