package parser

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// DefaultXPath is the XPath form of DefaultSelector. Class names are matched
// as whitespace separated tokens, the way CSS class selectors match them.
const DefaultXPath = `//*[contains(concat(' ', normalize-space(@class), ' '), ' data_list ')]` +
	`//*[contains(concat(' ', normalize-space(@class), ' '), ' data ')]//a`

// XPathMarkup selects elements with XPath expressions through htmlquery
type XPathMarkup struct{}

// NewXPathMarkup creates the XPath backend
func NewXPathMarkup() *XPathMarkup {
	return &XPathMarkup{}
}

func (m *XPathMarkup) Name() string {
	return BackendXPath
}

func (m *XPathMarkup) DefaultSelector() string {
	return DefaultXPath
}

func (m *XPathMarkup) CheckSelector(selector string) error {
	if _, err := xpath.Compile(selector); err != nil {
		return fmt.Errorf("invalid XPath expression %q: %w", selector, err)
	}
	return nil
}

func (m *XPathMarkup) Parse(content string) (Document, error) {
	root, err := htmlquery.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &xpathDocument{root: root}, nil
}

type xpathDocument struct {
	root *html.Node
}

// Select returns nil for expressions that do not compile; callers check
// selectors up front with CheckSelector. Matches are returned once each, in
// document order, even when nested containers reach the same node twice.
func (d *xpathDocument) Select(selector string) []Element {
	nodes, err := htmlquery.QueryAll(d.root, selector)
	if err != nil || len(nodes) == 0 {
		return nil
	}

	matched := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		matched[n] = true
	}

	elements := make([]Element, 0, len(matched))
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if matched[n] {
			elements = append(elements, xpathElement{n: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return elements
}

type xpathElement struct {
	n *html.Node
}

func (e xpathElement) Text() string {
	return htmlquery.InnerText(e.n)
}

// Attr walks the attribute list directly since htmlquery.SelectAttr
// cannot tell an empty attribute from a missing one.
func (e xpathElement) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
