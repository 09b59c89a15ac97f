package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Markup loads HTML into a queryable document
type Markup interface {
	// Name identifies the backend in configuration
	Name() string
	// DefaultSelector is the listing anchor query in this backend's selector language
	DefaultSelector() string
	// CheckSelector reports whether selector is usable with this backend
	CheckSelector(selector string) error
	Parse(html string) (Document, error)
}

// Document is a parsed HTML tree
type Document interface {
	// Select returns the elements matching selector in document order
	Select(selector string) []Element
}

// Element is a single selected node
type Element interface {
	Text() string
	Attr(name string) (string, bool)
}

// DefaultSelector matches anchors under a .data element nested in a .data_list element
const DefaultSelector = ".data_list .data a"

// GoqueryMarkup selects elements with CSS selectors through goquery
type GoqueryMarkup struct{}

// NewGoqueryMarkup creates the CSS selector backend
func NewGoqueryMarkup() *GoqueryMarkup {
	return &GoqueryMarkup{}
}

func (m *GoqueryMarkup) Name() string {
	return BackendGoquery
}

func (m *GoqueryMarkup) DefaultSelector() string {
	return DefaultSelector
}

// CheckSelector compiles selector with cascadia, which goquery uses under the hood
func (m *GoqueryMarkup) CheckSelector(selector string) error {
	if _, err := cascadia.Compile(selector); err != nil {
		return fmt.Errorf("invalid CSS selector %q: %w", selector, err)
	}
	return nil
}

func (m *GoqueryMarkup) Parse(html string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &goqueryDocument{doc: doc}, nil
}

type goqueryDocument struct {
	doc *goquery.Document
}

func (d *goqueryDocument) Select(selector string) []Element {
	var elements []Element
	d.doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		elements = append(elements, goqueryElement{s: s})
	})
	return elements
}

type goqueryElement struct {
	s *goquery.Selection
}

func (e goqueryElement) Text() string {
	return e.s.Text()
}

func (e goqueryElement) Attr(name string) (string, bool) {
	return e.s.Attr(name)
}
