package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"listing-pages/models"
)

// Backend names accepted by NewMarkup
const (
	BackendGoquery = "goquery"
	BackendXPath   = "xpath"
)

var (
	digitRunRe      = regexp.MustCompile(`\d+`)
	trailingDigitRe = regexp.MustCompile(`\d+$`)
)

// NewMarkup returns the markup backend registered under name
func NewMarkup(name string) (Markup, error) {
	switch name {
	case "", BackendGoquery:
		return NewGoqueryMarkup(), nil
	case BackendXPath:
		return NewXPathMarkup(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Options tunes element selection and page generation
type Options struct {
	Selector     string // empty means the backend's default selector
	LinkAttr     string // empty means "href"
	MaxGenerated int    // cap on synthesized entries, 0 for no cap
}

// Parser extracts listing entries from a page and fills in entries for the
// earlier pages of the listing
type Parser struct {
	markup Markup
	opts   Options
}

// NewParser creates a Parser using goquery and the default selector
func NewParser() *Parser {
	return &Parser{
		markup: NewGoqueryMarkup(),
		opts:   Options{Selector: DefaultSelector, LinkAttr: "href"},
	}
}

// NewParserWithOptions creates a Parser for a specific backend. The selector
// is checked here so that parsing itself never fails on configuration.
func NewParserWithOptions(markup Markup, opts Options) (*Parser, error) {
	if markup == nil {
		markup = NewGoqueryMarkup()
	}
	if opts.Selector == "" {
		opts.Selector = markup.DefaultSelector()
	}
	if opts.LinkAttr == "" {
		opts.LinkAttr = "href"
	}
	if opts.MaxGenerated < 0 {
		return nil, fmt.Errorf("max generated must not be negative, got %d", opts.MaxGenerated)
	}
	if err := markup.CheckSelector(opts.Selector); err != nil {
		return nil, err
	}

	return &Parser{markup: markup, opts: opts}, nil
}

var defaultParser = NewParser()

// ParsePage extracts entries from html with the default Parser
func ParsePage(html string) ([]models.Entry, error) {
	return defaultParser.ParsePage(html)
}

// ParseValue rejects anything that is not a string with an InvalidInputError
// and otherwise behaves like ParsePage
func (p *Parser) ParseValue(v any) ([]models.Entry, error) {
	html, ok := v.(string)
	if !ok {
		return nil, &InvalidInputError{Got: fmt.Sprintf("%T", v)}
	}
	return p.ParsePage(html)
}

// ParsePage extracts the listing anchors of html in document order. When the
// last anchor's text carries a number n, entries for pages n-1 down to 1 are
// generated from it and appended.
func (p *Parser) ParsePage(html string) ([]models.Entry, error) {
	doc, err := p.markup.Parse(html)
	if err != nil {
		return nil, err
	}

	entries := []models.Entry{}
	for _, el := range doc.Select(p.opts.Selector) {
		entry := models.Entry{Text: el.Text()}
		if link, ok := el.Attr(p.opts.LinkAttr); ok {
			entry.Link = &link
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	return append(entries, p.generate(entries[len(entries)-1])...), nil
}

// generate derives entries for the pages before last. The number that drives
// the count is the first digit run of the text, while the rewritten digits
// are the trailing run; the two are looked up independently.
func (p *Parser) generate(last models.Entry) []models.Entry {
	digits, ok := extractNumber(last.Text)
	if !ok {
		return nil
	}

	num, err := strconv.Atoi(digits)
	if err != nil {
		// does not fit in an int
		return nil
	}

	count := num - 1
	if p.opts.MaxGenerated > 0 && count > p.opts.MaxGenerated {
		count = p.opts.MaxGenerated
	}
	if count <= 0 {
		return nil
	}

	prefix, width := last.Text, -1
	if loc := trailingDigitRe.FindStringIndex(last.Text); loc != nil {
		prefix, width = last.Text[:loc[0]], loc[1]-loc[0]
	}
	oldSlug := hyphenateFirstSpace(last.Text)

	generated := make([]models.Entry, 0, min(count, 1024))
	for i := num - 1; i > 0 && len(generated) < count; i-- {
		newText := last.Text
		if width >= 0 {
			newText = prefix + padNumber(i, width)
		}

		entry := models.Entry{Text: newText}
		if last.Link != nil {
			newLink := strings.Replace(*last.Link, oldSlug, hyphenateFirstSpace(newText), 1)
			entry.Link = &newLink
		}
		generated = append(generated, entry)
	}

	return generated
}

// extractNumber returns the first run of digits in s
func extractNumber(s string) (string, bool) {
	m := digitRunRe.FindString(s)
	return m, m != ""
}

// padNumber formats n with leading zeros up to width digits
func padNumber(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// hyphenateFirstSpace turns "page 5" into "page-5". Only the first space is
// replaced; link formats built from multi-word labels rely on that.
func hyphenateFirstSpace(s string) string {
	return strings.Replace(s, " ", "-", 1)
}
