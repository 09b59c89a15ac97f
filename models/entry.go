package models

// Entry represents one listing link scraped from, or generated for, a page
type Entry struct {
	Text string  `json:"text"`
	Link *string `json:"link,omitempty"` // nil when the anchor has no href
}

// NewEntry creates an Entry with a present link
func NewEntry(text, link string) Entry {
	return Entry{Text: text, Link: &link}
}

// HasLink reports whether the entry carries a link
func (e Entry) HasLink() bool {
	return e.Link != nil
}

// LinkOr returns the link, or def when it is absent
func (e Entry) LinkOr(def string) string {
	if e.Link == nil {
		return def
	}
	return *e.Link
}
