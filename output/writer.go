package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"listing-pages/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Output formats accepted by NewWriter
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ErrUnknownFormat is returned for an output format that is not supported
var ErrUnknownFormat = errors.New("unknown output format")

// Writer renders the entries extracted from one source document
type Writer interface {
	Write(source string, entries []models.Entry) error
}

// IsFormat reports whether NewWriter accepts format
func IsFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatCSV:
		return true
	}
	return false
}

// NewWriter creates a Writer for format that writes to w
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch format {
	case FormatTable:
		return &TableWriter{w: w}, nil
	case FormatJSON:
		return &JSONWriter{enc: json.NewEncoder(w)}, nil
	case FormatCSV:
		return &CSVWriter{w: csv.NewWriter(w)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// TableWriter prints one table per source
type TableWriter struct {
	w io.Writer
}

func (t *TableWriter) Write(source string, entries []models.Entry) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(t.w)
	tw.SetTitle(source)
	tw.AppendHeader(table.Row{"#", "Text", "Link"})
	for i, e := range entries {
		tw.AppendRow(table.Row{i + 1, e.Text, e.LinkOr("-")})
	}
	tw.AppendFooter(table.Row{"", "Total", len(entries)})
	tw.Render()
	return nil
}

// JSONWriter writes one JSON object per source on its own line
type JSONWriter struct {
	enc *json.Encoder
}

type jsonRecord struct {
	Source  string         `json:"source"`
	Entries []models.Entry `json:"entries"`
}

func (j *JSONWriter) Write(source string, entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	if err := j.enc.Encode(jsonRecord{Source: source, Entries: entries}); err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	return nil
}

// CSVWriter writes a header once, then one row per entry. Index is 1-based
// like the table's # column; has_link separates a missing href from an empty one.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

func (c *CSVWriter) Write(source string, entries []models.Entry) error {
	if !c.wroteHeader {
		if err := c.w.Write([]string{"source", "index", "text", "link", "has_link"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		c.wroteHeader = true
	}

	for i, e := range entries {
		if err := c.w.Write([]string{source, strconv.Itoa(i + 1), e.Text, e.LinkOr(""), strconv.FormatBool(e.HasLink())}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	c.w.Flush()
	return c.w.Error()
}
