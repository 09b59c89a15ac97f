package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"listing-pages/models"

	"github.com/stretchr/testify/require"
)

var sample = []models.Entry{
	models.NewEntry("page 2", "/p/page-2"),
	{Text: "page 1"},
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	_, err := NewWriter("xml", &bytes.Buffer{})
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.False(t, IsFormat("xml"))
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, w.Write("a.html", sample))
	require.NoError(t, w.Write("b.html", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.JSONEq(t, `{"source":"a.html","entries":[{"text":"page 2","link":"/p/page-2"},{"text":"page 1"}]}`, lines[0])
	require.JSONEq(t, `{"source":"b.html","entries":[]}`, lines[1])

	var rec jsonRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Nil(t, rec.Entries[1].Link)
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatCSV, &buf)
	require.NoError(t, err)

	require.NoError(t, w.Write("a.html", sample))
	require.NoError(t, w.Write("b.html", []models.Entry{sample[0], models.NewEntry("empty", "")}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"source", "index", "text", "link", "has_link"},
		{"a.html", "1", "page 2", "/p/page-2", "true"},
		{"a.html", "2", "page 1", "", "false"},
		{"b.html", "1", "page 2", "/p/page-2", "true"},
		{"b.html", "2", "empty", "", "true"},
	}, rows)
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatTable, &buf)
	require.NoError(t, err)

	require.NoError(t, w.Write("listing.html", sample))

	out := buf.String()
	require.Contains(t, out, "listing.html")
	require.Contains(t, out, "/p/page-2")
	require.Contains(t, out, "page 1")
	require.Contains(t, out, "-")
}
