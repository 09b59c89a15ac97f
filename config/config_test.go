package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"listing-pages/output"
	"listing-pages/parser"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "generation:\n  max_generated: 5\n"))
	require.NoError(t, err)

	require.Equal(t, parser.BackendGoquery, cfg.Parser.Backend)
	require.Equal(t, parser.DefaultSelector, cfg.Parser.Selector)
	require.Equal(t, "href", cfg.Parser.LinkAttr)
	require.Equal(t, 5, cfg.Generation.MaxGenerated)
	require.Equal(t, output.FormatTable, cfg.Output.Format)
}

func TestLoadConfig_XPathBackend(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
parser:
  backend: xpath
output:
  format: json
`))
	require.NoError(t, err)
	require.Equal(t, parser.DefaultXPath, cfg.Selector())

	p, err := cfg.NewParser()
	require.NoError(t, err)

	entries, err := p.ParsePage(`<div class="data_list"><div class="data"><a href="/p/page-2">page 2</a></div></div>`)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "/p/page-1", entries[1].LinkOr(""))
}

func TestLoadConfig_EmptyValuesUseDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty xpath", "parser:\n  backend: xpath\n  xpath: \"\"\n"},
		{"empty selector", "parser:\n  selector: \"\"\n"},
		{"empty link attr and format", "parser:\n  link_attr: \"\"\noutput:\n  format: \"\"\n"},
		{"empty backend", "parser:\n  backend: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			require.NoError(t, err)

			require.Equal(t, parser.DefaultSelector, cfg.Parser.Selector)
			require.Equal(t, parser.DefaultXPath, cfg.Parser.XPath)
			require.Equal(t, "href", cfg.Parser.LinkAttr)
			require.Equal(t, output.FormatTable, cfg.Output.Format)

			p, err := cfg.NewParser()
			require.NoError(t, err)
			entries, err := p.ParsePage(`<div class="data_list"><div class="data"><a href="/e/page-2">page 2</a></div></div>`)
			require.NoError(t, err)
			require.Len(t, entries, 2)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"unknown backend", "parser:\n  backend: regex\n", parser.ErrUnknownBackend},
		{"unknown format", "output:\n  format: xml\n", output.ErrUnknownFormat},
		{"bad selector", "parser:\n  selector: \"a[[\"\n", nil},
		{"negative limit", "generation:\n  max_generated: -2\n", nil},
		{"bad yaml", "parser: [\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.target != nil {
				require.True(t, errors.Is(err, tt.target), "error %v is not %v", err, tt.target)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, GetDefaultConfig().Validate())
}
