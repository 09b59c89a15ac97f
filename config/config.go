package config

import (
	"errors"
	"fmt"
	"os"

	"listing-pages/output"
	"listing-pages/parser"

	"gopkg.in/yaml.v3"
)

// Config holds parser, generation and output settings
type Config struct {
	Parser struct {
		Backend  string `yaml:"backend"`
		Selector string `yaml:"selector"`
		XPath    string `yaml:"xpath"`
		LinkAttr string `yaml:"link_attr"`
	} `yaml:"parser"`
	Generation struct {
		MaxGenerated int `yaml:"max_generated"`
	} `yaml:"generation"`
	Output struct {
		Format string `yaml:"format"`
	} `yaml:"output"`
}

// LoadConfig loads configuration from a YAML file. Fields left out of the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Parser.Backend = parser.BackendGoquery
	cfg.Parser.Selector = parser.DefaultSelector
	cfg.Parser.XPath = parser.DefaultXPath
	cfg.Parser.LinkAttr = "href"
	cfg.Generation.MaxGenerated = 0
	cfg.Output.Format = output.FormatTable
	return cfg
}

// fillDefaults restores defaults for keys that were present but empty
func (c *Config) fillDefaults() {
	def := GetDefaultConfig()
	if c.Parser.Backend == "" {
		c.Parser.Backend = def.Parser.Backend
	}
	if c.Parser.Selector == "" {
		c.Parser.Selector = def.Parser.Selector
	}
	if c.Parser.XPath == "" {
		c.Parser.XPath = def.Parser.XPath
	}
	if c.Parser.LinkAttr == "" {
		c.Parser.LinkAttr = def.Parser.LinkAttr
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
}

// Validate checks backend, selector, format and limits
func (c *Config) Validate() error {
	markup, err := parser.NewMarkup(c.Parser.Backend)
	if err != nil {
		return err
	}
	if err := markup.CheckSelector(c.Selector()); err != nil {
		return err
	}
	if c.Generation.MaxGenerated < 0 {
		return errors.New("generation.max_generated must not be negative")
	}
	if !output.IsFormat(c.Output.Format) {
		return fmt.Errorf("%w: %q", output.ErrUnknownFormat, c.Output.Format)
	}
	return nil
}

// Selector returns the query for the configured backend
func (c *Config) Selector() string {
	if c.Parser.Backend == parser.BackendXPath {
		return c.Parser.XPath
	}
	return c.Parser.Selector
}

// NewParser builds a parser from the configuration
func (c *Config) NewParser() (*parser.Parser, error) {
	markup, err := parser.NewMarkup(c.Parser.Backend)
	if err != nil {
		return nil, err
	}
	return parser.NewParserWithOptions(markup, parser.Options{
		Selector:     c.Selector(),
		LinkAttr:     c.Parser.LinkAttr,
		MaxGenerated: c.Generation.MaxGenerated,
	})
}
