package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"listing-pages/config"
	"listing-pages/output"
	"listing-pages/parser"

	"github.com/charmbracelet/log"
)

const defaultConfigPath = "config.yaml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// batchRecord is one line of -batch input. HTML is left untyped so that
// records carrying something other than a string are rejected by the parser.
type batchRecord struct {
	Source string `json:"source"`
	HTML   any    `json:"html"`
}

// run parses the command line, processes every input and returns the exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("listing-pages", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", defaultConfigPath, "Path to configuration file")
	format := flags.String("format", "", "Output format: table, json or csv (overrides config)")
	backend := flags.String("backend", "", "Markup backend: goquery or xpath (overrides config)")
	batch := flags.Bool("batch", false, "Read JSON lines of {\"source\", \"html\"} instead of raw HTML")
	verbose := flags.Bool("v", false, "Enable debug logging")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	logger := log.NewWithOptions(stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(logger, *configPath)
	if err != nil {
		logger.Error("Failed to load config", "path", *configPath, "err", err)
		return 1
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *backend != "" {
		cfg.Parser.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "err", err)
		return 1
	}

	p, err := cfg.NewParser()
	if err != nil {
		logger.Error("Failed to create parser", "err", err)
		return 1
	}
	out, err := output.NewWriter(cfg.Output.Format, stdout)
	if err != nil {
		logger.Error("Failed to create output writer", "err", err)
		return 1
	}

	proc := &processor{parser: p, out: out, logger: logger, batch: *batch}

	inputs := flags.Args()
	if len(inputs) == 0 {
		proc.processReader("stdin", stdin)
	}
	for _, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			logger.Error("Failed to open input", "path", path, "err", err)
			proc.failed++
			continue
		}
		proc.processReader(path, f)
		f.Close()
	}

	logger.Info("Done", "documents", proc.documents, "entries", proc.entries, "failed", proc.failed)
	if proc.failed > 0 {
		return 1
	}
	return 0
}

// loadConfig falls back to defaults only when the default config file is absent
func loadConfig(logger *log.Logger, path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		logger.Debug("Loaded config", "path", path)
		return cfg, nil
	}
	if path == defaultConfigPath && errors.Is(err, os.ErrNotExist) {
		logger.Debug("No config file, using defaults", "path", path)
		return config.GetDefaultConfig(), nil
	}
	return nil, err
}

type processor struct {
	parser *parser.Parser
	out    output.Writer
	logger *log.Logger
	batch  bool

	documents int
	entries   int
	failed    int
}

func (p *processor) processReader(name string, r io.Reader) {
	if !p.batch {
		data, err := io.ReadAll(r)
		if err != nil {
			p.logger.Error("Failed to read input", "source", name, "err", err)
			p.failed++
			return
		}
		p.process(name, string(data))
		return
	}

	dec := json.NewDecoder(r)
	for line := 1; ; line++ {
		var rec batchRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			p.logger.Error("Failed to decode batch record", "source", name, "record", line, "err", err)
			p.failed++
			return
		}
		source := rec.Source
		if source == "" {
			source = fmt.Sprintf("%s#%d", name, line)
		}
		p.process(source, rec.HTML)
	}
}

func (p *processor) process(source string, html any) {
	entries, err := p.parser.ParseValue(html)
	if err != nil {
		p.logger.Error("Failed to parse page", "source", source, "err", err)
		p.failed++
		return
	}

	p.documents++
	p.entries += len(entries)
	p.logger.Debug("Parsed page", "source", source, "entries", len(entries))

	if err := p.out.Write(source, entries); err != nil {
		p.logger.Error("Failed to write entries", "source", source, "err", err)
		p.failed++
	}
}
