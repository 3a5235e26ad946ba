// Package config loads engine settings from YAML or JSON-with-comments
// files and validates them against an embedded CUE schema.
//
// A config file only overrides what it names:
//
//	profile: insights
//	max_query_length: 2048
//	fields:
//	  region: [metadata.region.keyword]
//	search_fields: [title^2, body]
//	fuzziness: AUTO
//	analyzer: english
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/roach88/portalsearch/internal/compile"
	"github.com/roach88/portalsearch/internal/grammar"
	"github.com/roach88/portalsearch/internal/mapping"
	"github.com/roach88/portalsearch/internal/profile"
)

// Config holds the tunable parts of parsing and compilation.
// Zero values mean "use the built-in default".
type Config struct {
	Profile        string              `yaml:"profile" json:"profile,omitempty"`
	MaxQueryLength int                 `yaml:"max_query_length" json:"max_query_length,omitempty"`
	Fields         map[string][]string `yaml:"fields" json:"fields,omitempty"`
	SearchFields   []string            `yaml:"search_fields" json:"search_fields,omitempty"`
	Fuzziness      string              `yaml:"fuzziness" json:"fuzziness,omitempty"`
	Analyzer       string              `yaml:"analyzer" json:"analyzer,omitempty"`
}

// Format is a config file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON        // JSON with comments and trailing commas
)

// FormatFor picks the syntax from a file extension. Anything that is not
// .json, .jsonc or .hujson is read as YAML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc", ".hujson":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Load reads, decodes and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatJSON:
		std, err := standardizeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(std))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and means all defaults.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// standardizeJSON strips comments and trailing commas from JSON.
func standardizeJSON(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return nil, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}

// SearchProfile returns the configured profile, or profile.Default.
func (c *Config) SearchProfile() (profile.SearchProfile, error) {
	if c == nil || c.Profile == "" {
		return profile.Default, nil
	}
	return profile.Parse(c.Profile)
}

// FieldTable returns the default field table with the configured
// overrides applied.
func (c *Config) FieldTable() *mapping.Table {
	if c == nil || len(c.Fields) == 0 {
		return mapping.Default()
	}
	return mapping.Default().WithFields(c.Fields)
}

// ParserOptions translates the config into grammar options.
func (c *Config) ParserOptions() ([]grammar.Option, error) {
	p, err := c.SearchProfile()
	if err != nil {
		return nil, err
	}
	opts := []grammar.Option{grammar.WithProfile(p)}
	if c != nil && c.MaxQueryLength > 0 {
		opts = append(opts, grammar.WithMaxLength(c.MaxQueryLength))
	}
	return opts, nil
}

// CompilerOptions translates the config into compile options.
func (c *Config) CompilerOptions() ([]compile.Option, error) {
	p, err := c.SearchProfile()
	if err != nil {
		return nil, err
	}
	opts := []compile.Option{
		compile.WithProfile(p),
		compile.WithFieldTable(c.FieldTable()),
	}
	if c == nil {
		return opts, nil
	}
	return append(opts,
		compile.WithSearchFields(c.SearchFields...),
		compile.WithFuzziness(c.Fuzziness),
		compile.WithAnalyzer(c.Analyzer),
	), nil
}
