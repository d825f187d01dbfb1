// Package config defines the formatkit configuration: format options,
// per-language overrides and the set of files a run covers. The types are
// plain data; internal/configloader finds, merges and validates them.
package config

import (
	"slices"
	"strings"

	"github.com/yaklabco/formatkit/pkg/format/options"
)

// OutputFormat selects the reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatDiff    OutputFormat = "diff"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists every output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatDiff, FormatJSON, FormatSummary}
}

// IsValid reports whether f names a known reporter.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// Config is the root configuration.
type Config struct {
	// Formatter holds the options every language starts from.
	Formatter options.Overrides `json:"formatter,omitempty" toml:"formatter,omitempty" yaml:"formatter,omitempty"`

	// Languages holds overrides keyed by language name or alias, such as
	// "javascript" or "md".
	Languages map[string]options.Overrides `json:"languages,omitempty" toml:"languages,omitempty" yaml:"languages,omitempty"`

	// Ignore and Include are doublestar globs relative to the working
	// directory.
	Ignore  []string `json:"ignore,omitempty"  toml:"ignore,omitempty"  yaml:"ignore,omitempty"`
	Include []string `json:"include,omitempty" toml:"include,omitempty" yaml:"include,omitempty"`

	// Jobs is the number of files formatted at once; 0 means one per CPU.
	Jobs int `json:"jobs,omitempty" toml:"jobs,omitempty" yaml:"jobs,omitempty"`

	UseEditorconfig   *bool `json:"useEditorconfig,omitempty"   toml:"useEditorconfig,omitempty"   yaml:"useEditorconfig,omitempty"`
	VerifyIdempotence *bool `json:"verifyIdempotence,omitempty" toml:"verifyIdempotence,omitempty" yaml:"verifyIdempotence,omitempty"`

	Format OutputFormat `json:"format,omitempty" toml:"format,omitempty" yaml:"format,omitempty"`

	// Write and Check come from flags only.
	Write bool `json:"-" toml:"-" yaml:"-"`
	Check bool `json:"-" toml:"-" yaml:"-"`
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Format:            FormatText,
		UseEditorconfig:   ptr(true),
		VerifyIdempotence: ptr(false),
	}
}

func ptr[T any](v T) *T { return &v }

// EditorconfigEnabled reports whether .editorconfig files are consulted.
func (c *Config) EditorconfigEnabled() bool {
	return c.UseEditorconfig == nil || *c.UseEditorconfig
}

// IdempotenceEnabled reports whether every result is formatted twice.
func (c *Config) IdempotenceEnabled() bool {
	return c.VerifyIdempotence != nil && *c.VerifyIdempotence
}

// LanguageOverrides merges the overrides configured under any of names.
// Entries are applied in the order names are given.
func (c *Config) LanguageOverrides(names ...string) options.Overrides {
	var merged options.Overrides
	for _, name := range names {
		for key, o := range c.Languages {
			if strings.EqualFold(key, name) {
				merged = merged.Merge(o)
			}
		}
	}
	return merged
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Include = slices.Clone(c.Include)
	if c.Languages != nil {
		clone.Languages = make(map[string]options.Overrides, len(c.Languages))
		for k, v := range c.Languages {
			clone.Languages[k] = v
		}
	}
	if c.UseEditorconfig != nil {
		clone.UseEditorconfig = ptr(*c.UseEditorconfig)
	}
	if c.VerifyIdempotence != nil {
		clone.VerifyIdempotence = ptr(*c.VerifyIdempotence)
	}
	return &clone
}
