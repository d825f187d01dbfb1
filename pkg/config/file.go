package config

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDecode is returned for a configuration file that does not parse.
	ErrDecode = errors.Base("decode configuration")

	// ErrUnknownField is returned for keys the configuration does not have.
	ErrUnknownField = errors.Base("unknown configuration field")
)

// FileFormat is the syntax of a configuration file.
type FileFormat string

const (
	FileYAML FileFormat = "yaml"
	FileTOML FileFormat = "toml"
)

// FileFormatOf picks the syntax from the file extension. Anything that is
// not ".toml" is read as YAML.
func FileFormatOf(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FileTOML
	}
	return FileYAML
}

// Decode parses a configuration file. Unknown keys are errors.
func Decode(data []byte, format FileFormat) (*Config, error) {
	if format == FileTOML {
		return FromTOML(data)
	}
	return FromYAML(data)
}

// FromYAML parses YAML configuration.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("%w: yaml: %w", ErrDecode, err)
	}
	return cfg, nil
}

// FromTOML parses TOML configuration.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Errorf("%w: toml: %w", ErrDecode, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.WithDetails(ErrUnknownField, "keys", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Encode serializes cfg. Flag-only fields are left out.
func Encode(cfg *Config, format FileFormat) ([]byte, error) {
	var buf bytes.Buffer
	if format == FileTOML {
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, errors.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Errorf("close yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}
