package config

import (
	"github.com/yaklabco/formatkit/pkg/format/options"
)

const templateHeader = `# formatkit configuration
#
# "formatter" applies to every language. Entries under "languages" are
# keyed by language name or alias and override it for that language.
`

// Template renders a configuration file spelling out every default.
func Template(format FileFormat) ([]byte, error) {
	d := options.Default()
	cfg := NewConfig()
	cfg.Formatter = options.Overrides{
		IndentStyle:       &d.IndentStyle,
		IndentWidth:       &d.IndentWidth,
		LineWidth:         &d.LineWidth,
		LineEnding:        &d.LineEnding,
		QuoteStyle:        &d.QuoteStyle,
		TrailingCommas:    &d.TrailingCommas,
		Semicolons:        &d.Semicolons,
		AttributePosition: &d.AttributePosition,
		BracketSpacing:    &d.BracketSpacing,
	}
	cfg.Ignore = []string{"**/node_modules/**", "**/vendor/**"}

	body, err := Encode(cfg, format)
	if err != nil {
		return nil, err
	}
	return append([]byte(templateHeader+"\n"), body...), nil
}
