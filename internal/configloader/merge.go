package configloader

import (
	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/format/options"
)

// merge layers override on top of base:
//   - option overrides merge field by field, per language too;
//   - scalars and pointers replace base when set;
//   - slices replace base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()
	result.Formatter = base.Formatter.Merge(override.Formatter)

	for name, o := range override.Languages {
		if result.Languages == nil {
			result.Languages = make(map[string]options.Overrides, len(override.Languages))
		}
		result.Languages[name] = result.Languages[name].Merge(o)
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Include != nil {
		result.Include = override.Include
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.UseEditorconfig != nil {
		result.UseEditorconfig = override.UseEditorconfig
	}
	if override.VerifyIdempotence != nil {
		result.VerifyIdempotence = override.VerifyIdempotence
	}
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	return result
}

// MergeAll merges configurations in order; later ones win.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, c := range configs {
		result = merge(result, c)
	}
	return result
}
