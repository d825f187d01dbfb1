package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
)

// ValidationError is one invalid configuration value.
type ValidationError struct {
	// Field is the path to the value, such as "languages.json.lineWidth".
	Field   string
	Value   any
	Message string
	// FilePath is the file the value came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult holds every finding. Errors stop the run; warnings are
// reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &r.Errors[0]
}

// Validate checks cfg. Language keys are resolved against registry.
func Validate(cfg *config.Config, registry *lang.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = lang.DefaultRegistry
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		names := make([]string, 0, len(config.OutputFormats()))
		for _, f := range config.OutputFormats() {
			names = append(names, string(f))
		}
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: %s", cfg.Format, strings.Join(names, ", ")),
		})
	}
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means one per CPU)",
		})
	}

	validateGlobs(result, "ignore", cfg.Ignore)
	validateGlobs(result, "include", cfg.Include)

	base := cfg.Formatter.Apply(options.Default())
	validateOptions(result, "formatter", base)

	keys := make([]string, 0, len(cfg.Languages))
	for k := range cfg.Languages {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		field := "languages." + key
		if _, ok := registry.Get(key); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   key,
				Message: fmt.Sprintf("unknown language %q; its settings are ignored", key),
			})
		}
		validateOptions(result, field, cfg.Languages[key].Apply(base))
	}
	return result
}

func validateGlobs(result *ValidationResult, field string, patterns []string) {
	for i, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   p,
				Message: "invalid glob pattern",
			})
		}
	}
}

// validateOptions turns each options.FieldError into a ValidationError.
func validateOptions(result *ValidationResult, prefix string, opts options.Options) {
	err := opts.Validate()
	if err == nil {
		return
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		result.Errors = append(result.Errors, ValidationError{Field: prefix, Message: err.Error()})
		return
	}
	for _, e := range merr.Errors {
		var fe *options.FieldError
		if errors.As(e, &fe) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   prefix + "." + fe.Field,
				Value:   fe.Value,
				Message: fe.Message,
			})
			continue
		}
		result.Errors = append(result.Errors, ValidationError{Field: prefix, Message: e.Error()})
	}
}
