package configloader

import (
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/config"
	"github.com/yaklabco/formatkit/pkg/format/options"
)

// EnvPrefix starts every formatkit environment variable.
const EnvPrefix = "FORMATKIT_"

// ErrInvalidEnv is returned for an environment variable that does not
// parse.
var ErrInvalidEnv = errors.Base("invalid environment variable")

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// runEnvVars are the variables for settings outside the formatter
// options, with their descriptions.
//
//nolint:gochecknoglobals // Read-only lookup table.
var runEnvVars = map[string]string{
	"JOBS":               "Number of files formatted at once (0 = one per CPU)",
	"IGNORE":             "Comma-separated globs to skip",
	"INCLUDE":            "Comma-separated globs to restrict the run to",
	"FORMAT":             "Reporter: text, diff, json or summary",
	"USE_EDITORCONFIG":   "Read .editorconfig files: true or false",
	"VERIFY_IDEMPOTENCE": "Format every result twice and warn on drift: true or false",
}

// formatterOptions are the wire names of the options settable by
// environment variable.
func formatterOptions() []string {
	return slices.DeleteFunc(options.WireNames(), func(name string) bool { return name == "language" })
}

// envName maps a wire name such as "lineWidth" to FORMATKIT_LINE_WIDTH.
func envName(wire string) string {
	return EnvPrefix + strcase.ToScreamingSnake(wire)
}

// LoadFromEnv applies FORMATKIT_* variables to cfg.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}

	for _, wire := range formatterOptions() {
		name := envName(wire)
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := cfg.Formatter.Set(wire, value); err != nil {
			return errors.Errorf("%w: %s: %w", ErrInvalidEnv, name, err)
		}
	}

	for suffix := range runEnvVars {
		value, ok := lookup(EnvPrefix + suffix)
		if !ok || value == "" {
			continue
		}
		if err := applyRunVar(cfg, suffix, value); err != nil {
			return errors.Errorf("%w: %s%s: %w", ErrInvalidEnv, EnvPrefix, suffix, err)
		}
	}
	return nil
}

func applyRunVar(cfg *config.Config, suffix, value string) error {
	switch suffix {
	case "JOBS":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Errorf("not an integer: %q", value)
		}
		cfg.Jobs = n
	case "IGNORE":
		cfg.Ignore = splitList(value)
	case "INCLUDE":
		cfg.Include = splitList(value)
	case "FORMAT":
		cfg.Format = config.OutputFormat(strings.ToLower(value))
	case "USE_EDITORCONFIG", "VERIFY_IDEMPOTENCE":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Errorf("not a boolean: %q", value)
		}
		if suffix == "USE_EDITORCONFIG" {
			cfg.UseEditorconfig = &b
		} else {
			cfg.VerifyIdempotence = &b
		}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnvVar is a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported variable sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(runEnvVars)+len(options.WireNames()))
	for _, wire := range formatterOptions() {
		vars = append(vars, EnvVar{Name: envName(wire), Description: "Formatter option " + wire})
	}
	for suffix, desc := range runEnvVars {
		vars = append(vars, EnvVar{Name: EnvPrefix + suffix, Description: desc})
	}
	slices.SortFunc(vars, func(a, b EnvVar) int { return strings.Compare(a.Name, b.Name) })
	return vars
}
