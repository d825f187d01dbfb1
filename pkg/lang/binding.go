// Package lang ties language bindings to the format core: a binding parses
// source into a syntax tree and supplies the rules that format it.
package lang

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Binding is a complete language: parser plus formatting rules.
type Binding interface {
	format.Language
	format.KindNamer

	// Aliases are alternative names, such as "javascript" for "js".
	Aliases() []string

	// Extensions are the file extensions the binding claims, with the dot.
	Extensions() []string

	// Parse builds a lossless tree. Parse errors become bogus nodes and
	// diagnostics; Parse itself never fails.
	Parse(source string) (syntax.Node, []format.Diagnostic)

	// ApplyDefaults adjusts options the user did not set.
	ApplyDefaults(opts options.Options) options.Options
}

// SuppressionMarkers are the comment texts that keep the next node as
// written.
var SuppressionMarkers = []string{"formatkit-ignore", "biome-ignore", "prettier-ignore"}

// IsSuppression reports whether a comment asks to leave the next node
// alone.
func IsSuppression(comment string) bool {
	for _, marker := range SuppressionMarkers {
		if strings.Contains(comment, marker) {
			return true
		}
	}
	return false
}
