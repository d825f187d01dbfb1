// Package json formats JSON and JSON with comments.
package json

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Binding is the JSON language.
//
//nolint:gochecknoglobals // registered binding
var Binding lang.Binding = binding{}

func init() { lang.Register(Binding) }

type binding struct{}

func (binding) Name() string                                        { return "json" }
func (binding) Aliases() []string                                   { return []string{"jsonc"} }
func (binding) Extensions() []string                                { return []string{".json", ".jsonc"} }
func (binding) CommentStyle() comments.Style                        { return commentStyle{} }
func (binding) Rules() format.RuleTable                             { return rules }
func (binding) KindName(k syntax.RawKind) string                    { return kindName(k) }
func (binding) Parse(src string) (syntax.Node, []format.Diagnostic) { return Parse(src) }

// ApplyDefaults turns trailing commas off; plain JSON forbids them.
func (binding) ApplyDefaults(opts options.Options) options.Options {
	opts.TrailingCommas = options.TrailingCommasNone
	return opts
}

type commentStyle struct{}

func (commentStyle) CommentKind(p syntax.SyntaxTriviaPiece) comments.Kind { return comments.KindOf(p) }
func (commentStyle) IsSuppression(text string) bool                       { return lang.IsSuppression(text) }
func (commentStyle) IsBogus(k syntax.RawKind) bool                        { return k == Bogus || k == BogusValue }
func (commentStyle) IsList(k syntax.RawKind) bool                         { return k == MemberList || k == ElementList }

func (commentStyle) PlaceComment(*comments.DecoratedComment) comments.Placement {
	return comments.Default()
}
