// Package html formats HTML documents: elements, attributes, text,
// comments and doctypes. The content of pre, script, style and textarea
// elements is kept as written.
package html

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Binding is the HTML language.
//
//nolint:gochecknoglobals // registered binding
var Binding lang.Binding = binding{}

func init() { lang.Register(Binding) }

type binding struct{}

func (binding) Name() string                                        { return "html" }
func (binding) Aliases() []string                                   { return []string{"htm", "xhtml"} }
func (binding) Extensions() []string                                { return []string{".html", ".htm"} }
func (binding) CommentStyle() comments.Style                        { return commentStyle{} }
func (binding) Rules() format.RuleTable                             { return rules }
func (binding) KindName(k syntax.RawKind) string                    { return kindName(k) }
func (binding) Parse(src string) (syntax.Node, []format.Diagnostic) { return Parse(src) }

func (binding) ApplyDefaults(opts options.Options) options.Options { return opts }

// commentStyle has little to do: HTML comments are nodes, so the trivia
// holds nothing but whitespace.
type commentStyle struct{}

func (commentStyle) CommentKind(p syntax.SyntaxTriviaPiece) comments.Kind { return comments.KindOf(p) }
func (commentStyle) IsSuppression(text string) bool                       { return lang.IsSuppression(text) }
func (commentStyle) IsBogus(k syntax.RawKind) bool                        { return k == Bogus }
func (commentStyle) IsList(k syntax.RawKind) bool                         { return k == ElementList || k == AttributeList }

func (commentStyle) PlaceComment(*comments.DecoratedComment) comments.Placement {
	return comments.Default()
}
