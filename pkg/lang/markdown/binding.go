// Package markdown formats Markdown documents. goldmark finds the blocks;
// headings, paragraphs and list items are normalized line by line, and
// everything else is kept as written.
package markdown

import (
	"github.com/yaklabco/formatkit/pkg/format"
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/format/options"
	"github.com/yaklabco/formatkit/pkg/lang"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Binding is the Markdown language.
//
//nolint:gochecknoglobals // registered binding
var Binding lang.Binding = binding{}

func init() { lang.Register(Binding) }

type binding struct{}

func (binding) Name() string                                        { return "markdown" }
func (binding) Aliases() []string                                   { return []string{"md", "commonmark", "gfm"} }
func (binding) Extensions() []string                                { return []string{".md", ".markdown"} }
func (binding) CommentStyle() comments.Style                        { return commentStyle{} }
func (binding) Rules() format.RuleTable                             { return rules }
func (binding) KindName(k syntax.RawKind) string                    { return kindName(k) }
func (binding) Parse(src string) (syntax.Node, []format.Diagnostic) { return Parse(src) }

func (binding) ApplyDefaults(opts options.Options) options.Options { return opts }

// commentStyle: HTML comments in Markdown are blocks, and the trivia
// holds only blanks and line breaks.
type commentStyle struct{}

func (commentStyle) CommentKind(p syntax.SyntaxTriviaPiece) comments.Kind { return comments.KindOf(p) }
func (commentStyle) IsSuppression(text string) bool                       { return lang.IsSuppression(text) }
func (commentStyle) IsBogus(k syntax.RawKind) bool                        { return k == Raw }
func (commentStyle) IsList(k syntax.RawKind) bool                         { return k == BlockList || k == List }

func (commentStyle) PlaceComment(*comments.DecoratedComment) comments.Placement {
	return comments.Default()
}
