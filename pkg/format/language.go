package format

import (
	"github.com/yaklabco/formatkit/pkg/format/comments"
	"github.com/yaklabco/formatkit/pkg/syntax"
)

// NodeRule formats one node kind.
type NodeRule func(node syntax.Node, f *Formatter) error

// RuleTable maps node kinds to rules, indexed by kind.
type RuleTable []NodeRule

// Lookup returns the rule for kind, or nil.
func (t RuleTable) Lookup(kind syntax.RawKind) NodeRule {
	if int(kind) < len(t) {
		return t[kind]
	}
	return nil
}

// Language is the set of hooks the core needs from a language.
type Language interface {
	Name() string
	CommentStyle() comments.Style
	Rules() RuleTable
}

// KindNamer is implemented by languages that can name their kinds. Names
// appear in comment anchors and traces.
type KindNamer interface {
	KindName(kind syntax.RawKind) string
}

func kindNamer(lang Language) syntax.KindNamer {
	if n, ok := lang.(KindNamer); ok {
		return n.KindName
	}
	return nil
}
