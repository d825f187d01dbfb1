package comments

import (
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Trace writes one JSON line per comment describing its decoration and
// placement. name renders node kinds; nil prints kind numbers.
func (c *Comments) Trace(w io.Writer, name syntax.KindNamer) {
	logger := zerolog.New(w)
	for id, rec := range c.records {
		d := rec.decorated
		ev := logger.Log().
			Int("id", id).
			Str("text", rec.comment.Text()).
			Str("kind", rec.comment.Kind.String()).
			Uint32("start", uint32(rec.comment.Range().Start)).
			Uint32("end", uint32(rec.comment.Range().End)).
			Int("linesBefore", rec.comment.LinesBefore).
			Int("linesAfter", rec.comment.LinesAfter).
			Str("position", rec.comment.Position.String()).
			Bool("suppression", rec.comment.Suppression).
			Bool("trailingTrivia", d.IsTrailingTrivia).
			Str("enclosing", describe(d.Enclosing, name)).
			Str("preceding", describe(d.Preceding, name)).
			Str("following", describe(d.Following, name)).
			Str("placement", rec.placement.Kind.String()).
			Str("target", describe(rec.placement.Node, name)).
			Bool("formatted", c.formatted[id])
		if !d.FollowingToken.IsZero() {
			ev = ev.Str("followingToken", d.FollowingToken.TextTrimmed())
		}
		ev.Send()
	}
}

// Owner renders a node as KIND@start..end for traces and IR anchors.
func Owner(n syntax.Node, name syntax.KindNamer) string {
	return describe(n, name)
}

func describe(n syntax.Node, name syntax.KindNamer) string {
	if n.IsZero() {
		return ""
	}
	var kind string
	if name != nil {
		kind = name(n.Kind())
	} else {
		kind = "KIND_" + strconv.Itoa(int(n.Kind()))
	}
	return kind + "@" + n.TextTrimmedRange().String()
}
