package printer

import (
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/format/ir"
)

type docKind uint8

const (
	docAtom docKind = iota
	docTag
	docBestFitting
	docSeq
)

// doc is the tree form of a document tape. Atoms keep their element; tags
// hold their content as children; a seq is an anonymous list.
type doc struct {
	kind     docKind
	el       ir.Element
	tag      ir.Tag
	kids     []*doc
	variants []*doc
}

func (d *doc) expands() bool {
	return d.kind == docTag && d.tag.Kind == ir.TagGroup && d.tag.Expand != ir.ExpandNone
}

type lowerer struct {
	interned map[*ir.Interned]*doc
}

// lower turns a balanced tape into a doc tree. Interned documents are
// lowered once and shared.
func lower(d ir.Document) (*doc, error) {
	l := &lowerer{interned: map[*ir.Interned]*doc{}}
	kids, next, err := l.seq(d, 0, nil)
	if err != nil {
		return nil, err
	}
	if next != len(d) {
		return nil, errors.WithDetails(ir.ErrUnbalanced, "index", next)
	}
	return &doc{kind: docSeq, kids: kids}, nil
}

func (l *lowerer) seq(d ir.Document, i int, open *ir.Tag) ([]*doc, int, error) {
	var kids []*doc
	for i < len(d) {
		e := d[i]
		switch e.Kind {
		case ir.KindTag:
			if !e.Tag.Start {
				if open == nil || open.Kind != e.Tag.Kind {
					return nil, i, errors.WithDetails(ir.ErrUnbalanced, "index", i, "tag", e.Tag.Kind.String())
				}
				return kids, i, nil
			}
			tag := e.Tag
			inner, j, err := l.seq(d, i+1, &tag)
			if err != nil {
				return nil, j, err
			}
			if j >= len(d) {
				return nil, i, errors.WithDetails(ir.ErrUnbalanced, "index", i, "tag", tag.Kind.String())
			}
			kids = append(kids, &doc{kind: docTag, tag: tag, kids: inner})
			i = j + 1
		case ir.KindBestFitting:
			if len(e.Variants) < 2 {
				return nil, i, errors.WithDetails(ir.ErrTooFewVariants, "index", i)
			}
			bf := &doc{kind: docBestFitting}
			for _, v := range e.Variants {
				vk, _, err := l.seq(v, 0, nil)
				if err != nil {
					return nil, i, errors.WithDetails(err, "bestFitting", i)
				}
				bf.variants = append(bf.variants, &doc{kind: docSeq, kids: vk})
			}
			kids = append(kids, bf)
			i++
		case ir.KindInterned:
			sub, ok := l.interned[e.Interned]
			if !ok {
				sk, _, err := l.seq(e.Interned.Doc, 0, nil)
				if err != nil {
					return nil, i, errors.WithDetails(err, "interned", e.Interned.ID)
				}
				sub = &doc{kind: docSeq, kids: sk}
				l.interned[e.Interned] = sub
			}
			kids = append(kids, sub)
			i++
		case ir.KindText, ir.KindSpace, ir.KindLine, ir.KindExpandParent,
			ir.KindLineSuffixBoundary, ir.KindVerbatim:
			kids = append(kids, &doc{kind: docAtom, el: e})
			i++
		}
	}
	if open != nil {
		return nil, i, errors.WithDetails(ir.ErrUnbalanced, "tag", open.Kind.String())
	}
	return kids, i, nil
}
