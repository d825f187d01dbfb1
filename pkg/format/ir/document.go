package ir

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrStructural marks malformed documents. It is fatal for the file
	// being formatted.
	ErrStructural = errors.Base("structural error")

	// ErrUnbalanced is returned when start and end tags do not pair up.
	ErrUnbalanced = errors.Errorf("%w: unbalanced tags", ErrStructural)

	// ErrTooFewVariants is returned for best-fitting with fewer than two
	// variants.
	ErrTooFewVariants = errors.Errorf("%w: best fitting needs at least two variants", ErrStructural)

	// ErrFillEntry is returned when a fill holds something other than
	// entries.
	ErrFillEntry = errors.Errorf("%w: fill children must be entries", ErrStructural)
)

func errorsWithIndex(err error, index int) error {
	return errors.WithDetails(err, "index", index)
}

// Document is a flat tape of elements.
type Document []Element

type openTag struct {
	kind  TagKind
	index int
}

// Validate checks that tags are balanced and that fills only hold entries.
// The error names the index of the first offending element. Best-fitting
// variants and interned documents are validated recursively.
func (d Document) Validate() error {
	return d.validate(map[*Interned]bool{})
}

func (d Document) validate(seen map[*Interned]bool) error {
	var stack []openTag
	for i, e := range d {
		if len(stack) > 0 && stack[len(stack)-1].kind == TagFill {
			if !(e.IsStart() && e.Tag.Kind == TagEntry) && !(e.IsEnd() && e.Tag.Kind == TagFill) {
				return errors.WithDetails(ErrFillEntry, "index", i)
			}
		}

		switch e.Kind {
		case KindTag:
			if e.Tag.Start {
				stack = append(stack, openTag{kind: e.Tag.Kind, index: i})
				continue
			}
			if len(stack) == 0 || stack[len(stack)-1].kind != e.Tag.Kind {
				return errors.WithDetails(ErrUnbalanced, "index", i, "tag", e.Tag.Kind.String())
			}
			stack = stack[:len(stack)-1]
		case KindBestFitting:
			if len(e.Variants) < 2 {
				return errorsWithIndex(ErrTooFewVariants, i)
			}
			for v, variant := range e.Variants {
				if err := variant.validate(seen); err != nil {
					return errors.WithDetails(err, "bestFitting", i, "variant", v)
				}
			}
		case KindInterned:
			if seen[e.Interned] {
				continue
			}
			seen[e.Interned] = true
			if err := e.Interned.Doc.validate(seen); err != nil {
				return errors.WithDetails(err, "interned", e.Interned.ID)
			}
		case KindText, KindSpace, KindLine, KindExpandParent, KindLineSuffixBoundary, KindVerbatim:
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return errors.WithDetails(ErrUnbalanced, "index", top.index, "tag", top.kind.String())
	}
	return nil
}

// String renders the document as an s-expression, for example
//
//	group(indent(soft_line_break, "foo", ","))
//
// Unbalanced tags render as <START_WITHOUT_END<tag>> and
// <END_WITHOUT_START<tag>> markers.
func (d Document) String() string {
	r := &renderer{seen: map[*Interned]bool{}}
	items, _ := r.seq(d, 0, nil)
	return strings.Join(items, ", ")
}

type renderer struct {
	seen map[*Interned]bool
}

func (r *renderer) seq(d Document, i int, open []TagKind) ([]string, int) {
	var items []string
	for i < len(d) {
		e := d[i]
		switch {
		case e.IsEnd():
			for _, k := range open {
				if k == e.Tag.Kind {
					return items, i
				}
			}
			items = append(items, fmt.Sprintf("<END_WITHOUT_START<%s>>", e.Tag.Kind))
			i++
		case e.IsStart():
			nested := append(open[:len(open):len(open)], e.Tag.Kind)
			inner, j := r.seq(d, i+1, nested)
			if j < len(d) && d[j].IsEnd() && d[j].Tag.Kind == e.Tag.Kind {
				items = append(items, r.tag(e.Tag, inner))
				i = j + 1
				continue
			}
			items = append(items, fmt.Sprintf("<START_WITHOUT_END<%s>>", e.Tag.Kind))
			items = append(items, inner...)
			i = j
		default:
			items = append(items, r.atom(e))
			i++
		}
	}
	return items, i
}

func (r *renderer) atom(e Element) string {
	switch e.Kind {
	case KindText:
		return strconv.Quote(e.Text)
	case KindSpace:
		return "space"
	case KindLine:
		return e.Line.String()
	case KindExpandParent:
		return "expand_parent"
	case KindLineSuffixBoundary:
		return "line_suffix_boundary"
	case KindVerbatim:
		return "verbatim(" + strconv.Quote(e.Text) + ")"
	case KindBestFitting:
		variants := make([]string, len(e.Variants))
		for i, v := range e.Variants {
			items, _ := r.seq(v, 0, nil)
			variants[i] = "[" + strings.Join(items, ", ") + "]"
		}
		return "best_fitting(" + strings.Join(variants, ", ") + ")"
	case KindInterned:
		if r.seen[e.Interned] {
			return fmt.Sprintf("<ref interned *%d>", e.Interned.ID)
		}
		r.seen[e.Interned] = true
		items, _ := r.seq(e.Interned.Doc, 0, nil)
		return fmt.Sprintf("<interned %d> [%s]", e.Interned.ID, strings.Join(items, ", "))
	case KindTag:
		return "<" + e.Tag.Kind.String() + ">"
	default:
		return "<unknown>"
	}
}

func (r *renderer) tag(t Tag, inner []string) string {
	var (
		name  string
		attrs []string
	)
	switch t.Kind {
	case TagAlign:
		name = "align"
		attrs = append(attrs, strconv.Itoa(int(t.Align)))
	case TagDedent:
		name = "dedent"
		if t.Dedent == DedentRoot {
			name = "dedent_to_root"
		}
	case TagGroup:
		name = "group"
		if t.Group != 0 {
			attrs = append(attrs, fmt.Sprintf("id: %d", t.Group))
		}
		switch t.Expand {
		case ExpandTrue:
			attrs = append(attrs, "expand: true")
		case ExpandPropagated:
			attrs = append(attrs, "expand: propagated")
		case ExpandNone:
		}
	case TagConditionalContent:
		name = "if_group_fits_on_line"
		if t.Mode == ModeExpanded {
			name = "if_group_breaks"
		}
		if t.Group != 0 {
			attrs = append(attrs, fmt.Sprintf("group_id: %d", t.Group))
		}
	case TagIndentIfGroupBreaks:
		name = "indent_if_group_breaks"
		attrs = append(attrs, fmt.Sprintf("group_id: %d", t.Group))
	case TagEntry:
		if len(inner) == 1 {
			return inner[0]
		}
		return "[" + strings.Join(inner, ", ") + "]"
	case TagLabel:
		name = "label"
		attrs = append(attrs, strconv.Quote(t.Label))
	case TagComments:
		name = t.Placement.String()
	case TagIndent, TagFill, TagLineSuffix:
		name = t.Kind.String()
	}
	return name + "(" + strings.Join(append(attrs, inner...), ", ") + ")"
}
