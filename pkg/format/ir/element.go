// Package ir defines the format document: a flat tape of elements with
// paired start and end tags that the printer lays out.
package ir

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/text"
)

// ElementKind is the variant of an Element.
type ElementKind uint8

// Element kinds.
const (
	KindText ElementKind = iota
	KindSpace
	KindLine
	KindExpandParent
	KindLineSuffixBoundary
	KindTag
	KindBestFitting
	KindVerbatim
	KindInterned
)

// LineMode is the kind of a line element.
type LineMode uint8

// Line modes.
const (
	// LineSoft is nothing in flat mode and a line break otherwise.
	LineSoft LineMode = iota

	// LineSoftOrSpace is a space in flat mode and a line break otherwise.
	LineSoftOrSpace

	// LineHard always breaks and forces the enclosing group to break.
	LineHard

	// LineEmpty always breaks and leaves one blank line.
	LineEmpty
)

// String returns the s-expression name of the line.
func (m LineMode) String() string {
	switch m {
	case LineSoft:
		return "soft_line_break"
	case LineSoftOrSpace:
		return "soft_line_break_or_space"
	case LineHard:
		return "hard_line_break"
	case LineEmpty:
		return "empty_line"
	default:
		return "unknown_line"
	}
}

// IsHard reports whether the line always breaks.
func (m LineMode) IsHard() bool {
	return m == LineHard || m == LineEmpty
}

// GroupID names a group so that conditional content elsewhere can depend
// on whether it breaks. Zero means "no id".
type GroupID uint32

// PrintMode is the layout a group is printed in.
type PrintMode uint8

// Print modes.
const (
	ModeFlat PrintMode = iota
	ModeExpanded
)

// String returns the mode name.
func (m PrintMode) String() string {
	if m == ModeFlat {
		return "flat"
	}
	return "expanded"
}

// ExpandMode records why a group must break.
type ExpandMode uint8

// Expand modes.
const (
	ExpandNone ExpandMode = iota
	ExpandTrue
	ExpandPropagated
)

// DedentMode selects how much indentation a dedent removes.
type DedentMode uint8

// Dedent modes.
const (
	DedentLevel DedentMode = iota
	DedentRoot
)

// CommentPlacement says where an anchored run of comments sits relative to
// its owner node.
type CommentPlacement uint8

// Comment placements.
const (
	PlacementLeading CommentPlacement = iota
	PlacementTrailing
	PlacementDangling
)

// String returns the s-expression name of the placement.
func (p CommentPlacement) String() string {
	switch p {
	case PlacementLeading:
		return "leading_comments"
	case PlacementTrailing:
		return "trailing_comments"
	default:
		return "dangling_comments"
	}
}

// Element is one entry of a Document tape. Kind selects which fields are
// meaningful.
type Element struct {
	Kind ElementKind

	// Text is the content of text and verbatim elements.
	Text string

	// Source is the source offset of dynamic text; HasSource marks it set.
	Source    text.Size
	HasSource bool

	// Line is the mode of a line element.
	Line LineMode

	// Tag is set for tag elements.
	Tag Tag

	// Variants are the alternatives of a best-fitting element.
	Variants []Document

	// Range is the source range of a verbatim element.
	Range text.Range

	// Interned is the shared sub-document of an interned element.
	Interned *Interned
}

// Interned is a sub-document shared by several places in a document. The
// printer lowers it once.
type Interned struct {
	ID  int
	Doc Document

	propagated bool
	expands    bool
}

// Text creates static text. It must not contain line breaks that are
// meant to be laid out; the printer writes them verbatim.
func Text(s string) Element {
	return Element{Kind: KindText, Text: s}
}

// DynamicText creates text copied from the source at offset pos. The
// printer records it in the source map.
func DynamicText(s string, pos text.Size) Element {
	return Element{Kind: KindText, Text: s, Source: pos, HasSource: true}
}

// Space creates a single space that is dropped at the start of a line.
func Space() Element {
	return Element{Kind: KindSpace}
}

// Line creates a line element.
func Line(mode LineMode) Element {
	return Element{Kind: KindLine, Line: mode}
}

// ExpandParent forces the enclosing group to break.
func ExpandParent() Element {
	return Element{Kind: KindExpandParent}
}

// LineSuffixBoundary flushes pending line suffixes with a line break.
func LineSuffixBoundary() Element {
	return Element{Kind: KindLineSuffixBoundary}
}

// Verbatim creates source text printed exactly as written.
func Verbatim(r text.Range, s string) Element {
	return Element{Kind: KindVerbatim, Range: r, Text: s}
}

// Ref creates an element referring to an interned sub-document.
func Ref(in *Interned) Element {
	return Element{Kind: KindInterned, Interned: in}
}

// BestFitting creates an element that prints the first variant fitting
// the line in flat mode, or the last variant broken. It needs at least two
// variants.
func BestFitting(variants ...Document) (Element, error) {
	if len(variants) < 2 {
		return Element{}, errorsWithIndex(ErrTooFewVariants, -1)
	}
	return Element{Kind: KindBestFitting, Variants: variants}, nil
}

// IsMultiline reports whether a text or verbatim element spans lines.
func (e Element) IsMultiline() bool {
	return (e.Kind == KindText || e.Kind == KindVerbatim) && strings.ContainsAny(e.Text, "\n\r")
}

// IsStart reports whether e opens a tag.
func (e Element) IsStart() bool {
	return e.Kind == KindTag && e.Tag.Start
}

// IsEnd reports whether e closes a tag.
func (e Element) IsEnd() bool {
	return e.Kind == KindTag && !e.Tag.Start
}
