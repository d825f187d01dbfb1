package ir

// TagKind is the kind of a paired tag.
type TagKind uint8

// Tag kinds.
const (
	TagIndent TagKind = iota
	TagAlign
	TagDedent
	TagGroup
	TagConditionalContent
	TagIndentIfGroupBreaks
	TagFill
	TagEntry
	TagLineSuffix
	TagLabel
	TagComments
)

// String returns the s-expression name of the tag.
func (k TagKind) String() string {
	switch k {
	case TagIndent:
		return "indent"
	case TagAlign:
		return "align"
	case TagDedent:
		return "dedent"
	case TagGroup:
		return "group"
	case TagConditionalContent:
		return "conditional_content"
	case TagIndentIfGroupBreaks:
		return "indent_if_group_breaks"
	case TagFill:
		return "fill"
	case TagEntry:
		return "entry"
	case TagLineSuffix:
		return "line_suffix"
	case TagLabel:
		return "label"
	case TagComments:
		return "comments"
	default:
		return "unknown"
	}
}

// Tag is the payload of a tag element. Start tags carry the attributes;
// end tags only repeat the kind.
type Tag struct {
	Kind  TagKind
	Start bool

	// Group is the id of a group, or the group a conditional depends on.
	Group GroupID

	// Expand is the expand mode of a group.
	Expand ExpandMode

	// Mode is the mode conditional content prints in.
	Mode PrintMode

	// Align is the number of spaces an align adds.
	Align uint8

	// Dedent selects how far a dedent goes.
	Dedent DedentMode

	// Label names a labelled region.
	Label string

	// Placement and Owner describe a comments anchor.
	Placement CommentPlacement
	Owner     string
}

func start(t Tag) Element {
	t.Start = true
	return Element{Kind: KindTag, Tag: t}
}

func end(kind TagKind) Element {
	return Element{Kind: KindTag, Tag: Tag{Kind: kind}}
}

// StartIndent opens one level of indentation.
func StartIndent() Element { return start(Tag{Kind: TagIndent}) }

// EndIndent closes an indent.
func EndIndent() Element { return end(TagIndent) }

// StartAlign opens an alignment of n spaces.
func StartAlign(n uint8) Element { return start(Tag{Kind: TagAlign, Align: n}) }

// EndAlign closes an align.
func EndAlign() Element { return end(TagAlign) }

// StartDedent opens a dedent.
func StartDedent(mode DedentMode) Element { return start(Tag{Kind: TagDedent, Dedent: mode}) }

// EndDedent closes a dedent.
func EndDedent() Element { return end(TagDedent) }

// StartGroup opens a group.
func StartGroup(id GroupID, expand ExpandMode) Element {
	return start(Tag{Kind: TagGroup, Group: id, Expand: expand})
}

// EndGroup closes a group.
func EndGroup() Element { return end(TagGroup) }

// StartConditionalContent opens content printed only when the group (the
// enclosing one when id is zero) is in the given mode.
func StartConditionalContent(mode PrintMode, id GroupID) Element {
	return start(Tag{Kind: TagConditionalContent, Mode: mode, Group: id})
}

// EndConditionalContent closes conditional content.
func EndConditionalContent() Element { return end(TagConditionalContent) }

// StartIndentIfGroupBreaks opens content indented only when group id breaks.
func StartIndentIfGroupBreaks(id GroupID) Element {
	return start(Tag{Kind: TagIndentIfGroupBreaks, Group: id})
}

// EndIndentIfGroupBreaks closes indent-if-group-breaks.
func EndIndentIfGroupBreaks() Element { return end(TagIndentIfGroupBreaks) }

// StartFill opens a fill. Its children are entries alternating between
// content and separator.
func StartFill() Element { return start(Tag{Kind: TagFill}) }

// EndFill closes a fill.
func EndFill() Element { return end(TagFill) }

// StartEntry opens a fill entry.
func StartEntry() Element { return start(Tag{Kind: TagEntry}) }

// EndEntry closes a fill entry.
func EndEntry() Element { return end(TagEntry) }

// StartLineSuffix opens content deferred until the next line break.
func StartLineSuffix() Element { return start(Tag{Kind: TagLineSuffix}) }

// EndLineSuffix closes a line suffix.
func EndLineSuffix() Element { return end(TagLineSuffix) }

// StartLabel opens a labelled region.
func StartLabel(label string) Element { return start(Tag{Kind: TagLabel, Label: label}) }

// EndLabel closes a label.
func EndLabel() Element { return end(TagLabel) }

// StartComments opens an anchored run of comments owned by a node.
func StartComments(p CommentPlacement, owner string) Element {
	return start(Tag{Kind: TagComments, Placement: p, Owner: owner})
}

// EndComments closes a comments anchor.
func EndComments() Element { return end(TagComments) }
