package markdown

import "github.com/yaklabco/formatkit/pkg/syntax"

// Token kinds.
const (
	HeadingMarker syntax.RawKind = iota + 1
	HeadingClose
	ListMarker
	Line
	EOF

	// Node kinds.
	Root
	BlockList
	Heading
	SetextHeading
	Paragraph
	ThematicBreak
	FencedCode
	IndentedCode
	HTMLBlock
	Table
	Blockquote
	List
	ListItem
	FrontMatter
	Raw

	kindCount
)

var kindNames = [...]string{
	HeadingMarker: "HASH",
	HeadingClose:  "HASH_CLOSE",
	ListMarker:    "MD_LIST_MARKER",
	Line:          "MD_TEXTUAL_LITERAL",
	EOF:           "EOF",
	Root:          "MD_DOCUMENT",
	BlockList:     "MD_BLOCK_LIST",
	Heading:       "MD_HEADER",
	SetextHeading: "MD_SETEXT_HEADER",
	Paragraph:     "MD_PARAGRAPH",
	ThematicBreak: "MD_THEMATIC_BREAK_BLOCK",
	FencedCode:    "MD_FENCED_CODE_BLOCK",
	IndentedCode:  "MD_INDENT_CODE_BLOCK",
	HTMLBlock:     "MD_HTML_BLOCK",
	Table:         "MD_TABLE",
	Blockquote:    "MD_QUOTE",
	List:          "MD_BULLET_LIST",
	ListItem:      "MD_BULLET_LIST_ITEM",
	FrontMatter:   "MD_FRONT_MATTER",
	Raw:           "MD_RAW_BLOCK",
}

func kindName(k syntax.RawKind) string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// verbatimKinds print exactly as written.
var verbatimKinds = map[syntax.RawKind]bool{
	ThematicBreak: true,
	FencedCode:    true,
	IndentedCode:  true,
	HTMLBlock:     true,
	Table:         true,
	Blockquote:    true,
	FrontMatter:   true,
	Raw:           true,
}
