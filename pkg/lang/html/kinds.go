package html

import (
	"strings"

	"github.com/yaklabco/formatkit/pkg/syntax"
)

// Token kinds.
const (
	TagOpen syntax.RawKind = iota + 1
	EndTagOpen
	TagClose
	SlashTagClose
	TagName
	AttrName
	Eq
	AttrValue
	Word
	RawText
	CommentToken
	DoctypeToken
	ErrorToken
	EOF

	// Node kinds.
	Root
	ElementList
	Element
	StartTag
	EndTag
	AttributeList
	Attribute
	Text
	Comment
	Doctype
	RawContent
	Bogus

	kindCount
)

var kindNames = [...]string{
	TagOpen:       "L_ANGLE",
	EndTagOpen:    "L_ANGLE_SLASH",
	TagClose:      "R_ANGLE",
	SlashTagClose: "SLASH_R_ANGLE",
	TagName:       "HTML_TAG_NAME",
	AttrName:      "HTML_ATTRIBUTE_NAME",
	Eq:            "EQ",
	AttrValue:     "HTML_STRING_LITERAL",
	Word:          "HTML_LITERAL",
	RawText:       "HTML_RAW_TEXT",
	CommentToken:  "COMMENT",
	DoctypeToken:  "DOCTYPE_KW",
	ErrorToken:    "ERROR_TOKEN",
	EOF:           "EOF",
	Root:          "HTML_ROOT",
	ElementList:   "HTML_ELEMENT_LIST",
	Element:       "HTML_ELEMENT",
	StartTag:      "HTML_OPENING_ELEMENT",
	EndTag:        "HTML_CLOSING_ELEMENT",
	AttributeList: "HTML_ATTRIBUTE_LIST",
	Attribute:     "HTML_ATTRIBUTE",
	Text:          "HTML_CONTENT",
	Comment:       "HTML_COMMENT",
	Doctype:       "HTML_DIRECTIVE",
	RawContent:    "HTML_RAW_CONTENT",
	Bogus:         "HTML_BOGUS",
}

func kindName(k syntax.RawKind) string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// voidElements never have content or an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// rawElements keep their content exactly as written.
var rawElements = map[string]bool{
	"pre": true, "script": true, "style": true, "textarea": true,
}

func isVoid(name string) bool { return voidElements[strings.ToLower(name)] }

func isRaw(name string) bool { return rawElements[strings.ToLower(name)] }
