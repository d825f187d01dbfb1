package json

import "github.com/yaklabco/formatkit/pkg/syntax"

// Token kinds.
const (
	LBrace syntax.RawKind = iota + 1
	RBrace
	LBracket
	RBracket
	Colon
	Comma
	String
	Number
	True
	False
	Null
	ErrorToken
	EOF

	// Node kinds.
	Root
	Object
	MemberList
	Member
	Array
	ElementList
	StringValue
	NumberValue
	BooleanValue
	NullValue
	Bogus
	BogusValue

	kindCount
)

var kindNames = [...]string{
	LBrace:       "L_CURLY",
	RBrace:       "R_CURLY",
	LBracket:     "L_BRACK",
	RBracket:     "R_BRACK",
	Colon:        "COLON",
	Comma:        "COMMA",
	String:       "JSON_STRING_LITERAL",
	Number:       "JSON_NUMBER_LITERAL",
	True:         "TRUE_KW",
	False:        "FALSE_KW",
	Null:         "NULL_KW",
	ErrorToken:   "ERROR_TOKEN",
	EOF:          "EOF",
	Root:         "JSON_ROOT",
	Object:       "JSON_OBJECT_VALUE",
	MemberList:   "JSON_MEMBER_LIST",
	Member:       "JSON_MEMBER",
	Array:        "JSON_ARRAY_VALUE",
	ElementList:  "JSON_ARRAY_ELEMENT_LIST",
	StringValue:  "JSON_STRING_VALUE",
	NumberValue:  "JSON_NUMBER_VALUE",
	BooleanValue: "JSON_BOOLEAN_VALUE",
	NullValue:    "JSON_NULL_VALUE",
	Bogus:        "JSON_BOGUS",
	BogusValue:   "JSON_BOGUS_VALUE",
}

func kindName(k syntax.RawKind) string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}
