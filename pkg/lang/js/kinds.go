package js

import "github.com/yaklabco/formatkit/pkg/syntax"

// Token kinds.
const (
	Ident syntax.RawKind = iota + 1
	Number
	String
	Template
	Operator
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semi
	Comma
	Dot
	Colon
	FunctionKw
	ReturnKw
	IfKw
	ElseKw
	ConstKw
	LetKw
	VarKw
	TrueKw
	FalseKw
	NullKw
	ErrorToken
	EOF

	// Node kinds.
	Module
	StatementList
	FunctionDecl
	Parameters
	ParameterList
	Parameter
	Block
	VarStatement
	DeclaratorList
	Declarator
	ReturnStatement
	IfStatement
	ElseClause
	ExpressionStatement
	EmptyStatement
	IdentExpr
	NumberLiteral
	StringLiteral
	TemplateLiteral
	BooleanLiteral
	NullLiteral
	ArrayExpr
	ElementList
	ObjectExpr
	PropertyList
	Property
	ShorthandProperty
	CallExpr
	Arguments
	ArgumentList
	MemberExpr
	ComputedMemberExpr
	UnaryExpr
	BinaryExpr
	AssignmentExpr
	ParenExpr
	Bogus
	BogusExpr

	kindCount
)

var kindNames = [...]string{
	Ident:               "IDENT",
	Number:              "JS_NUMBER_LITERAL",
	String:              "JS_STRING_LITERAL",
	Template:            "TEMPLATE_CHUNK",
	Operator:            "OPERATOR",
	LParen:              "L_PAREN",
	RParen:              "R_PAREN",
	LBrace:              "L_CURLY",
	RBrace:              "R_CURLY",
	LBracket:            "L_BRACK",
	RBracket:            "R_BRACK",
	Semi:                "SEMICOLON",
	Comma:               "COMMA",
	Dot:                 "DOT",
	Colon:               "COLON",
	FunctionKw:          "FUNCTION_KW",
	ReturnKw:            "RETURN_KW",
	IfKw:                "IF_KW",
	ElseKw:              "ELSE_KW",
	ConstKw:             "CONST_KW",
	LetKw:               "LET_KW",
	VarKw:               "VAR_KW",
	TrueKw:              "TRUE_KW",
	FalseKw:             "FALSE_KW",
	NullKw:              "NULL_KW",
	ErrorToken:          "ERROR_TOKEN",
	EOF:                 "EOF",
	Module:              "JS_MODULE",
	StatementList:       "JS_STATEMENT_LIST",
	FunctionDecl:        "JS_FUNCTION_DECLARATION",
	Parameters:          "JS_PARAMETERS",
	ParameterList:       "JS_PARAMETER_LIST",
	Parameter:           "JS_PARAMETER",
	Block:               "JS_BLOCK_STATEMENT",
	VarStatement:        "JS_VARIABLE_STATEMENT",
	DeclaratorList:      "JS_VARIABLE_DECLARATOR_LIST",
	Declarator:          "JS_VARIABLE_DECLARATOR",
	ReturnStatement:     "JS_RETURN_STATEMENT",
	IfStatement:         "JS_IF_STATEMENT",
	ElseClause:          "JS_ELSE_CLAUSE",
	ExpressionStatement: "JS_EXPRESSION_STATEMENT",
	EmptyStatement:      "JS_EMPTY_STATEMENT",
	IdentExpr:           "JS_IDENTIFIER_EXPRESSION",
	NumberLiteral:       "JS_NUMBER_LITERAL_EXPRESSION",
	StringLiteral:       "JS_STRING_LITERAL_EXPRESSION",
	TemplateLiteral:     "JS_TEMPLATE_EXPRESSION",
	BooleanLiteral:      "JS_BOOLEAN_LITERAL_EXPRESSION",
	NullLiteral:         "JS_NULL_LITERAL_EXPRESSION",
	ArrayExpr:           "JS_ARRAY_EXPRESSION",
	ElementList:         "JS_ARRAY_ELEMENT_LIST",
	ObjectExpr:          "JS_OBJECT_EXPRESSION",
	PropertyList:        "JS_OBJECT_MEMBER_LIST",
	Property:            "JS_PROPERTY_OBJECT_MEMBER",
	ShorthandProperty:   "JS_SHORTHAND_PROPERTY_OBJECT_MEMBER",
	CallExpr:            "JS_CALL_EXPRESSION",
	Arguments:           "JS_CALL_ARGUMENTS",
	ArgumentList:        "JS_CALL_ARGUMENT_LIST",
	MemberExpr:          "JS_STATIC_MEMBER_EXPRESSION",
	ComputedMemberExpr:  "JS_COMPUTED_MEMBER_EXPRESSION",
	UnaryExpr:           "JS_UNARY_EXPRESSION",
	BinaryExpr:          "JS_BINARY_EXPRESSION",
	AssignmentExpr:      "JS_ASSIGNMENT_EXPRESSION",
	ParenExpr:           "JS_PARENTHESIZED_EXPRESSION",
	Bogus:               "JS_BOGUS_STATEMENT",
	BogusExpr:           "JS_BOGUS_EXPRESSION",
}

func kindName(k syntax.RawKind) string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

var keywords = map[string]syntax.RawKind{
	"function": FunctionKw,
	"return":   ReturnKw,
	"if":       IfKw,
	"else":     ElseKw,
	"const":    ConstKw,
	"let":      LetKw,
	"var":      VarKw,
	"true":     TrueKw,
	"false":    FalseKw,
	"null":     NullKw,
}

// wordOperators lex as operators.
var wordOperators = map[string]bool{
	"typeof": true, "void": true, "delete": true, "instanceof": true, "in": true,
}

// isName reports whether a token can be a property name.
func isName(k syntax.RawKind) bool {
	return k == Ident || (k >= FunctionKw && k <= NullKw)
}

// binaryPrecedence returns the binding power of a binary operator, or 0.
func binaryPrecedence(op string) int {
	switch op {
	case "??":
		return 1
	case "||":
		return 2
	case "&&":
		return 3
	case "|":
		return 4
	case "^":
		return 5
	case "&":
		return 6
	case "==", "!=", "===", "!==":
		return 7
	case "<", ">", "<=", ">=", "instanceof", "in":
		return 8
	case "<<", ">>", ">>>":
		return 9
	case "+", "-":
		return 10
	case "*", "/", "%":
		return 11
	case "**":
		return 12
	}
	return 0
}

func isAssignmentOperator(op string) bool {
	switch op {
	case "=", "+=", "-=", "*=", "/=", "%=", "**=", "<<=", ">>=", ">>>=", "&=", "|=", "^=", "&&=", "||=", "??=":
		return true
	}
	return false
}

func isUnaryOperator(op string) bool {
	switch op {
	case "!", "-", "+", "~", "typeof", "void", "delete":
		return true
	}
	return false
}
