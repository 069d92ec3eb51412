package syntax

import "mliac/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_DECL = iota
	TOK_WHILE
	TOK_DO
	TOK_DONE
	TOK_MATCH
	TOK_WITH
	TOK_IN
	TOK_PRINT

	TOK_ASSIGN
	TOK_ARROW
	TOK_PIPE
	TOK_UNDERSCORE
	TOK_SEMI
	TOK_LPAREN
	TOK_RPAREN

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD
	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_NOT

	TOK_IDENT
	TOK_INTLIT

	TOK_EOF
)

// keywords maps reserved spellings to the token kind they lex as.  Flushed
// lexemes that don't occur in this table become identifiers.
var keywords = map[string]int{
	"decl":  TOK_DECL,
	"while": TOK_WHILE,
	"do":    TOK_DO,
	"done":  TOK_DONE,
	"match": TOK_MATCH,
	"with":  TOK_WITH,
	"in":    TOK_IN,
	"print": TOK_PRINT,
	"<-":    TOK_ASSIGN,
	"->":    TOK_ARROW,
	"|":     TOK_PIPE,
	"_":     TOK_UNDERSCORE,
	";":     TOK_SEMI,
	"(":     TOK_LPAREN,
	")":     TOK_RPAREN,
	"+":     TOK_PLUS,
	"-":     TOK_MINUS,
	"*":     TOK_STAR,
	"/":     TOK_DIV,
	"%":     TOK_MOD,
	"=":     TOK_EQ,
	"!=":    TOK_NEQ,
	"<":     TOK_LT,
	">":     TOK_GT,
	"!":     TOK_NOT,
}

// tokenKindNames maps token kinds to the names used when printing tokens and
// reporting errors about them.
var tokenKindNames = map[int]string{
	TOK_DECL:       "Decl",
	TOK_WHILE:      "While",
	TOK_DO:         "Do",
	TOK_DONE:       "Done",
	TOK_MATCH:      "Match",
	TOK_WITH:       "With",
	TOK_IN:         "In",
	TOK_PRINT:      "Print",
	TOK_ASSIGN:     "Assign",
	TOK_ARROW:      "Arrow",
	TOK_PIPE:       "Pipe",
	TOK_UNDERSCORE: "Underscore",
	TOK_SEMI:       "Semicolon",
	TOK_LPAREN:     "ParenL",
	TOK_RPAREN:     "ParenR",
	TOK_PLUS:       "Plus",
	TOK_MINUS:      "Minus",
	TOK_STAR:       "Times",
	TOK_DIV:        "Divide",
	TOK_MOD:        "Modulo",
	TOK_EQ:         "Equals",
	TOK_NEQ:        "NotEquals",
	TOK_NOT:        "Not",
	TOK_LT:         "Less",
	TOK_GT:         "Greater",
	TOK_IDENT:      "Identifier",
	TOK_INTLIT:     "IntegerLiteral",
	TOK_EOF:        "EndOfFile",
}

// KindName returns the display name of a token kind.
func KindName(kind int) string {
	return tokenKindNames[kind]
}

func (tok *Token) String() string {
	switch tok.Kind {
	case TOK_IDENT:
		return "Identifier(" + tok.Value + ")"
	case TOK_INTLIT:
		return "IntegerLiteral(" + tok.Value + ")"
	default:
		return KindName(tok.Kind)
	}
}
