package syntax

import (
	"strconv"

	"mliac/ast"
	"mliac/report"
)

// bnfElement is a single symbol in a production body: a terminal token kind
// or a nonterminal name.
type bnfElement interface {
	bnfElem()
}

type bnfTerminal int

type bnfNonterminal string

func (bnfTerminal) bnfElem()    {}
func (bnfNonterminal) bnfElem() {}

// semanticAction builds the semantic value of a production from the values of
// its body symbols.  Terminal symbols appear as *Token, nonterminals as
// whatever value their own action produced.
type semanticAction func(children []interface{}) (interface{}, error)

// production is a single grammar rule together with the semantic action run
// when the parser reduces by it.
type production struct {
	name   string
	body   []bnfElement
	action semanticAction
}

// goalSymbol is the start nonterminal of the grammar.
const goalSymbol = "program"

// grammar is the full rule set of the language.  The parsing table is
// generated from it on first use.
var grammar = buildGrammar()

func buildGrammar() []*production {
	t := func(kind int) bnfElement { return bnfTerminal(kind) }
	n := func(name string) bnfElement { return bnfNonterminal(name) }

	prods := []*production{
		{"program", []bnfElement{n("expr")}, passthrough},

		// decl name <- value in body
		{"expr", []bnfElement{t(TOK_DECL), t(TOK_IDENT), t(TOK_ASSIGN), n("expr"), t(TOK_IN), n("expr")}, func(c []interface{}) (interface{}, error) {
			declTok := c[0].(*Token)
			body := c[5].(ast.Expr)

			return &ast.Decl{
				ExprBase: ast.NewExprBaseOver(declTok.Span, body.Span()),
				Name:     c[1].(*Token).Value,
				Value:    c[3].(ast.Expr),
				Body:     body,
			}, nil
		}},
		// decl name params <- value in body (function syntax; rejected later)
		{"expr", []bnfElement{t(TOK_DECL), t(TOK_IDENT), n("params"), t(TOK_ASSIGN), n("expr"), t(TOK_IN), n("expr")}, func(c []interface{}) (interface{}, error) {
			declTok := c[0].(*Token)
			body := c[6].(ast.Expr)

			return &ast.Decl{
				ExprBase: ast.NewExprBaseOver(declTok.Span, body.Span()),
				Name:     c[1].(*Token).Value,
				Params:   c[2].([]string),
				Value:    c[4].(ast.Expr),
				Body:     body,
			}, nil
		}},
		{"expr", []bnfElement{n("seq")}, passthrough},

		{"params", []bnfElement{t(TOK_IDENT)}, func(c []interface{}) (interface{}, error) {
			return []string{c[0].(*Token).Value}, nil
		}},
		{"params", []bnfElement{n("params"), t(TOK_IDENT)}, func(c []interface{}) (interface{}, error) {
			return append(c[0].([]string), c[1].(*Token).Value), nil
		}},

		{"seq", []bnfElement{n("assign"), t(TOK_SEMI), n("expr")}, func(c []interface{}) (interface{}, error) {
			first := c[0].(ast.Expr)
			second := c[2].(ast.Expr)

			return &ast.Seq{
				ExprBase: ast.NewExprBaseOver(first.Span(), second.Span()),
				First:    first,
				Second:   second,
			}, nil
		}},
		{"seq", []bnfElement{n("assign")}, passthrough},

		{"assign", []bnfElement{t(TOK_IDENT), t(TOK_ASSIGN), n("assign")}, func(c []interface{}) (interface{}, error) {
			nameTok := c[0].(*Token)
			value := c[2].(ast.Expr)

			return &ast.Assign{
				ExprBase: ast.NewExprBaseOver(nameTok.Span, value.Span()),
				Name:     nameTok.Value,
				Value:    value,
			}, nil
		}},
		{"assign", []bnfElement{n("call")}, passthrough},
	}

	// Binary operator applications in prefix position: `op a b`.
	for _, opKind := range []int{
		TOK_PLUS, TOK_MINUS, TOK_STAR, TOK_DIV, TOK_MOD,
		TOK_LT, TOK_GT, TOK_EQ, TOK_NEQ, TOK_PIPE,
	} {
		prods = append(prods, &production{"call", []bnfElement{t(opKind), n("atom"), n("atom")}, func(c []interface{}) (interface{}, error) {
			opTok := c[0].(*Token)
			rhs := c[2].(ast.Expr)

			return &ast.Call{
				ExprBase: ast.NewExprBaseOver(opTok.Span, rhs.Span()),
				Head:     opTok.Value,
				Args:     []ast.Expr{c[1].(ast.Expr), rhs},
			}, nil
		}})
	}

	prods = append(prods,
		&production{"call", []bnfElement{t(TOK_NOT), n("atom")}, unaryCall},
		&production{"call", []bnfElement{t(TOK_PRINT), n("atom")}, unaryCall},
		&production{"call", []bnfElement{n("atom")}, passthrough},

		&production{"atom", []bnfElement{t(TOK_INTLIT)}, func(c []interface{}) (interface{}, error) {
			tok := c[0].(*Token)

			// This should always succeed since the value was parsed by the lexer.
			value, err := strconv.ParseInt(tok.Value, 10, 64)
			if err != nil {
				return nil, report.Raise(report.ErrLexical, tok.Span, "integer literal `%s` out of range", tok.Value)
			}

			return &ast.Number{ExprBase: ast.NewExprBaseOn(tok.Span), Value: value}, nil
		}},
		&production{"atom", []bnfElement{t(TOK_IDENT)}, func(c []interface{}) (interface{}, error) {
			tok := c[0].(*Token)
			return &ast.Ident{ExprBase: ast.NewExprBaseOn(tok.Span), Name: tok.Value}, nil
		}},
		&production{"atom", []bnfElement{t(TOK_LPAREN), t(TOK_IDENT), n("args"), t(TOK_RPAREN)}, func(c []interface{}) (interface{}, error) {
			return &ast.Call{
				ExprBase: ast.NewExprBaseOver(c[0].(*Token).Span, c[3].(*Token).Span),
				Head:     c[1].(*Token).Value,
				Args:     c[2].([]ast.Expr),
			}, nil
		}},
		&production{"atom", []bnfElement{t(TOK_LPAREN), n("expr"), t(TOK_RPAREN)}, func(c []interface{}) (interface{}, error) {
			return c[1], nil
		}},
		&production{"atom", []bnfElement{t(TOK_WHILE), n("expr"), t(TOK_DO), n("expr"), t(TOK_DONE)}, func(c []interface{}) (interface{}, error) {
			return &ast.While{
				ExprBase: ast.NewExprBaseOver(c[0].(*Token).Span, c[4].(*Token).Span),
				Cond:     c[1].(ast.Expr),
				Body:     c[3].(ast.Expr),
			}, nil
		}},
		&production{"atom", []bnfElement{t(TOK_MATCH), n("expr"), t(TOK_WITH), n("arms")}, func(c []interface{}) (interface{}, error) {
			arms := c[3].([]*ast.MatchArm)
			matchTok := c[0].(*Token)

			return &ast.Match{
				ExprBase:  ast.NewExprBaseOver(matchTok.Span, arms[len(arms)-1].Body.Span()),
				Scrutinee: c[1].(ast.Expr),
				Arms:      arms,
			}, nil
		}},

		&production{"args", []bnfElement{n("atom")}, func(c []interface{}) (interface{}, error) {
			return []ast.Expr{c[0].(ast.Expr)}, nil
		}},
		&production{"args", []bnfElement{n("args"), n("atom")}, func(c []interface{}) (interface{}, error) {
			return append(c[0].([]ast.Expr), c[1].(ast.Expr)), nil
		}},

		&production{"arms", []bnfElement{n("arm"), n("arms")}, func(c []interface{}) (interface{}, error) {
			return append([]*ast.MatchArm{c[0].(*ast.MatchArm)}, c[1].([]*ast.MatchArm)...), nil
		}},
		&production{"arms", []bnfElement{n("arm")}, func(c []interface{}) (interface{}, error) {
			return []*ast.MatchArm{c[0].(*ast.MatchArm)}, nil
		}},
		&production{"arm", []bnfElement{t(TOK_PIPE), n("pattern"), t(TOK_ARROW), n("expr")}, func(c []interface{}) (interface{}, error) {
			return &ast.MatchArm{Pattern: c[1].(ast.Pattern), Body: c[3].(ast.Expr)}, nil
		}},

		&production{"pattern", []bnfElement{t(TOK_INTLIT)}, func(c []interface{}) (interface{}, error) {
			tok := c[0].(*Token)

			// This should always succeed since the value was parsed by the lexer.
			value, err := strconv.ParseInt(tok.Value, 10, 64)
			if err != nil {
				return nil, report.Raise(report.ErrLexical, tok.Span, "integer literal `%s` out of range", tok.Value)
			}

			return ast.LiteralPattern{Value: value}, nil
		}},
		&production{"pattern", []bnfElement{t(TOK_UNDERSCORE)}, func(c []interface{}) (interface{}, error) {
			return ast.WildcardPattern{}, nil
		}},
	)

	return prods
}

// passthrough forwards the value of a production's single significant child.
func passthrough(c []interface{}) (interface{}, error) {
	return c[0], nil
}

// unaryCall builds a one argument application from `op atom`.
func unaryCall(c []interface{}) (interface{}, error) {
	opTok := c[0].(*Token)
	arg := c[1].(ast.Expr)

	return &ast.Call{
		ExprBase: ast.NewExprBaseOver(opTok.Span, arg.Span()),
		Head:     opTok.Value,
		Args:     []ast.Expr{arg},
	}, nil
}
