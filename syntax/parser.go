// Package syntax implements the lexer and parser of the language: a
// table-driven DFA tokenizer and an LALR(1) shift-reduce parser whose
// Action-Goto table is generated from the grammar at first use.
package syntax

import (
	"mliac/ast"
	"mliac/report"
)

// Parser is an LALR(1) shift-reduce parser over a token stream.
type Parser struct {
	tokens []*Token
	ndx    int

	ptable     *ParsingTable
	stateStack []int

	// The semantic stack is used to build the AST: shifted tokens and the
	// values produced by reductions.
	semanticStack []interface{}
}

// NewParser creates a new parser for the given token stream.
func NewParser(tokens []*Token) *Parser {
	return &Parser{
		tokens: tokens,
		// Set the state stack to the starting state.
		stateStack: []int{0},
	}
}

// Parse runs the main parsing algorithm over the token stream and returns the
// expression tree of the program.
func (p *Parser) Parse() (ast.Expr, error) {
	ptable, err := parsingTable()
	if err != nil {
		return nil, err
	}
	p.ptable = ptable

	for {
		state := p.ptable.Rows[p.stateStack[len(p.stateStack)-1]]

		action, ok := state.Actions[p.lookahead().Kind]
		if !ok {
			return nil, p.unexpectedToken()
		}

		switch action.Kind {
		case AKShift:
			p.semanticStack = append(p.semanticStack, p.lookahead())
			p.stateStack = append(p.stateStack, action.Operand)
			p.ndx++
		case AKReduce:
			if err := p.reduce(action.Operand); err != nil {
				return nil, err
			}
		case AKAccept:
			return p.semanticStack[0].(ast.Expr), nil
		}
	}
}

// lookahead returns the current lookahead token.  Past the end of the token
// stream it is a synthesized EOF token.
func (p *Parser) lookahead() *Token {
	if p.ndx < len(p.tokens) {
		return p.tokens[p.ndx]
	}

	var span *report.TextSpan
	if len(p.tokens) > 0 {
		span = p.tokens[len(p.tokens)-1].Span
	}

	return &Token{Kind: TOK_EOF, Span: span}
}

// reduce pops the body of the given production off the stacks, runs its
// semantic action, and pushes the resulting value and goto state.
func (p *Parser) reduce(prodNdx int) error {
	prod := p.ptable.Productions[prodNdx]
	count := len(prod.body)

	children := p.semanticStack[len(p.semanticStack)-count:]

	value, err := prod.action(children)
	if err != nil {
		return err
	}

	p.semanticStack = p.semanticStack[:len(p.semanticStack)-count]
	p.stateStack = p.stateStack[:len(p.stateStack)-count]

	p.semanticStack = append(p.semanticStack, value)

	gotoState := p.ptable.Rows[p.stateStack[len(p.stateStack)-1]].Gotos[prod.name]
	p.stateStack = append(p.stateStack, gotoState)

	return nil
}

// unexpectedToken builds the syntax error for the current lookahead.
func (p *Parser) unexpectedToken() error {
	tok := p.lookahead()

	if tok.Kind == TOK_EOF {
		return report.RaiseToken(report.ErrSyntax, p.ndx, tok.Span, "unexpected end of input")
	}

	return report.RaiseToken(report.ErrSyntax, p.ndx, tok.Span, "unexpected token `%s`", tok.Value)
}
