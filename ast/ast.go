// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the code generator.  Every construct in the language is an
// expression yielding a 64-bit integer, so there is a single node interface.
package ast

import "mliac/report"

// Expr represents an expression node.  All AST nodes implement Expr.
type Expr interface {
	// Span returns the spanning position of the whole expression.
	Span() *report.TextSpan
}

// ExprBase is a utility base struct for all expression nodes.
type ExprBase struct {
	span *report.TextSpan
}

// NewExprBaseOn creates a new expression base with the given span.
func NewExprBaseOn(span *report.TextSpan) ExprBase {
	return ExprBase{span: span}
}

// NewExprBaseOver creates a new expression base spanning over two spans.
func NewExprBaseOver(start, end *report.TextSpan) ExprBase {
	return ExprBase{span: report.NewSpanOver(start, end)}
}

func (eb ExprBase) Span() *report.TextSpan {
	return eb.span
}

// -----------------------------------------------------------------------------

// Number represents an integer literal.
type Number struct {
	ExprBase

	// The literal value.
	Value int64
}

// Ident represents a reference to a named binding.
type Ident struct {
	ExprBase

	// The name being referenced.
	Name string
}

// Call represents a parenthesized operator application: `(head arg...)` as
// well as the prefix forms `op a b`, `! a`, and `print a`.
type Call struct {
	ExprBase

	// The name of the operator or builtin being applied.
	Head string

	// The argument expressions in application order.
	Args []Expr
}

// Seq represents the sequencing of two expressions: the first is evaluated
// for its side effects and its value discarded; the value of the sequence is
// the value of the second expression.
type Seq struct {
	ExprBase

	First  Expr
	Second Expr
}

// Assign represents the mutation of an existing binding: `name <- value`.
// The assignment itself yields the assigned value.
type Assign struct {
	ExprBase

	// The name of the binding being mutated.
	Name string

	// The new value.
	Value Expr
}

// Decl represents a scoped binding: `decl name <- value in body`.  The
// binding is visible only inside the body; any outer binding of the same name
// is shadowed and restored afterwards.
type Decl struct {
	ExprBase

	// The name being bound.
	Name string

	// Parameter names when the declaration uses function syntax.  Parameters
	// are recognized by the grammar but rejected during lowering.
	Params []string

	// The bound value.
	Value Expr

	// The expression the binding is visible in.
	Body Expr
}

// While represents a loop: `while cond do body done`.  The loop yields zero.
type While struct {
	ExprBase

	Cond Expr
	Body Expr
}

// Match represents a dispatch over the value of the scrutinee:
// `match scrutinee with | pattern -> body ...`.
type Match struct {
	ExprBase

	Scrutinee Expr
	Arms      []*MatchArm
}

// MatchArm is a single `| pattern -> body` arm of a match expression.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// -----------------------------------------------------------------------------

// Pattern represents a match arm pattern.
type Pattern interface {
	// Matches returns whether the pattern accepts the given value.
	Matches(v int64) bool
}

// LiteralPattern accepts exactly one integer value.
type LiteralPattern struct {
	Value int64
}

func (lp LiteralPattern) Matches(v int64) bool {
	return v == lp.Value
}

// WildcardPattern accepts every value.
type WildcardPattern struct{}

func (WildcardPattern) Matches(int64) bool {
	return true
}
