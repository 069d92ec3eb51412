package ast

import (
	"testing"

	"mliac/report"
)

func span() *report.TextSpan {
	return &report.TextSpan{}
}

func TestDump(t *testing.T) {
	base := NewExprBaseOn(span())

	tree := &Decl{
		ExprBase: base,
		Name:     "x",
		Value:    &Number{ExprBase: base, Value: 5},
		Body: &Call{
			ExprBase: base,
			Head:     "+",
			Args: []Expr{
				&Ident{ExprBase: base, Name: "x"},
				&Number{ExprBase: base, Value: 1},
			},
		},
	}

	want := "Decl(x)\n" +
		"  Number(5)\n" +
		"in\n" +
		"  Call(+)\n" +
		"    Ident(x)\n" +
		"    Number(1)\n"

	if got := Dump(tree); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestDumpMatch(t *testing.T) {
	base := NewExprBaseOn(span())

	tree := &Match{
		ExprBase:  base,
		Scrutinee: &Ident{ExprBase: base, Name: "x"},
		Arms: []*MatchArm{
			{Pattern: LiteralPattern{Value: 1}, Body: &Number{ExprBase: base, Value: 10}},
			{Pattern: WildcardPattern{}, Body: &Number{ExprBase: base, Value: 20}},
		},
	}

	want := "Match\n" +
		"  Ident(x)\n" +
		"| 1 ->\n" +
		"  Number(10)\n" +
		"| _ ->\n" +
		"  Number(20)\n"

	if got := Dump(tree); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestPatternMatches(t *testing.T) {
	lit := LiteralPattern{Value: 3}
	if !lit.Matches(3) {
		t.Error("LiteralPattern(3) rejected 3")
	}
	if lit.Matches(4) {
		t.Error("LiteralPattern(3) accepted 4")
	}

	if !(WildcardPattern{}).Matches(-17) {
		t.Error("WildcardPattern rejected a value")
	}
}
