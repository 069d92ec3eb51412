package syntax

import (
	"testing"

	"mliac/ast"
	"mliac/report"
)

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()

	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}

	root, err := NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}

	return root
}

func TestParseNumber(t *testing.T) {
	root := parse(t, "42")

	num, ok := root.(*ast.Number)
	if !ok {
		t.Fatalf("parse result is %T, want *ast.Number", root)
	}

	if num.Value != 42 {
		t.Errorf("number value = %d, want 42", num.Value)
	}
}

func TestParseDecl(t *testing.T) {
	decl, ok := parse(t, "decl x <- 5 in x").(*ast.Decl)
	if !ok {
		t.Fatal("parse result is not *ast.Decl")
	}

	if decl.Name != "x" {
		t.Errorf("decl name = %q, want \"x\"", decl.Name)
	}

	if len(decl.Params) != 0 {
		t.Errorf("decl has %d params, want 0", len(decl.Params))
	}

	if num, ok := decl.Value.(*ast.Number); !ok || num.Value != 5 {
		t.Errorf("decl value = %v, want Number(5)", decl.Value)
	}

	if ident, ok := decl.Body.(*ast.Ident); !ok || ident.Name != "x" {
		t.Errorf("decl body = %v, want Ident(x)", decl.Body)
	}
}

func TestParseDeclWithParams(t *testing.T) {
	decl, ok := parse(t, "decl f a b <- 1 in 2").(*ast.Decl)
	if !ok {
		t.Fatal("parse result is not *ast.Decl")
	}

	if decl.Name != "f" {
		t.Errorf("decl name = %q, want \"f\"", decl.Name)
	}

	if len(decl.Params) != 2 || decl.Params[0] != "a" || decl.Params[1] != "b" {
		t.Errorf("decl params = %v, want [a b]", decl.Params)
	}
}

func TestParseSeq(t *testing.T) {
	seq, ok := parse(t, "1; 2").(*ast.Seq)
	if !ok {
		t.Fatal("parse result is not *ast.Seq")
	}

	if num, ok := seq.First.(*ast.Number); !ok || num.Value != 1 {
		t.Errorf("seq first = %v, want Number(1)", seq.First)
	}

	if num, ok := seq.Second.(*ast.Number); !ok || num.Value != 2 {
		t.Errorf("seq second = %v, want Number(2)", seq.Second)
	}

	// Sequencing is right associative.
	nested, ok := parse(t, "1; 2; 3").(*ast.Seq)
	if !ok {
		t.Fatal("parse result is not *ast.Seq")
	}

	if _, ok := nested.Second.(*ast.Seq); !ok {
		t.Errorf("seq second = %T, want *ast.Seq", nested.Second)
	}
}

func TestParseAssign(t *testing.T) {
	assign, ok := parse(t, "x <- + x 1").(*ast.Assign)
	if !ok {
		t.Fatal("parse result is not *ast.Assign")
	}

	if assign.Name != "x" {
		t.Errorf("assign name = %q, want \"x\"", assign.Name)
	}

	if call, ok := assign.Value.(*ast.Call); !ok || call.Head != "+" {
		t.Errorf("assign value = %v, want Call(+)", assign.Value)
	}
}

func TestParseCalls(t *testing.T) {
	tests := []struct {
		src      string
		head     string
		argCount int
	}{
		{"+ 1 2", "+", 2},
		{"(- 1 2)", "-", 2},
		{"% 7 3", "%", 2},
		{"!= x 0", "!=", 2},
		{"| 1 0", "|", 2},
		{"! 1", "!", 1},
		{"print 42", "print", 1},
		{"(foo 1 2 3)", "foo", 3},
	}

	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			call, ok := parse(t, tc.src).(*ast.Call)
			if !ok {
				t.Fatal("parse result is not *ast.Call")
			}

			if call.Head != tc.head {
				t.Errorf("call head = %q, want %q", call.Head, tc.head)
			}

			if len(call.Args) != tc.argCount {
				t.Errorf("call has %d args, want %d", len(call.Args), tc.argCount)
			}
		})
	}
}

func TestParseParenGrouping(t *testing.T) {
	// A parenthesized expression is transparent: the inner node comes
	// through unchanged.
	if _, ok := parse(t, "(42)").(*ast.Number); !ok {
		t.Error("parse of `(42)` is not *ast.Number")
	}

	if _, ok := parse(t, "((1; 2))").(*ast.Seq); !ok {
		t.Error("parse of `((1; 2))` is not *ast.Seq")
	}
}

func TestParseWhile(t *testing.T) {
	loop, ok := parse(t, "while < i 5 do i <- + i 1 done").(*ast.While)
	if !ok {
		t.Fatal("parse result is not *ast.While")
	}

	if cond, ok := loop.Cond.(*ast.Call); !ok || cond.Head != "<" {
		t.Errorf("while cond = %v, want Call(<)", loop.Cond)
	}

	if _, ok := loop.Body.(*ast.Assign); !ok {
		t.Errorf("while body = %T, want *ast.Assign", loop.Body)
	}
}

func TestParseMatch(t *testing.T) {
	m, ok := parse(t, "match x with | 1 -> 10 | _ -> 20").(*ast.Match)
	if !ok {
		t.Fatal("parse result is not *ast.Match")
	}

	if len(m.Arms) != 2 {
		t.Fatalf("match has %d arms, want 2", len(m.Arms))
	}

	if pat, ok := m.Arms[0].Pattern.(ast.LiteralPattern); !ok || pat.Value != 1 {
		t.Errorf("first arm pattern = %v, want LiteralPattern(1)", m.Arms[0].Pattern)
	}

	if _, ok := m.Arms[1].Pattern.(ast.WildcardPattern); !ok {
		t.Errorf("second arm pattern = %v, want WildcardPattern", m.Arms[1].Pattern)
	}
}

func TestParseNestedMatchArmsAreGreedy(t *testing.T) {
	// The inner match captures all following arms, so the outer match ends
	// up with exactly one arm.
	m, ok := parse(t, "match 1 with | _ -> match 2 with | 2 -> 5 | _ -> 6").(*ast.Match)
	if !ok {
		t.Fatal("parse result is not *ast.Match")
	}

	if len(m.Arms) != 1 {
		t.Fatalf("outer match has %d arms, want 1", len(m.Arms))
	}

	inner, ok := m.Arms[0].Body.(*ast.Match)
	if !ok {
		t.Fatalf("outer arm body = %T, want *ast.Match", m.Arms[0].Body)
	}

	if len(inner.Arms) != 2 {
		t.Errorf("inner match has %d arms, want 2", len(inner.Arms))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty input", ""},
		{"truncated decl", "decl x"},
		{"unbalanced paren", "(1"},
		{"adjacent atoms", "1 2"},
		{"match without arms", "match x with"},
		{"stray done", "done"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := NewLexer(tc.src).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize(%q) returned error: %v", tc.src, err)
			}

			_, err = NewParser(tokens).Parse()
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want syntax error", tc.src)
			}

			ce, ok := err.(*report.CompileError)
			if !ok {
				t.Fatalf("Parse(%q) error type = %T, want *report.CompileError", tc.src, err)
			}

			if ce.Kind != report.ErrSyntax {
				t.Errorf("Parse(%q) error kind = %s, want Syntax", tc.src, ce.Kind.Label())
			}
		})
	}
}
