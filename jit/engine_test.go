package jit

import (
	"bytes"
	"testing"

	"mliac/codegen"
	"mliac/report"
	"mliac/syntax"
)

// compile lowers a source program all the way to an LLVM module.
func compile(t *testing.T, src string) *Engine {
	t.Helper()

	tokens, err := syntax.NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}

	root, err := syntax.NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}

	mod, err := codegen.NewGenerator().Generate(root)
	if err != nil {
		t.Fatalf("Generate(%q) returned error: %v", src, err)
	}

	return NewEngine(mod)
}

func TestRunPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int64
	}{
		{"literal", "42", 42},
		{"negative literal", "-42", -42},
		{"declaration", "decl x <- 5 in x", 5},
		{"sequence yields second", "1; 2", 2},
		{"assignment yields value", "decl x <- 1 in x <- 7", 7},
		{"addition", "+ 20 22", 42},
		{"subtraction", "- 10 4", 6},
		{"multiplication", "* 6 7", 42},
		{"division truncates", "/ 7 2", 3},
		{"modulo", "% 7 3", 1},
		{"bitwise and", "(& 6 3)", 2},
		{"bitwise or", "| 6 3", 7},
		{"less true", "< 1 2", 1},
		{"less false", "< 2 1", 0},
		{"greater", "> 2 1", 1},
		{"equals", "= 3 3", 1},
		{"not equals", "!= 3 3", 0},
		{"not of nonzero", "! 5", 0},
		{"not of zero", "! 0", 1},
		{"while loop sum", "decl i <- 1 in decl sum <- 0 in (while < i 6 do (sum <- + sum i; i <- + i 1) done; sum)", 15},
		{"while yields zero", "while 0 do 1 done", 0},
		{"match literal arm", "(+ 20 (match 2 with | 2 -> 5 | _ -> 0))", 25},
		{"match wildcard arm", "match 7 with | 1 -> 100 | 2 -> 200 | _ -> 300", 300},
		{"arms after wildcard ignored", "match 1 with | _ -> 5 | 1 -> 9", 5},
		{"shadowing restores outer binding", "decl x <- 1 in ((decl x <- 2 in x); x)", 1},
		{"print yields operand", "print 42", 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := compile(t, tc.src)
			engine.SetOutput(&bytes.Buffer{})

			result, err := engine.Run()
			if err != nil {
				t.Fatalf("Run(%q) returned error: %v", tc.src, err)
			}

			if result != tc.want {
				t.Errorf("Run(%q) = %d, want %d", tc.src, result, tc.want)
			}
		})
	}
}

func TestRunPrintOutput(t *testing.T) {
	engine := compile(t, "print 1; print 2; print -3")

	var out bytes.Buffer
	engine.SetOutput(&out)

	if _, err := engine.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got, want := out.String(), "1\n2\n-3\n"; got != want {
		t.Errorf("print output = %q, want %q", got, want)
	}
}

func TestRunDivisionByZero(t *testing.T) {
	for _, src := range []string{"/ 1 0", "% 1 0"} {
		engine := compile(t, src)
		engine.SetOutput(&bytes.Buffer{})

		_, err := engine.Run()
		if err == nil {
			t.Fatalf("Run(%q) succeeded, want division by zero error", src)
		}

		ce, ok := err.(*report.CompileError)
		if !ok {
			t.Fatalf("Run(%q) error type = %T, want *report.CompileError", src, err)
		}

		if ce.Kind != report.ErrBackend {
			t.Errorf("Run(%q) error kind = %s, want Backend", src, ce.Kind.Label())
		}
	}
}
