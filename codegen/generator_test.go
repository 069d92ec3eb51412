package codegen

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"

	"mliac/ast"
	"mliac/report"
	"mliac/syntax"
)

func lower(t *testing.T, src string) string {
	t.Helper()

	return lowerModule(t, src).String()
}

func lowerModule(t *testing.T, src string) *ir.Module {
	t.Helper()

	root := parseSource(t, src)

	mod, err := NewGenerator().Generate(root)
	if err != nil {
		t.Fatalf("Generate(%q) returned error: %v", src, err)
	}

	if err := Verify(mod); err != nil {
		t.Fatalf("Verify of %q failed: %v", src, err)
	}

	return mod
}

func parseSource(t *testing.T, src string) ast.Expr {
	t.Helper()

	tokens, err := syntax.NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}

	root, err := syntax.NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}

	return root
}

func TestGenerateNumber(t *testing.T) {
	irText := lower(t, "42")

	if !strings.Contains(irText, "define i64 @main()") {
		t.Error("module does not define i64 @main")
	}

	if !strings.Contains(irText, "ret i64 42") {
		t.Error("main does not return the literal 42")
	}
}

func TestGeneratePrintUsesPrintf(t *testing.T) {
	irText := lower(t, "print 42")

	if !strings.Contains(irText, "@printf(i8*") {
		t.Error("module does not declare printf")
	}

	// Calls to variadic callees print with the full signature.
	if !strings.Contains(irText, "call i32 (i8*, ...) @printf") {
		t.Error("print did not lower to a printf call")
	}
}

func TestGenerateDeclUsesStackSlot(t *testing.T) {
	irText := lower(t, "decl x <- 5 in x")

	for _, want := range []string{"alloca i64", "store i64 5", "load i64"} {
		if !strings.Contains(irText, want) {
			t.Errorf("lowered decl is missing %q", want)
		}
	}
}

func TestGenerateWhileBlocks(t *testing.T) {
	mod := lowerModule(t, "decl i <- 0 in while < i 3 do i <- + i 1 done")

	main := mod.Funcs[len(mod.Funcs)-1]
	if main.Name() != "main" {
		t.Fatalf("last function is %q, want main", main.Name())
	}

	// entry, loop header, loop body, loop exit
	if len(main.Blocks) != 4 {
		t.Errorf("main has %d blocks, want 4", len(main.Blocks))
	}

	for _, block := range main.Blocks {
		if block.Term == nil {
			t.Errorf("block %q has no terminator", block.Name())
		}
	}
}

func TestGenerateMatchWildcardEndsChain(t *testing.T) {
	// Arms after the wildcard are unreachable and must not be emitted:
	// no comparison against 9 should appear.
	irText := lower(t, "match 1 with | _ -> 5 | 9 -> 6")

	if strings.Contains(irText, "icmp eq i64 1, 9") {
		t.Error("arm after wildcard was emitted")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind report.ErrorKind
	}{
		{"undefined variable", "x", report.ErrResolution},
		{"assign to undefined variable", "x <- 1", report.ErrResolution},
		{"unknown function", "(foo 1)", report.ErrResolution},
		{"declaration with parameters", "decl f a b <- 1 in 2", report.ErrResolution},
		// `&` is an identifier head, so the general parenthesized call form
		// carries the extra argument through to the arity check.
		{"wrong arity", "(& 1 2 3)", report.ErrResolution},
		{"wrong arity single argument", "(& 1)", report.ErrResolution},
		{"match without wildcard", "match 1 with | 2 -> 3", report.ErrExhaustiveness},
		{"binding out of scope", "(decl x <- 1 in x); x", report.ErrResolution},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := parseSource(t, tc.src)

			_, err := NewGenerator().Generate(root)
			if err == nil {
				t.Fatalf("Generate(%q) succeeded, want error", tc.src)
			}

			ce, ok := err.(*report.CompileError)
			if !ok {
				t.Fatalf("Generate(%q) error type = %T, want *report.CompileError", tc.src, err)
			}

			if ce.Kind != tc.kind {
				t.Errorf("Generate(%q) error kind = %s, want %s", tc.src, ce.Kind.Label(), tc.kind.Label())
			}
		})
	}
}
