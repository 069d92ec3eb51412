package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"mliac/report"
)

func assertCodegenError(t *testing.T, err error, desc string) {
	t.Helper()

	if err == nil {
		t.Fatalf("Verify accepted %s", desc)
	}

	ce, ok := err.(*report.CompileError)
	if !ok {
		t.Fatalf("Verify error type = %T, want *report.CompileError", err)
	}

	if ce.Kind != report.ErrCodegen {
		t.Errorf("Verify error kind = %s, want Codegen", ce.Kind.Label())
	}
}

func TestVerifyMissingTerminator(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("main", types.I64)
	fn.NewBlock("entry")

	assertCodegenError(t, Verify(mod), "a block with no terminator")
}

func TestVerifyUndefinedOperand(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("main", types.I64)
	entry := fn.NewBlock("entry")

	// An instruction built in a block that is never attached to the function
	// must not be usable as an operand.
	scratch := ir.NewBlock("scratch")
	orphan := scratch.NewAdd(constant.NewInt(types.I64, 1), constant.NewInt(types.I64, 2))

	entry.NewRet(orphan)

	assertCodegenError(t, Verify(mod), "a return of a value defined outside the function")
}

func TestVerifyUndefinedCondition(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("main", types.I64)
	entry := fn.NewBlock("entry")
	exit := fn.NewBlock("exit")
	exit.NewRet(constant.NewInt(types.I64, 0))

	scratch := ir.NewBlock("scratch")
	orphan := scratch.NewAdd(constant.NewInt(types.I64, 0), constant.NewInt(types.I64, 1))

	entry.NewCondBr(orphan, exit, exit)

	assertCodegenError(t, Verify(mod), "a branch on a value defined outside the function")
}

func TestVerifyAcceptsGeneratedModule(t *testing.T) {
	// lowerModule runs Verify itself; a representative program covering
	// slots, arithmetic, control flow, and printf exercises every operand
	// shape the generator emits.
	lowerModule(t, "decl i <- 0 in (while < i 3 do i <- + i 1 done; print (match i with | 3 -> 1 | _ -> 0))")
}
