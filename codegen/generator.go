// Package codegen converts the expression tree into an LLVM IR module with a
// single `main` function returning the program's value as an i64.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"mliac/ast"
)

// Generator is responsible for converting the expression tree into LLVM IR.
type Generator struct {
	// mod is the LLVM module being generated.
	mod *ir.Module

	// enclosingFunc is the function enclosing the block being compiled.
	enclosingFunc *ir.Func

	// block stores the current block being generated.
	block *ir.Block

	// localScopes is the stack of local scopes used during generation.  Each
	// scope maps a binding name to the stack slot holding its value.
	localScopes []map[string]value.Value

	// printfFunc is the declaration of the C printf function.
	printfFunc *ir.Func

	// fmtStrPtr is an i8* to the `%lld\n` format string used by print.
	fmtStrPtr constant.Constant
}

// NewGenerator creates a new generator with a fresh module containing the
// printf declaration and the print format string.
func NewGenerator() *Generator {
	mod := ir.NewModule()

	// Declare printf: i32 printf(i8* format, ...).
	printfFunc := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printfFunc.Sig.Variadic = true

	fmtStr := mod.NewGlobalDef("fmt_str", constant.NewCharArrayFromString("%lld\n\x00"))
	zero := constant.NewInt(types.I32, 0)
	fmtStrPtr := constant.NewGetElementPtr(fmtStr.ContentType, fmtStr, zero, zero)

	return &Generator{
		mod:        mod,
		printfFunc: printfFunc,
		fmtStrPtr:  fmtStrPtr,
	}
}

// Generate lowers the program rooted at root into the module and returns it.
// The program becomes the body of `main`; the program's value is main's
// return value.
func (g *Generator) Generate(root ast.Expr) (*ir.Module, error) {
	g.enclosingFunc = g.mod.NewFunc("main", types.I64)
	g.block = g.enclosingFunc.NewBlock("entry")

	g.pushScope()
	result, err := g.genExpr(root)
	g.popScope()

	if err != nil {
		return nil, err
	}

	g.block.NewRet(result)

	return g.mod, nil
}

// -----------------------------------------------------------------------------

// pushScope pushes a new local scope onto the scope stack.
func (g *Generator) pushScope() {
	g.localScopes = append(g.localScopes, make(map[string]value.Value))
}

// popScope pops a local scope off of the local scope stack.
func (g *Generator) popScope() {
	g.localScopes = g.localScopes[:len(g.localScopes)-1]
}

// defineLocal defines a local binding in the innermost scope.
func (g *Generator) defineLocal(name string, slot value.Value) {
	g.localScopes[len(g.localScopes)-1][name] = slot
}

// lookup looks up the stack slot of a binding.  The returned boolean
// indicates whether the binding exists.
func (g *Generator) lookup(name string) (value.Value, bool) {
	// Iterate through scopes in reverse order to implement shadowing.
	for i := len(g.localScopes) - 1; i >= 0; i-- {
		if slot, ok := g.localScopes[i][name]; ok {
			return slot, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// appendBlock adds a new basic block to the current function.  It does *not*
// set the current block to this new block.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb%d", len(g.enclosingFunc.Blocks)))
}

// entryAlloca creates an i64 stack slot in the function's entry block.  The
// entry block dominates every other block, so slots allocated there are
// usable anywhere in the function.
func (g *Generator) entryAlloca() *ir.InstAlloca {
	return g.enclosingFunc.Blocks[0].NewAlloca(types.I64)
}
