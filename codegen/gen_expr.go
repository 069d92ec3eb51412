package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"mliac/ast"
	"mliac/report"
)

// genExpr generates the code for an expression and returns its i64 value.
func (g *Generator) genExpr(expr ast.Expr) (value.Value, error) {
	switch v := expr.(type) {
	case *ast.Number:
		return constant.NewInt(types.I64, v.Value), nil
	case *ast.Ident:
		slot, ok := g.lookup(v.Name)
		if !ok {
			return nil, report.Raise(report.ErrResolution, v.Span(), "undefined variable `%s`", v.Name)
		}

		return g.block.NewLoad(types.I64, slot), nil
	case *ast.Call:
		return g.genCall(v)
	case *ast.Seq:
		// The first expression is evaluated only for its side effects.
		if _, err := g.genExpr(v.First); err != nil {
			return nil, err
		}

		return g.genExpr(v.Second)
	case *ast.Assign:
		return g.genAssign(v)
	case *ast.Decl:
		return g.genDecl(v)
	case *ast.While:
		return g.genWhile(v)
	case *ast.Match:
		return g.genMatch(v)
	default:
		return nil, report.Raise(report.ErrCodegen, expr.Span(), "unsupported expression")
	}
}

// genAssign generates the mutation of an existing binding.  The assignment
// yields the assigned value.
func (g *Generator) genAssign(asn *ast.Assign) (value.Value, error) {
	val, err := g.genExpr(asn.Value)
	if err != nil {
		return nil, err
	}

	slot, ok := g.lookup(asn.Name)
	if !ok {
		return nil, report.Raise(report.ErrResolution, asn.Span(), "cannot assign to undefined variable `%s`", asn.Name)
	}

	g.block.NewStore(val, slot)
	return val, nil
}

// genDecl generates a scoped binding.  The bound value is computed outside
// the binding's scope, stored into a fresh stack slot, and the body is
// generated with the binding visible.  Shadowed bindings are restored when
// the scope is popped.
func (g *Generator) genDecl(decl *ast.Decl) (value.Value, error) {
	if len(decl.Params) > 0 {
		return nil, report.Raise(report.ErrResolution, decl.Span(), "functions are not supported")
	}

	val, err := g.genExpr(decl.Value)
	if err != nil {
		return nil, err
	}

	slot := g.entryAlloca()
	g.block.NewStore(val, slot)

	g.pushScope()
	g.defineLocal(decl.Name, slot)

	result, err := g.genExpr(decl.Body)

	g.popScope()

	return result, err
}

// genCall generates an operator or builtin application.
func (g *Generator) genCall(call *ast.Call) (value.Value, error) {
	switch call.Head {
	case "print":
		return g.genPrintCall(call)
	case "+", "-", "*", "/", "%", "&", "|":
		return g.genArithCall(call)
	case "<", ">", "=", "!=":
		return g.genCompareCall(call)
	case "!":
		return g.genNotCall(call)
	default:
		return nil, report.Raise(report.ErrResolution, call.Span(), "unknown function `%s`", call.Head)
	}
}

// genCallArgs generates the arguments of a call after checking its arity.
func (g *Generator) genCallArgs(call *ast.Call, arity int) ([]value.Value, error) {
	if len(call.Args) != arity {
		return nil, report.Raise(
			report.ErrResolution, call.Span(),
			"`%s` expects %d arguments but received %d", call.Head, arity, len(call.Args),
		)
	}

	args := make([]value.Value, len(call.Args))
	for i, argExpr := range call.Args {
		arg, err := g.genExpr(argExpr)
		if err != nil {
			return nil, err
		}

		args[i] = arg
	}

	return args, nil
}

// genPrintCall generates a call to printf with the `%lld\n` format string.
// print yields the value it printed.
func (g *Generator) genPrintCall(call *ast.Call) (value.Value, error) {
	args, err := g.genCallArgs(call, 1)
	if err != nil {
		return nil, err
	}

	g.block.NewCall(g.printfFunc, g.fmtStrPtr, args[0])
	return args[0], nil
}

// genArithCall generates a binary arithmetic or bitwise application.
func (g *Generator) genArithCall(call *ast.Call) (value.Value, error) {
	args, err := g.genCallArgs(call, 2)
	if err != nil {
		return nil, err
	}

	x, y := args[0], args[1]

	switch call.Head {
	case "+":
		return g.block.NewAdd(x, y), nil
	case "-":
		return g.block.NewSub(x, y), nil
	case "*":
		return g.block.NewMul(x, y), nil
	case "/":
		return g.block.NewSDiv(x, y), nil
	case "%":
		return g.block.NewSRem(x, y), nil
	case "&":
		return g.block.NewAnd(x, y), nil
	default: // |
		return g.block.NewOr(x, y), nil
	}
}

// genCompareCall generates a comparison application.  The i1 produced by the
// comparison is zero extended back to i64 since every value in the language
// is an i64.
func (g *Generator) genCompareCall(call *ast.Call) (value.Value, error) {
	args, err := g.genCallArgs(call, 2)
	if err != nil {
		return nil, err
	}

	var pred enum.IPred
	switch call.Head {
	case "<":
		pred = enum.IPredSLT
	case ">":
		pred = enum.IPredSGT
	case "=":
		pred = enum.IPredEQ
	default: // !=
		pred = enum.IPredNE
	}

	cond := g.block.NewICmp(pred, args[0], args[1])
	return g.block.NewZExt(cond, types.I64), nil
}

// genNotCall generates logical negation: zero becomes one and every nonzero
// value becomes zero.
func (g *Generator) genNotCall(call *ast.Call) (value.Value, error) {
	args, err := g.genCallArgs(call, 1)
	if err != nil {
		return nil, err
	}

	isZero := g.block.NewICmp(enum.IPredEQ, args[0], constant.NewInt(types.I64, 0))
	return g.block.NewZExt(isZero, types.I64), nil
}
