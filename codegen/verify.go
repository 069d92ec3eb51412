package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"mliac/report"
)

// Verify checks the structural well-formedness of a generated module before
// it is handed to the backend: every basic block of a defined function must
// carry a terminator and every instruction operand must be defined inside
// that function.
func Verify(mod *ir.Module) error {
	for _, fn := range mod.Funcs {
		// Declarations such as printf have no body.
		if len(fn.Blocks) == 0 {
			continue
		}

		defined := make(map[value.Value]struct{})
		for _, block := range fn.Blocks {
			for _, inst := range block.Insts {
				if v, ok := inst.(value.Value); ok {
					defined[v] = struct{}{}
				}
			}
		}

		for _, block := range fn.Blocks {
			if block.Term == nil {
				return report.Raise(
					report.ErrCodegen, nil,
					"basic block `%s` of function `%s` has no terminator", block.Name(), fn.Name(),
				)
			}

			for _, inst := range block.Insts {
				if err := checkOperands(fn, block, instOperands(inst), defined); err != nil {
					return err
				}
			}

			if err := checkOperands(fn, block, termOperands(block.Term), defined); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkOperands verifies that every operand which is itself an instruction
// was produced inside the function.  Constants, globals, parameters, and
// declared functions need no definition.
func checkOperands(fn *ir.Func, block *ir.Block, operands []value.Value, defined map[value.Value]struct{}) error {
	for _, op := range operands {
		if _, isInst := op.(ir.Instruction); !isInst {
			continue
		}

		if _, ok := defined[op]; !ok {
			return report.Raise(
				report.ErrCodegen, nil,
				"use of undefined value in block `%s` of function `%s`", block.Name(), fn.Name(),
			)
		}
	}

	return nil
}

// instOperands returns the value operands of the instructions the generator
// emits.
func instOperands(inst ir.Instruction) []value.Value {
	switch in := inst.(type) {
	case *ir.InstLoad:
		return []value.Value{in.Src}
	case *ir.InstStore:
		return []value.Value{in.Src, in.Dst}
	case *ir.InstAdd:
		return []value.Value{in.X, in.Y}
	case *ir.InstSub:
		return []value.Value{in.X, in.Y}
	case *ir.InstMul:
		return []value.Value{in.X, in.Y}
	case *ir.InstSDiv:
		return []value.Value{in.X, in.Y}
	case *ir.InstSRem:
		return []value.Value{in.X, in.Y}
	case *ir.InstAnd:
		return []value.Value{in.X, in.Y}
	case *ir.InstOr:
		return []value.Value{in.X, in.Y}
	case *ir.InstICmp:
		return []value.Value{in.X, in.Y}
	case *ir.InstZExt:
		return []value.Value{in.From}
	case *ir.InstCall:
		return append([]value.Value{in.Callee}, in.Args...)
	default:
		return nil
	}
}

// termOperands returns the value operands of a block terminator.  Branch
// targets are blocks, not values, and are not checked.
func termOperands(term ir.Terminator) []value.Value {
	switch t := term.(type) {
	case *ir.TermRet:
		if t.X == nil {
			return nil
		}
		return []value.Value{t.X}
	case *ir.TermCondBr:
		return []value.Value{t.Cond}
	default:
		return nil
	}
}
