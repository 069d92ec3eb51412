// Package jit executes a lowered module in process.  The code generator emits
// a small, fixed instruction vocabulary (stack slots, i64 arithmetic,
// comparisons, branches, and printf calls), so the engine evaluates the IR
// directly instead of shelling out to an external toolchain.
package jit

import (
	"fmt"
	"io"
	"os"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"mliac/report"
)

// Engine executes the `main` function of a lowered module.
type Engine struct {
	mod *ir.Module

	// out receives everything the program prints.
	out io.Writer
}

// NewEngine creates a new execution engine for the given module printing to
// standard output.
func NewEngine(mod *ir.Module) *Engine {
	return &Engine{mod: mod, out: os.Stdout}
}

// SetOutput redirects the program's print output to w.
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Run executes `main` and returns its result value.
func (e *Engine) Run() (int64, error) {
	var mainFunc *ir.Func
	for _, fn := range e.mod.Funcs {
		if fn.Name() == "main" && len(fn.Blocks) > 0 {
			mainFunc = fn
			break
		}
	}

	if mainFunc == nil {
		return 0, report.Raise(report.ErrBackend, nil, "module has no main function")
	}

	frame := &frame{
		regs: make(map[value.Value]int64),
		mem:  make(map[value.Value]*int64),
	}

	block := mainFunc.Blocks[0]
	for {
		for _, inst := range block.Insts {
			if err := e.execInst(inst, frame); err != nil {
				return 0, err
			}
		}

		switch term := block.Term.(type) {
		case *ir.TermRet:
			return frame.eval(term.X)
		case *ir.TermBr:
			block = term.Target.(*ir.Block)
		case *ir.TermCondBr:
			cond, err := frame.eval(term.Cond)
			if err != nil {
				return 0, err
			}

			if cond != 0 {
				block = term.TargetTrue.(*ir.Block)
			} else {
				block = term.TargetFalse.(*ir.Block)
			}
		default:
			return 0, report.Raise(report.ErrBackend, nil, "unsupported terminator %T", block.Term)
		}
	}
}

// frame holds the execution state of a function activation: the values of
// executed instructions and the cells backing stack slots.
type frame struct {
	regs map[value.Value]int64
	mem  map[value.Value]*int64
}

// eval resolves an operand to its runtime value.
func (f *frame) eval(v value.Value) (int64, error) {
	if c, ok := v.(*constant.Int); ok {
		return c.X.Int64(), nil
	}

	if r, ok := f.regs[v]; ok {
		return r, nil
	}

	return 0, report.Raise(report.ErrBackend, nil, "use of undefined value %s", v.Ident())
}

// execInst executes a single instruction, recording its result in the frame.
func (e *Engine) execInst(inst ir.Instruction, f *frame) error {
	switch in := inst.(type) {
	case *ir.InstAlloca:
		f.mem[in] = new(int64)
		return nil
	case *ir.InstLoad:
		cell, ok := f.mem[in.Src]
		if !ok {
			return report.Raise(report.ErrBackend, nil, "load from unknown slot %s", in.Src.Ident())
		}

		f.regs[in] = *cell
		return nil
	case *ir.InstStore:
		cell, ok := f.mem[in.Dst]
		if !ok {
			return report.Raise(report.ErrBackend, nil, "store to unknown slot %s", in.Dst.Ident())
		}

		val, err := f.eval(in.Src)
		if err != nil {
			return err
		}

		*cell = val
		return nil
	case *ir.InstAdd:
		return e.execBinary(in, in.X, in.Y, f, func(x, y int64) (int64, error) { return x + y, nil })
	case *ir.InstSub:
		return e.execBinary(in, in.X, in.Y, f, func(x, y int64) (int64, error) { return x - y, nil })
	case *ir.InstMul:
		return e.execBinary(in, in.X, in.Y, f, func(x, y int64) (int64, error) { return x * y, nil })
	case *ir.InstSDiv:
		return e.execBinary(in, in.X, in.Y, f, func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, report.Raise(report.ErrBackend, nil, "division by zero")
			}
			return x / y, nil
		})
	case *ir.InstSRem:
		return e.execBinary(in, in.X, in.Y, f, func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, report.Raise(report.ErrBackend, nil, "division by zero")
			}
			return x % y, nil
		})
	case *ir.InstAnd:
		return e.execBinary(in, in.X, in.Y, f, func(x, y int64) (int64, error) { return x & y, nil })
	case *ir.InstOr:
		return e.execBinary(in, in.X, in.Y, f, func(x, y int64) (int64, error) { return x | y, nil })
	case *ir.InstICmp:
		x, err := f.eval(in.X)
		if err != nil {
			return err
		}

		y, err := f.eval(in.Y)
		if err != nil {
			return err
		}

		var hit bool
		switch in.Pred {
		case enum.IPredEQ:
			hit = x == y
		case enum.IPredNE:
			hit = x != y
		case enum.IPredSLT:
			hit = x < y
		case enum.IPredSGT:
			hit = x > y
		default:
			return report.Raise(report.ErrBackend, nil, "unsupported comparison predicate %v", in.Pred)
		}

		if hit {
			f.regs[in] = 1
		} else {
			f.regs[in] = 0
		}
		return nil
	case *ir.InstZExt:
		val, err := f.eval(in.From)
		if err != nil {
			return err
		}

		f.regs[in] = val
		return nil
	case *ir.InstCall:
		return e.execCall(in, f)
	default:
		return report.Raise(report.ErrBackend, nil, "unsupported instruction %T", inst)
	}
}

// execBinary evaluates both operands of a binary instruction and records the
// result of applying op to them.
func (e *Engine) execBinary(inst value.Value, xv, yv value.Value, f *frame, op func(x, y int64) (int64, error)) error {
	x, err := f.eval(xv)
	if err != nil {
		return err
	}

	y, err := f.eval(yv)
	if err != nil {
		return err
	}

	result, err := op(x, y)
	if err != nil {
		return err
	}

	f.regs[inst] = result
	return nil
}

// execCall executes a call instruction.  The only callable the code generator
// emits is printf with the `%lld\n` format string and a single i64 argument.
func (e *Engine) execCall(call *ir.InstCall, f *frame) error {
	callee, ok := call.Callee.(*ir.Func)
	if !ok || callee.Name() != "printf" {
		return report.Raise(report.ErrBackend, nil, "unsupported call target %s", call.Callee.Ident())
	}

	if len(call.Args) != 2 {
		return report.Raise(report.ErrBackend, nil, "unexpected printf arity %d", len(call.Args))
	}

	val, err := f.eval(call.Args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "%d\n", val)

	f.regs[call] = 0
	return nil
}
