package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"mliac/ast"
	"mliac/report"
)

// genWhile generates a while loop.  The condition is re-evaluated in a header
// block before every iteration and the loop runs while it is nonzero.  The
// loop expression itself yields zero.
func (g *Generator) genWhile(loop *ast.While) (value.Value, error) {
	header := g.appendBlock()
	body := g.appendBlock()
	exit := g.appendBlock()

	g.block.NewBr(header)

	g.block = header
	condVal, err := g.genExpr(loop.Cond)
	if err != nil {
		return nil, err
	}

	isTrue := g.block.NewICmp(enum.IPredNE, condVal, constant.NewInt(types.I64, 0))
	g.block.NewCondBr(isTrue, body, exit)

	g.block = body
	if _, err := g.genExpr(loop.Body); err != nil {
		return nil, err
	}
	g.block.NewBr(header)

	g.block = exit
	return constant.NewInt(types.I64, 0), nil
}

// genMatch generates a match expression as a chain of comparison blocks, one
// per arm, each branching to the arm's body on a hit and to the next
// comparison otherwise.  Arm bodies store their value into a shared result
// slot and jump to a merge block that loads it.
//
// The wildcard arm always hits, so it terminates the chain and any arms after
// it are unreachable and not emitted.
func (g *Generator) genMatch(match *ast.Match) (value.Value, error) {
	if !hasWildcard(match.Arms) {
		return nil, report.Raise(report.ErrExhaustiveness, match.Span(), "match expression has no wildcard arm")
	}

	scrutinee, err := g.genExpr(match.Scrutinee)
	if err != nil {
		return nil, err
	}

	resultSlot := g.entryAlloca()
	merge := g.appendBlock()

	for _, arm := range match.Arms {
		if _, isWildcard := arm.Pattern.(ast.WildcardPattern); isWildcard {
			// The wildcard arm runs unconditionally.
			if err := g.genMatchArmBody(arm, resultSlot, merge); err != nil {
				return nil, err
			}

			break
		}

		lit := arm.Pattern.(ast.LiteralPattern)

		armBlock := g.appendBlock()
		nextCheck := g.appendBlock()

		hit := g.block.NewICmp(enum.IPredEQ, scrutinee, constant.NewInt(types.I64, lit.Value))
		g.block.NewCondBr(hit, armBlock, nextCheck)

		g.block = armBlock
		if err := g.genMatchArmBody(arm, resultSlot, merge); err != nil {
			return nil, err
		}

		g.block = nextCheck
	}

	g.block = merge
	return g.block.NewLoad(types.I64, resultSlot), nil
}

// genMatchArmBody generates an arm body in the current block, stores its
// value into the result slot, and branches to the merge block.
func (g *Generator) genMatchArmBody(arm *ast.MatchArm, resultSlot value.Value, merge *ir.Block) error {
	val, err := g.genExpr(arm.Body)
	if err != nil {
		return err
	}

	g.block.NewStore(val, resultSlot)
	g.block.NewBr(merge)

	return nil
}

// hasWildcard returns whether any arm of the match carries the wildcard
// pattern.
func hasWildcard(arms []*ast.MatchArm) bool {
	for _, arm := range arms {
		if _, ok := arm.Pattern.(ast.WildcardPattern); ok {
			return true
		}
	}

	return false
}
