package ast

import (
	"fmt"
	"strings"
)

// Dump returns an indented textual rendering of the tree rooted at e.  It is
// used by the verbose compilation dump.
func Dump(e Expr) string {
	sb := &strings.Builder{}
	dumpExpr(sb, e, 0)
	return sb.String()
}

func dumpExpr(sb *strings.Builder, e Expr, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch v := e.(type) {
	case *Number:
		fmt.Fprintf(sb, "%sNumber(%d)\n", prefix, v.Value)
	case *Ident:
		fmt.Fprintf(sb, "%sIdent(%s)\n", prefix, v.Name)
	case *Call:
		fmt.Fprintf(sb, "%sCall(%s)\n", prefix, v.Head)
		for _, arg := range v.Args {
			dumpExpr(sb, arg, indent+1)
		}
	case *Seq:
		fmt.Fprintf(sb, "%sSeq\n", prefix)
		dumpExpr(sb, v.First, indent+1)
		dumpExpr(sb, v.Second, indent+1)
	case *Assign:
		fmt.Fprintf(sb, "%sAssign(%s)\n", prefix, v.Name)
		dumpExpr(sb, v.Value, indent+1)
	case *Decl:
		if len(v.Params) > 0 {
			fmt.Fprintf(sb, "%sDecl(%s %s)\n", prefix, v.Name, strings.Join(v.Params, " "))
		} else {
			fmt.Fprintf(sb, "%sDecl(%s)\n", prefix, v.Name)
		}
		dumpExpr(sb, v.Value, indent+1)
		fmt.Fprintf(sb, "%sin\n", prefix)
		dumpExpr(sb, v.Body, indent+1)
	case *While:
		fmt.Fprintf(sb, "%sWhile\n", prefix)
		dumpExpr(sb, v.Cond, indent+1)
		fmt.Fprintf(sb, "%sdo\n", prefix)
		dumpExpr(sb, v.Body, indent+1)
	case *Match:
		fmt.Fprintf(sb, "%sMatch\n", prefix)
		dumpExpr(sb, v.Scrutinee, indent+1)
		for _, arm := range v.Arms {
			fmt.Fprintf(sb, "%s| %s ->\n", prefix, patternString(arm.Pattern))
			dumpExpr(sb, arm.Body, indent+1)
		}
	default:
		fmt.Fprintf(sb, "%s<unknown>\n", prefix)
	}
}

func patternString(p Pattern) string {
	switch v := p.(type) {
	case LiteralPattern:
		return fmt.Sprintf("%d", v.Value)
	default:
		return "_"
	}
}
