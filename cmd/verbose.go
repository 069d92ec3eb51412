package cmd

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"

	"mliac/ast"
	"mliac/report"
	"mliac/syntax"
)

// writeVerboseDump writes `<source stem>_verbose.txt` next to the source file
// containing the token stream, the syntax tree, and the generated LLVM IR.
func (c *Compiler) writeVerboseDump(tokens []*syntax.Token, root ast.Expr, mod *ir.Module) error {
	sb := &strings.Builder{}

	sb.WriteString("TOKENS\n------\n")
	for i, tok := range tokens {
		fmt.Fprintf(sb, "%4d  %s\n", i, tok)
	}

	sb.WriteString("\nABSTRACT SYNTAX TREE\n--------------------\n")
	sb.WriteString(ast.Dump(root))

	sb.WriteString("\nLLVM IR CODE\n------------\n")
	sb.WriteString(mod.String())

	dumpPath := strings.TrimSuffix(c.srcPath, filepath.Ext(c.srcPath)) + "_verbose.txt"
	if err := ioutil.WriteFile(dumpPath, []byte(sb.String()), 0644); err != nil {
		return report.Raise(report.ErrIO, nil, "error writing verbose dump at `%s`: %s", dumpPath, err)
	}

	return nil
}
