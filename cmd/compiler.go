package cmd

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"mliac/codegen"
	"mliac/jit"
	"mliac/report"
	"mliac/syntax"
)

// Compile runs all the phases of compilation over the source file: lexing,
// parsing, lowering to LLVM IR, verification, and finally execution or
// executable emission.  It stops at the first error.
func (c *Compiler) Compile() error {
	profile, err := LoadProfile(filepath.Dir(c.srcPath))
	if err != nil {
		return err
	}
	c.profile = profile
	c.applyProfileDefaults()

	src, err := ioutil.ReadFile(c.srcPath)
	if err != nil {
		return report.Raise(report.ErrIO, nil, "error reading source file at `%s`: %s", c.srcPath, err)
	}

	tokens, err := syntax.NewLexer(string(src)).Tokenize()
	if err != nil {
		return err
	}

	root, err := syntax.NewParser(tokens).Parse()
	if err != nil {
		return err
	}

	mod, err := codegen.NewGenerator().Generate(root)
	if err != nil {
		return err
	}

	if err := codegen.Verify(mod); err != nil {
		return err
	}

	if c.verbose {
		if err := c.writeVerboseDump(tokens, root, mod); err != nil {
			return err
		}
	}

	if c.jit {
		result, err := jit.NewEngine(mod).Run()
		if err != nil {
			return err
		}

		fmt.Printf("Result: %d\n", result)
		return nil
	}

	if err := c.emitExecutable(mod); err != nil {
		return err
	}

	report.PrintInfoMessage("Wrote executable", c.outputPath)
	return nil
}

// applyProfileDefaults fills the compiler configuration that was not set on
// the command line from the build profile and the source file name.
func (c *Compiler) applyProfileDefaults() {
	if c.outputPath == "" {
		c.outputPath = c.profile.OutputPath
	}

	if c.outputPath == "" {
		base := filepath.Base(c.srcPath)
		ext := filepath.Ext(base)

		// An extensionless source file would collide with its own output.
		if ext == "" {
			c.outputPath = base + ".out"
		} else {
			c.outputPath = strings.TrimSuffix(base, ext)
		}
	}

	if c.profile.Verbose {
		c.verbose = true
	}
}
