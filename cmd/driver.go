// Package cmd is the top-level "driver" package for the compiler: it contains
// all the functionality for parsing command-line arguments, loading the build
// profile, and running all the phases of the compiler.
package cmd

import "mliac/report"

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// The absolute path to the source file being compiled.
	srcPath string

	// The path to write the executable to.  Empty until defaulted from the
	// build profile or the source file name.
	outputPath string

	// Whether to execute the program in process instead of emitting an
	// executable.
	jit bool

	// Whether to write the verbose compilation dump.
	verbose bool

	// The build profile loaded from `mlia.toml`.
	profile *BuildProfile
}

// RunCompiler is the main entry point for the compiler.  This should be
// called directly from main.
func RunCompiler() int {
	// Create a new compiler from the given command-line arguments.
	c := NewCompilerFromArgs()

	if err := c.Compile(); err != nil {
		if ce, ok := err.(*report.CompileError); ok {
			report.DisplayError(c.srcPath, ce)
		} else {
			report.PrintErrorMessage("Error", err)
		}

		return 1
	}

	return 0
}
