package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const usage = `Usage: mliac [flags|options] <path to source file>

Flags:
------
-h, --help      Displays usage information (ie. this text).
    --jit       Executes the program in process instead of emitting an
                executable.
    --verbose   Writes <source stem>_verbose.txt containing the token stream,
                the syntax tree, and the generated LLVM IR.

Options:
--------
-o, --output    Sets the path for the output executable.  Defaults to the
                source file name without its extension.
`

// Prints the usage message and exits the compiler with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":       {},
	"-output": {},
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument; it is empty for positional arguments.
// The second value is the value of the argument; it is empty for flags.  The
// final value indicates whether or not there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if strings.HasPrefix(arg, "-") { // flag or option
		name := arg[1:]

		if _, ok := options[name]; ok { // option
			// Make sure the option value exists.
			if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
				value := ap.args[ap.ndx]
				ap.ndx++
				return name, value, true
			}

			argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
		}

		return name, "", true
	}

	// positional
	return "", arg, true
}

// useArg attempts to use a single command-line argument to initialize the
// compiler.  If the argument is invalid, the program will exit.
func useArg(c *Compiler, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "-jit":
		c.jit = true
	case "-verbose":
		c.verbose = true
	case "o", "-output":
		c.outputPath = value
	case "":
		if c.srcPath != "" {
			argumentError("source file specified multiple times")
		}

		absPath, err := filepath.Abs(value)
		if err != nil {
			argumentError("invalid source path: %s", value)
		}

		c.srcPath = absPath
	default:
		argumentError("unknown flag: %s", name)
	}
}

// NewCompilerFromArgs creates a new compiler instance based on the given
// command-line arguments if the arguments are valid.
func NewCompilerFromArgs() *Compiler {
	c := &Compiler{}

	ap := argParser{args: os.Args[1:]}
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		useArg(c, name, value)
	}

	if c.srcPath == "" {
		argumentError("no source file specified")
	}

	return c
}
