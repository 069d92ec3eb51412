package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// DisplayError displays a compile error produced while compiling the file at
// srcPath.  srcPath may be empty for errors that have no associated file.
func DisplayError(srcPath string, ce *CompileError) {
	displayBanner(ce.Kind, srcPath)
	fmt.Println(ce.Message)

	if ce.Span != nil && srcPath != "" {
		displayCodeSelection(srcPath, ce.Span)
	}
}

// displayBanner displays the banner on top of all compile error messages.
func displayBanner(kind ErrorKind, srcPath string) {
	fmt.Print("\n\n-- ")

	kindStr := kind.Label() + " Error"
	ErrorStyleBG.Print(kindStr)
	fmt.Print(" ")

	fileName := filepath.Base(srcPath)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - len(kindStr) - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayCodeSelection displays the erroneous source text (with line numbers)
// and underlines the span the error occurred over.
func displayCodeSelection(srcPath string, span *TextSpan) {
	fmt.Println()

	f, err := os.Open(srcPath)
	if err != nil {
		// The file was already read once to compile it so this should never
		// happen in practice.
		return
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line)

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and at
		// column zero on every continuation line.
		carretPrefixCount := 0
		if i == 0 {
			carretPrefixCount = span.StartCol
		}

		// Underlining runs to the end column on the last line and to the end
		// of the line on every other line.
		carretEnd := len(line)
		if i == len(lines)-1 {
			carretEnd = span.EndCol + 1
		}
		if carretEnd > len(line) {
			carretEnd = len(line)
		}

		carretCount := carretEnd - carretPrefixCount
		if carretCount < 1 {
			carretCount = 1
		}

		fmt.Print(strings.Repeat(" ", carretPrefixCount))
		ErrorColorFG.Println(strings.Repeat("^", carretCount))
	}

	fmt.Println()
}
