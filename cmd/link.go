package cmd

import (
	"bytes"
	"io/ioutil"
	"os"
	"os/exec"
	"strings"

	"github.com/llir/llvm/ir"

	"mliac/report"
)

// emitExecutable serializes the module to textual IR, assembles it into a
// temporary object file with clang, and links the executable with the
// configured linker.  The object file is removed on every exit path.
func (c *Compiler) emitExecutable(mod *ir.Module) error {
	objFile, err := ioutil.TempFile("", "mliac-*.o")
	if err != nil {
		return report.Raise(report.ErrBackend, nil, "failed to create object file: %s", err)
	}

	objPath := objFile.Name()
	objFile.Close()
	defer os.Remove(objPath)

	// Assemble the textual IR into an object file.
	var clangStderr bytes.Buffer
	clangCmd := exec.Command("clang", "-x", "ir", "-", "-c", "-o", objPath)
	clangCmd.Stdin = strings.NewReader(mod.String())
	clangCmd.Stderr = &clangStderr

	if err := clangCmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return report.Raise(report.ErrBackend, nil, "object emission failed:\n%s", clangStderr.String())
		}

		return report.Raise(report.ErrBackend, nil, "failed to run clang: %s", err)
	}

	// Link the object file into the executable.
	var linkStderr bytes.Buffer
	linkCmd := exec.Command(c.profile.Linker, objPath, "-o", c.outputPath)
	linkCmd.Stderr = &linkStderr

	if err := linkCmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return report.Raise(report.ErrBackend, nil, "link error:\n%s", linkStderr.String())
		}

		return report.Raise(report.ErrBackend, nil, "failed to run linker `%s`: %s", c.profile.Linker, err)
	}

	return nil
}
