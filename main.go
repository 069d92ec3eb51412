package main

import (
	"os"

	"mliac/cmd"
)

func main() {
	os.Exit(cmd.RunCompiler())
}
