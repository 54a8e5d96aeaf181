package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	successText = color.New(color.FgGreen)
	warnText    = color.New(color.FgYellow)
)

// colorizeOutput reports whether out is an interactive terminal.
func colorizeOutput(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func printSuccess(out io.Writer, format string, args ...any) {
	if colorizeOutput(out) {
		successText.Fprintf(out, format+"\n", args...)
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}

func printWarn(out io.Writer, format string, args ...any) {
	if colorizeOutput(out) {
		warnText.Fprintf(out, format+"\n", args...)
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}
