package ui

import (
	"fmt"
	"io"
	"os"
)

// Dim is the faint SGR sequence used for secondary text such as row numbers.
const Dim = "\033[2m"

var (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
	fgCyan   = "\033[36m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C wraps s in color when the terminal (or a forcing flag) allows it.
func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, C(current.Success, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Error, symCross+" "+msg)) }
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Muted, msg)) }
