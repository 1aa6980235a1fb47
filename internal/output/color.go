package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and
// TTY detection.
func shouldColorize(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// StatusLine renders a run summary, green for applied patterns, yellow for
// degenerate success-false outcomes, red for failures.
func StatusLine(success bool, applied int, reason string, colorize bool) string {
	var line, color string
	switch {
	case success:
		line = fmt.Sprintf("deduplicated: %d pattern(s) applied", applied)
		color = colorGreen
	case reason == "":
		line = "no change"
		color = colorYellow
	default:
		line = reason
		color = colorYellow
		if reason == "Parsing failed" {
			color = colorRed
		}
	}

	if !colorize {
		return line
	}
	return color + line + colorReset
}

// WriteStatus writes a run summary line with color per the given mode.
func (wr *Writer) WriteStatus(success bool, applied int, reason string, mode ColorMode) error {
	line := StatusLine(success, applied, reason, shouldColorize(mode, wr.w))
	_, err := fmt.Fprintln(wr.w, line)
	return err
}
