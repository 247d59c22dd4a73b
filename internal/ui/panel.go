package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// visibleWidth counts terminal cells, so emoji icons line up.
func visibleWidth(s string) int { return lipgloss.Width(stripANSI(s)) }

// ShareBar renders part/whole as a bar with a percentage.
func ShareBar(part, whole float64, width int) string {
	if width < 5 {
		width = 5
	}
	ratio := 0.0
	if whole > 0 {
		ratio = part / whole
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	bar := strings.Repeat(current.BarFull, filled) + strings.Repeat(current.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, int(ratio*100+0.5))
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if n := visibleWidth(ln); n > maxw {
			maxw = n
		}
	}
	pad := func(s string) string {
		if vis := visibleWidth(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}
