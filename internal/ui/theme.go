package ui

import "strings"

// Theme bundles palette, symbols and box borders.
// All CLI renderers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Money string
	Bullet, BarFull, BarEmpty                   string
	CornerTL, CornerTR, CornerBL, CornerBR      string
	H, V                                        string
	Icons                                       bool // show category glyphs
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Money: fgYellow,
		Bullet: "•", BarFull: "█", BarEmpty: "░",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		Icons: true,
	}
}

// SetTheme switches to classic, neon or mono. Unknown names fall back to
// classic.
func SetTheme(name string) {
	disableColor = false
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Money: fgCyan,
			Bullet: "◆", BarFull: "▰", BarEmpty: "▱",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			Icons: true,
		}
	case "mono":
		disableColor = true
		current = Theme{
			Bullet: "-", BarFull: "#", BarEmpty: ".",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default:
		current = classic()
	}
}

// Current exposes the active theme to renderers.
func Current() Theme { return current }
