// Package overlay composes a foreground block over a rendered background
// without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where the foreground is anchored.
type Position int

const (
	Center Position = iota
	Top
	Bottom
	TopRight
	BottomRight
)

// Config controls placement.
type Config struct {
	// Width and Height describe the whole screen.
	Width  int
	Height int

	Position Position
	// PadX is the gap from the right edge for the right-anchored positions.
	PadX int
	// PadY is the gap from the top or bottom edge.
	PadY int
}

// Place renders fg on top of bg. Both may carry ANSI styling.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice writes fg into bg starting at column x.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	end := x + ansi.StringWidth(fg)
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, w, h int) (x, y int) {
	switch cfg.Position {
	case Top:
		x, y = (cfg.Width-w)/2, cfg.PadY
	case Bottom:
		x, y = (cfg.Width-w)/2, cfg.Height-h-cfg.PadY
	case TopRight:
		x, y = cfg.Width-w-cfg.PadX, cfg.PadY
	case BottomRight:
		x, y = cfg.Width-w-cfg.PadX, cfg.Height-h-cfg.PadY
	default:
		x, y = (cfg.Width-w)/2, (cfg.Height-h)/2
	}
	return max(x, 0), max(y, 0)
}
