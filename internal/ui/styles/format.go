package styles

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Truncate shortens s to maxWidth cells, ending in an ellipsis when cut.
// Escape sequences are preserved.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// Wrap word-wraps s to width cells, breaking words longer than a line.
func Wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}

// RenderButton renders label as a button. The label is truncated so the
// whole button fits in maxWidth; zero means no limit.
func RenderButton(label string, variant ButtonVariant, focused bool, maxWidth int) string {
	st := Button(variant, focused)
	if maxWidth > 0 {
		label = Truncate(label, max(maxWidth-st.GetHorizontalFrameSize(), 1))
	}
	return st.Render(label)
}

// RenderCard renders body wrapped inside a titled card width cells wide.
func RenderCard(title, body string, variant CardVariant, width int) string {
	st := Card(variant)
	border := st.GetBorderStyle()
	pad := st.GetHorizontalPadding()
	inner := max(width-2-pad, 1)

	wrapped := Wrap(body, inner)
	if pad > 0 {
		lines := strings.Split(wrapped, "\n")
		indent := strings.Repeat(" ", st.GetPaddingLeft())
		for i, l := range lines {
			lines[i] = indent + l
		}
		wrapped = strings.Join(lines, "\n")
	}
	height := strings.Count(wrapped, "\n") + 3

	return RenderWithTitleBorder(wrapped, title, width, height, border, st.GetBorderTopForeground(), Color(TokenAccent))
}
