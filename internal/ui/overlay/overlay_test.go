package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(w, h int) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat("A", w)
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Positions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		row      int
		expected string
	}{
		{"center", Config{Width: 5, Height: 3, Position: Center}, 1, "AXXAA"},
		{"top", Config{Width: 5, Height: 3, Position: Top}, 0, "AXXAA"},
		{"top padded", Config{Width: 5, Height: 3, Position: Top, PadY: 1}, 1, "AXXAA"},
		{"bottom", Config{Width: 5, Height: 3, Position: Bottom}, 2, "AXXAA"},
		{"top right", Config{Width: 5, Height: 3, Position: TopRight}, 0, "AAAXX"},
		{"bottom right padded", Config{Width: 5, Height: 3, Position: BottomRight, PadX: 1, PadY: 1}, 1, "AAXXA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(Place(tt.cfg, "XX", grid(5, 3)), "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, tt.expected, lines[tt.row])
		})
	}
}

func TestPlace_OversizedForegroundClampsToOrigin(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 3, Height: 3}, "XXXXX", grid(3, 3)), "\n")
	assert.Equal(t, "XXXXX", lines[1])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 4, Height: 3, Position: Bottom}, "XX", "AAAA")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " XX ", lines[2])
}

func TestPlace_KeepsStyledBackground(t *testing.T) {
	bg := lipgloss.NewStyle().Bold(true).Render("AAAAAA")
	out := Place(Config{Width: 6, Height: 1, Position: Center}, "XX", bg)
	assert.Equal(t, 6, lipgloss.Width(out))
	assert.Contains(t, out, "XX")
}
