package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestRebuild_TracksBackground(t *testing.T) {
	t.Cleanup(func() {
		lipgloss.SetHasDarkBackground(false)
		Rebuild()
	})

	lipgloss.SetHasDarkBackground(true)
	Rebuild()
	require.True(t, Dark())

	lipgloss.SetHasDarkBackground(false)
	Rebuild()
	require.False(t, Dark())
}

func TestRebuild_RunsRebuilders(t *testing.T) {
	calls := 0
	RegisterStyleRebuilder(func() { calls++ })
	Rebuild()
	require.Equal(t, 1, calls)
}

func TestButton_Variants(t *testing.T) {
	for _, v := range ButtonVariants() {
		plain := Button(v, false)
		focused := Button(v, true)
		require.False(t, plain.GetUnderline(), v)
		require.True(t, focused.GetUnderline(), v)
	}
	require.Equal(t, Button(ButtonPrimary, false).GetBackground(), Button("unknown", false).GetBackground())
	require.Equal(t, lipgloss.RoundedBorder(), Button(ButtonOutline, false).GetBorderStyle())
}

func TestCard_Variants(t *testing.T) {
	require.Equal(t, lipgloss.RoundedBorder(), Card(CardDefault).GetBorderStyle())
	require.Equal(t, lipgloss.ThickBorder(), Card(CardElevated).GetBorderStyle())
	require.Equal(t, lipgloss.RoundedBorder(), Card("nope").GetBorderStyle())
}

func TestRenderButton_TruncatesLabel(t *testing.T) {
	out := RenderButton("Toggle appearance", ButtonPrimary, false, 10)
	require.LessOrEqual(t, lipgloss.Width(out), 10)
	require.Contains(t, out, "…")

	full := RenderButton("Play", ButtonGhost, true, 0)
	require.Contains(t, full, "Play")
}

func TestRenderCard_WrapsBody(t *testing.T) {
	out := RenderCard("Status", "the quick brown fox jumps over the lazy dog", CardDefault, 20)
	lines := strings.Split(out, "\n")

	require.Contains(t, lines[0], "Status")
	require.True(t, strings.HasPrefix(lines[0], "╭"))
	require.True(t, strings.HasPrefix(lines[len(lines)-1], "╰"))
	for _, l := range lines {
		require.Equal(t, 20, lipgloss.Width(l), "line %q", l)
	}
	require.Greater(t, len(lines), 3, "body must wrap")
}

func TestRenderWithTitleBorder_LongTitle(t *testing.T) {
	out := RenderWithTitleBorder("x", "a very long title indeed", 12, 3, lipgloss.RoundedBorder(),
		lipgloss.Color("#FFFFFF"), lipgloss.Color("#FFFFFF"))
	top := strings.Split(out, "\n")[0]
	require.Equal(t, 12, lipgloss.Width(top))
	require.Contains(t, top, "…")
}

func TestWrap(t *testing.T) {
	require.Equal(t, "hello\nworld", Wrap("hello world", 6))
	require.Equal(t, "abcd\nefgh", Wrap("abcdefgh", 4))
	require.Equal(t, "as is", Wrap("as is", 0))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "", Truncate("abc", 0))
	require.Equal(t, "abc", Truncate("abc", 5))
	require.Equal(t, "ab…", Truncate("abcdef", 3))
}
