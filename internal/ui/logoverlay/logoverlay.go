// Package logoverlay shows recent debug log entries over the showcase.
package logoverlay

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/ui/overlay"
	"github.com/zjrosen/tint/internal/ui/styles"
)

const (
	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 120
	boxMinWidth       = 40
	// maxEntries bounds the retained history.
	maxEntries = 500
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	entries  []string
	listener *log.LogListener
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// StartListening subscribes to the logger. It returns nil when logging is
// off, and the overlay then stays empty.
func (m *Model) StartListening(ctx context.Context) tea.Cmd {
	m.listener = log.NewListener(ctx)
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// Listen waits for the next entry. It is nil when not listening.
func (m Model) Listen() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// Listening reports whether log entries are being collected.
func (m Model) Listening() bool {
	return m.listener != nil
}

// Update handles log events always and keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		m.entries = append(m.entries, strings.TrimSuffix(msg.Payload, "\n"))
		if over := len(m.entries) - maxEntries; over > 0 {
			m.entries = m.entries[over:]
		}
		if m.visible {
			m.refresh()
			m.viewport.GotoBottom()
		}
		return m, m.Listen()

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "c":
			m.entries = nil
			m.refresh()
		case "d":
			m.filter(log.LevelDebug)
		case "i":
			m.filter(log.LevelInfo)
		case "w":
			m.filter(log.LevelWarn)
		case "e":
			m.filter(log.LevelError)
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "esc", "ctrl+x":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}
	return m, nil
}

func (m *Model) filter(level log.Level) {
	m.minLevel = level
	m.refresh()
}

// Filtered returns the retained entries at or above the filter level.
func (m Model) Filtered() []string {
	var out []string
	for _, e := range m.entries {
		if levelOf(e) >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

// levelOf reads the level tag of an entry. Untagged entries always show.
func levelOf(entry string) log.Level {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l
		}
	}
	return log.LevelError
}

// View renders the box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	border := styles.Color(styles.TokenBorderDefault)
	divider := lipgloss.NewStyle().Foreground(border).Render(strings.Repeat("─", width))

	body := strings.Join([]string{
		styles.Title().PaddingLeft(1).Render("Logs"),
		divider,
		m.viewport.View(),
		divider,
		m.hints(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Render(body)
}

func (m Model) hints() string {
	muted := styles.Text(styles.TokenTextMuted)
	active := styles.Text(styles.TokenTextPrimary).Bold(true)
	hints := []string{muted.Render("[c] Clear")}
	for _, f := range []struct {
		key   string
		level log.Level
	}{{"d", log.LevelDebug}, {"i", log.LevelInfo}, {"w", log.LevelWarn}, {"e", log.LevelError}} {
		label := "[" + f.key + "] " + f.level.String()
		if f.level == m.minLevel {
			hints = append(hints, active.Render(label))
		} else {
			hints = append(hints, muted.Render(label))
		}
	}
	return strings.Join(hints, "  ")
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentWidth := m.boxWidth() - 2
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(contentWidth, height)

	filtered := m.Filtered()
	if len(filtered) == 0 {
		m.viewport.SetContent(styles.Text(styles.TokenTextMuted).Italic(true).Render("No logs to display"))
		return
	}
	lines := make([]string, 0, len(filtered))
	for _, e := range filtered {
		lines = append(lines, colorize(e, contentWidth))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width-3, "...")
	}
	token := styles.TokenTextPrimary
	switch levelOf(entry) {
	case log.LevelError:
		token = styles.TokenStatusError
	case log.LevelWarn:
		token = styles.TokenAccent
	case log.LevelDebug:
		token = styles.TokenTextMuted
	}
	return styles.Text(token).Render(entry)
}

// Overlay draws the box centred over bg when visible.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// SetSize records the screen size.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.refresh()
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}
