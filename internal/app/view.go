package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tint/internal/anim"
	"github.com/zjrosen/tint/internal/flags"
	"github.com/zjrosen/tint/internal/observer"
	"github.com/zjrosen/tint/internal/responsive"
	"github.com/zjrosen/tint/internal/ui/styles"
)

const (
	headerHeight = 1
	// heroHeight leaves room for the card plus its motion offsets.
	heroHeight = 8
	heroWidth  = 48
	// revealGap pushes the reveal card below the first screen.
	revealGap = 12
)

var buttonLabels = map[styles.ButtonVariant]string{
	styles.ButtonPrimary:     "Primary",
	styles.ButtonSecondary:   "Secondary",
	styles.ButtonOutline:     "Outline",
	styles.ButtonGhost:       "Ghost",
	styles.ButtonDestructive: "Destructive",
}

// buttonMaxWidth caps each button on narrow viewports so labels truncate
// instead of wrapping.
var buttonMaxWidth = map[observer.Breakpoint]int{
	observer.XS: 10,
	observer.SM: 14,
	observer.MD: 0,
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.frame()
	page := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderHero(snap),
		m.viewport.View(),
		m.renderFooter(),
	)
	page = m.toaster.Overlay(page, m.width, m.height)
	page = m.logs.Overlay(page)
	return zone.Scan(page)
}

// frame returns the animated values to draw, or resting values when motion
// is reduced.
func (m Model) frame() snapshot {
	if m.reduced {
		return snapshot{
			hero:   anim.Values{anim.Opacity: 1, anim.Scale: 1},
			reveal: anim.Values{anim.Opacity: 1},
		}
	}
	return m.motion.snapshot()
}

func (m Model) renderHeader() string {
	text := m.typewriter.Text()
	if !m.typewriter.Done() {
		text += "▌"
	}
	return styles.Title().Padding(0, 1).MaxWidth(m.width).Render(text)
}

func (m Model) renderHero(snap snapshot) string {
	state := m.svc.Engine.State()
	cw := m.cellWidth()

	width := min(heroWidth, m.width-4)
	width = max(int(math.Round(float64(width)*valueOf(snap.hero, anim.Scale))), 12)

	name := "no sequence"
	if seq := m.currentSequence(); seq != nil {
		name = seq.Name
	}
	status, step := m.motion.sequencer.Status()
	busy := ""
	if status == anim.Running {
		busy = " " + spinnerGlyph(valueOf(snap.spinner, anim.Rotate))
	}
	body := fmt.Sprintf("mode %s · %s appearance\nsequence %s: %s (step %d)%s",
		state.Mode, state.Appearance(), name, status, step, busy)

	card := styles.RenderCard("hero", body, styles.CardElevated, width)
	card = zone.Mark(heroZone, card)
	card = fade(card, valueOf(snap.hero, anim.Opacity))

	// Tilt leans the card sideways; the sequence moves it along x and y.
	dx := 2 + cols(valueOf(snap.hero, anim.X), cw) + cols(valueOf(snap.tilt, anim.RotateY), cw/2)
	dy := 1 + rows(valueOf(snap.hero, anim.Y), cw) + rows(valueOf(snap.tilt, anim.RotateX), cw/2)
	card = shift(card, dx, dy)

	return lipgloss.NewStyle().
		Height(heroHeight).
		MaxHeight(heroHeight).
		MaxWidth(m.width).
		Render(card)
}

// renderGallery builds the scrollable content and reports where the reveal
// card starts and how tall it is.
func (m Model) renderGallery(snap snapshot) (content string, revealTop, revealHeight int) {
	width := m.contentWidth()

	sections := []string{
		m.renderBackdrop(snap),
		m.renderButtons(snap),
		m.renderCards(snap, width),
		m.renderResponsive(),
		m.renderMotionInfo(),
		strings.Repeat("\n", revealGap-1),
	}
	before := strings.Join(sections, "\n")

	reveal := styles.RenderCard("scroll reveal",
		"This card animates in the first time it scrolls into view.",
		styles.CardDefault, width)
	reveal = fade(reveal, valueOf(snap.reveal, anim.Opacity))
	reveal = shift(reveal, cols(valueOf(snap.reveal, anim.X), m.cellWidth()), rows(valueOf(snap.reveal, anim.Y), m.cellWidth()))

	return before + "\n" + reveal, lipgloss.Height(before), lipgloss.Height(reveal)
}

// renderBackdrop draws a strip that trails the scroll offset. While a
// sequence plays the wave stretches it and thickens its shade.
func (m Model) renderBackdrop(snap snapshot) string {
	offset := max(int(math.Round(valueOf(snap.backdrop, anim.Y))), 0)
	full := max(m.width-2, 1)
	width := min(max(int(math.Round(float64(full)/1.2*valueOf(snap.wave, anim.ScaleX))), 1), full)
	shade := "░"
	if valueOf(snap.wave, anim.ScaleY) < 0.9 {
		shade = "▒"
	}
	strip := styles.Text(styles.TokenTextMuted).Render(strings.Repeat(shade, width))
	return strings.Repeat("\n", offset) + strip
}

func (m Model) renderButtons(snap snapshot) string {
	limit := responsive.Lookup(buttonMaxWidth, m.bp, 0)
	variants := styles.ButtonVariants()
	buttons := make([]string, 0, len(variants))
	for i, v := range variants {
		hover := snap.hover[buttonZone(i)]
		scale := valueOf(hover, anim.Scale)
		b := styles.RenderButton(buttonLabels[v], v, i == m.focus || scale > hoverScale, limit)
		if scale < tapScale {
			b = lipgloss.NewStyle().Faint(true).Render(b)
		}
		b = zone.Mark(buttonZone(i), b)
		if i < len(snap.buttons) {
			b = fade(b, valueOf(snap.buttons[i], anim.Opacity))
			b = shift(b, 0, rows(valueOf(snap.buttons[i], anim.Y), m.cellWidth()))
		}
		buttons = append(buttons, b)
	}

	var row string
	if responsive.Responsive(m.bp, observer.MD, responsive.Up) {
		spaced := make([]string, 0, 2*len(buttons))
		for _, b := range buttons {
			spaced = append(spaced, b, " ")
		}
		row = lipgloss.JoinHorizontal(lipgloss.Center, spaced...)
	} else {
		row = lipgloss.JoinVertical(lipgloss.Left, buttons...)
	}
	return section("Buttons", row)
}

func (m Model) renderCards(snap snapshot, width int) string {
	sideBySide := responsive.Show(m.bp, responsive.Above(observer.LG))
	cardWidth := width
	if sideBySide {
		cardWidth = (width - 1) / 2
	}

	plain := hoverCard(snap.hover[cardZoneDefault], cardZoneDefault, "default",
		"Borders and text follow the resolved appearance.", styles.CardDefault, cardWidth)
	raised := hoverCard(snap.hover[cardZoneElevated], cardZoneElevated, "elevated",
		"Elevated cards sit on the raised surface colour.", styles.CardElevated, cardWidth)

	if sideBySide {
		return section("Cards", lipgloss.JoinHorizontal(lipgloss.Top, plain, " ", raised))
	}
	return section("Cards", lipgloss.JoinVertical(lipgloss.Left, plain, raised))
}

// Hover thresholds. A lifted card is drawn elevated and a tapped one
// faint, since a few pixels of motion is less than a cell.
const (
	hoverScale = 1.01
	tapScale   = 0.99
	liftY      = -2.5
)

func hoverCard(v anim.Values, id, title, body string, variant styles.CardVariant, width int) string {
	if valueOf(v, anim.Y) <= liftY {
		variant = styles.CardElevated
	}
	card := styles.RenderCard(title, body, variant, width)
	if valueOf(v, anim.Scale) < tapScale {
		card = lipgloss.NewStyle().Faint(true).Render(card)
	}
	return zone.Mark(id, card)
}

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// spinnerGlyph picks the quarter turn rotate degrees falls in.
func spinnerGlyph(rotate float64) string {
	i := int(math.Floor(rotate/90)) % len(spinnerFrames)
	if i < 0 {
		i += len(spinnerFrames)
	}
	return spinnerFrames[i]
}

func (m Model) renderResponsive() string {
	px := m.breakpoint.Width()
	device := "mobile"
	switch {
	case responsive.IsDesktop(px):
		device = "desktop"
	case responsive.IsTablet(px):
		device = "tablet"
	}

	muted := styles.Text(styles.TokenTextSecondary)
	lines := []string{
		fmt.Sprintf("breakpoint %s at %dpx (%s)", m.bp, px, device),
	}
	if responsive.Show(m.bp, responsive.Above(observer.MD)) {
		lines = append(lines, muted.Render("shown from md up"))
	}
	if !responsive.Hide(m.bp, responsive.Below(observer.SM)) {
		lines = append(lines, muted.Render("hidden below sm"))
	}
	return section("Responsive", strings.Join(lines, "\n"))
}

func (m Model) renderMotionInfo() string {
	muted := styles.Text(styles.TokenTextSecondary)
	var lines []string
	for _, name := range flags.Names() {
		state := "off"
		if m.svc.Flags.Enabled(name) {
			state = "on"
		}
		lines = append(lines, muted.Render(fmt.Sprintf("%-14s %s", name, state)))
	}
	if m.reduced {
		lines = append(lines, styles.Text(styles.TokenAccent).Render("reduced motion"))
	}
	for i, seq := range m.svc.Sequences {
		marker := "  "
		if i == m.sequence {
			marker = "▸ "
		}
		lines = append(lines, marker+seq.Name+muted.Render(" "+seq.Description))
	}
	return section("Motion", strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	state := m.svc.Engine.State()
	status := styles.StatusBar().Render(fmt.Sprintf("%s · %s · %s", state.Mode, state.Appearance(), m.bp))
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
}

func (m Model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

// contentWidth is the width of scrollable content, capped by breakpoint.
func (m Model) contentWidth() int {
	cw := m.cellWidth()
	px := responsive.ContainerWidth(m.bp, m.width*cw)
	return max(px/cw-2, 20)
}

func (m Model) cellWidth() int {
	if cw := m.svc.Config.Viewport.CellWidth; cw > 0 {
		return cw
	}
	return 8
}

func section(title, body string) string {
	return styles.Title().Render(title) + "\n" + body + "\n"
}

// valueOf reads prop from v, falling back to its resting value.
func valueOf(v anim.Values, prop string) float64 {
	if x, ok := v[prop]; ok {
		return x
	}
	switch prop {
	case anim.Opacity, anim.Scale, anim.ScaleX, anim.ScaleY:
		return 1
	}
	return 0
}

// fade dims block as opacity drops and blanks it when nearly transparent.
func fade(block string, opacity float64) string {
	switch {
	case opacity <= 0.05:
		w, h := lipgloss.Size(block)
		return lipgloss.NewStyle().Width(w).Height(h).Render("")
	case opacity < 0.6:
		return lipgloss.NewStyle().Faint(true).Render(block)
	}
	return block
}

// shift offsets block by dx columns and dy rows. Negative offsets clamp to
// zero.
func shift(block string, dx, dy int) string {
	return lipgloss.NewStyle().MarginLeft(max(dx, 0)).MarginTop(max(dy, 0)).Render(block)
}

// cols converts px to terminal columns.
func cols(px float64, cellWidth int) int {
	return int(math.Round(px / float64(max(cellWidth, 1))))
}

// rows converts px to terminal rows. A cell is about twice as tall as it
// is wide.
func rows(px float64, cellWidth int) int {
	return int(math.Round(px / float64(2*max(cellWidth, 1))))
}
