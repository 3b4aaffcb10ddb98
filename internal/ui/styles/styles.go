// Package styles contains Lip Gloss style definitions.
//
// Colors are light/dark pairs resolved against the terminal background at
// render time. Styles capture their colors when built, so Rebuild must run
// after the background or the palette changes.
package styles

import (
	"maps"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ButtonVariant selects a button's look.
type ButtonVariant string

const (
	ButtonPrimary     ButtonVariant = "primary"
	ButtonSecondary   ButtonVariant = "secondary"
	ButtonOutline     ButtonVariant = "outline"
	ButtonGhost       ButtonVariant = "ghost"
	ButtonDestructive ButtonVariant = "destructive"
)

// ButtonVariants lists every variant in display order.
func ButtonVariants() []ButtonVariant {
	return []ButtonVariant{ButtonPrimary, ButtonSecondary, ButtonOutline, ButtonGhost, ButtonDestructive}
}

// CardVariant selects a card's look.
type CardVariant string

const (
	CardDefault  CardVariant = "default"
	CardElevated CardVariant = "elevated"
)

type buttonKey struct {
	variant ButtonVariant
	focused bool
}

// sheet is one consistent build of every style.
type sheet struct {
	dark    bool
	palette map[ColorToken]lipgloss.AdaptiveColor
	buttons map[buttonKey]lipgloss.Style
	cards   map[CardVariant]lipgloss.Style
	text    map[ColorToken]lipgloss.Style
	title   lipgloss.Style
	status  lipgloss.Style
}

var (
	mu      sync.RWMutex
	palette = paletteOf(DefaultPreset.Light, DefaultPreset.Dark)
	current = build(palette, false)

	// styleRebuilders holds callbacks run after every Rebuild.
	styleRebuilders []func()
)

func paletteOf(light, dark map[ColorToken]string) map[ColorToken]lipgloss.AdaptiveColor {
	p := make(map[ColorToken]lipgloss.AdaptiveColor, len(dark))
	for _, token := range AllTokens() {
		p[token] = lipgloss.AdaptiveColor{Light: light[token], Dark: dark[token]}
	}
	return p
}

func build(p map[ColorToken]lipgloss.AdaptiveColor, dark bool) *sheet {
	s := &sheet{
		dark:    dark,
		palette: maps.Clone(p),
		buttons: make(map[buttonKey]lipgloss.Style),
		cards:   make(map[CardVariant]lipgloss.Style),
		text:    make(map[ColorToken]lipgloss.Style),
	}

	base := lipgloss.NewStyle().Padding(0, 2).Bold(true)
	focus := func(st lipgloss.Style) lipgloss.Style {
		return st.Underline(true).UnderlineSpaces(true)
	}

	s.buttons[buttonKey{ButtonPrimary, false}] = base.
		Foreground(p[TokenButtonText]).
		Background(p[TokenButtonPrimaryBg])
	s.buttons[buttonKey{ButtonPrimary, true}] = focus(base.
		Foreground(p[TokenButtonText]).
		Background(p[TokenButtonPrimaryFocusBg]))

	s.buttons[buttonKey{ButtonSecondary, false}] = base.
		Foreground(p[TokenTextPrimary]).
		Background(p[TokenButtonSecondaryBg])
	s.buttons[buttonKey{ButtonSecondary, true}] = focus(base.
		Foreground(p[TokenTextPrimary]).
		Background(p[TokenButtonSecondaryFocusBg]))

	outline := lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Foreground(p[TokenAccent]).
		Border(lipgloss.RoundedBorder())
	s.buttons[buttonKey{ButtonOutline, false}] = outline.BorderForeground(p[TokenAccent])
	s.buttons[buttonKey{ButtonOutline, true}] = focus(outline.BorderForeground(p[TokenBorderFocus]))

	s.buttons[buttonKey{ButtonGhost, false}] = base.Foreground(p[TokenTextSecondary])
	s.buttons[buttonKey{ButtonGhost, true}] = focus(base.
		Foreground(p[TokenTextPrimary]).
		Background(p[TokenButtonGhostFocusBg]))

	s.buttons[buttonKey{ButtonDestructive, false}] = base.
		Foreground(p[TokenButtonText]).
		Background(p[TokenButtonDestructiveBg])
	s.buttons[buttonKey{ButtonDestructive, true}] = focus(base.
		Foreground(p[TokenButtonText]).
		Background(p[TokenButtonDestructiveFocusBg]))

	s.cards[CardDefault] = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p[TokenBorderDefault]).
		Foreground(p[TokenTextPrimary]).
		Padding(0, 1)
	s.cards[CardElevated] = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(p[TokenAccent]).
		Foreground(p[TokenTextPrimary]).
		Background(p[TokenSurfaceElevated]).
		Padding(0, 1)

	for token, c := range p {
		s.text[token] = lipgloss.NewStyle().Foreground(c)
	}
	s.title = lipgloss.NewStyle().Bold(true).Foreground(p[TokenAccent])
	s.status = lipgloss.NewStyle().Foreground(p[TokenTextSecondary]).Padding(0, 1)
	return s
}

// Rebuild recreates every style from the palette and the current terminal
// background, then runs registered rebuilders.
func Rebuild() {
	mu.Lock()
	current = build(palette, lipgloss.HasDarkBackground())
	fns := append([]func(){}, styleRebuilders...)
	mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// RegisterStyleRebuilder adds a callback run after every Rebuild.
func RegisterStyleRebuilder(fn func()) {
	mu.Lock()
	defer mu.Unlock()
	styleRebuilders = append(styleRebuilders, fn)
}

func sheetNow() *sheet {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Dark reports the background the styles were last built for.
func Dark() bool {
	return sheetNow().dark
}

// Color returns the light/dark pair for token.
func Color(token ColorToken) lipgloss.AdaptiveColor {
	return sheetNow().palette[token]
}

// Button returns the style for a button. Unknown variants render as
// primary.
func Button(variant ButtonVariant, focused bool) lipgloss.Style {
	s := sheetNow()
	if st, ok := s.buttons[buttonKey{variant, focused}]; ok {
		return st
	}
	return s.buttons[buttonKey{ButtonPrimary, focused}]
}

// Card returns the frame style for a card. Unknown variants render as
// default.
func Card(variant CardVariant) lipgloss.Style {
	s := sheetNow()
	if st, ok := s.cards[variant]; ok {
		return st
	}
	return s.cards[CardDefault]
}

// Text returns a style with token as its foreground.
func Text(token ColorToken) lipgloss.Style {
	return sheetNow().text[token]
}

// Title is the heading style.
func Title() lipgloss.Style {
	return sheetNow().title
}

// StatusBar is the footer style.
func StatusBar() lipgloss.Style {
	return sheetNow().status
}
