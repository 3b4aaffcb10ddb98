package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/tint/internal/anim"
	"github.com/zjrosen/tint/internal/config"
	"github.com/zjrosen/tint/internal/flags"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/observer"
	"github.com/zjrosen/tint/internal/pubsub"
)

// element names an animated part of the showcase. Frame notifications
// carry it so the model knows something moved.
type element string

const (
	elemHero     element = "hero"
	elemTilt     element = "tilt"
	elemBackdrop element = "backdrop"
	elemReveal   element = "reveal"
	elemButtons  element = "buttons"
	elemHover    element = "hover"
	elemSpinner  element = "spinner"
	elemWave     element = "wave"
)

// Zones the pointer can hover.
const (
	cardZoneDefault  = "tint-card-default"
	cardZoneElevated = "tint-card-elevated"
)

func buttonZone(i int) string {
	return fmt.Sprintf("tint-button-%d", i)
}

// revealVariant is the preset the scroll reveal card plays.
const revealVariant = "slideUp"

// buttonStagger separates the start of each button's entrance.
const buttonStagger = 60 * time.Millisecond

// wavePeriod is one squash of the backdrop while a sequence plays.
const wavePeriod = 1200 * time.Millisecond

// hoverable is an element with hover and tap states.
type hoverable struct {
	controls *anim.SpringControls
	variants anim.Variants
	rest     anim.Values
}

// target merges state over the resting values so leaving one state
// undoes every property another state touched.
func (h hoverable) target(state string) anim.Target {
	values := h.rest.Clone()
	for k, v := range h.variants[state] {
		values[k] = v
	}
	return anim.To(values)
}

// motion owns the animated elements and the observers driving them.
type motion struct {
	frames *pubsub.Broker[element]

	hero     *anim.SpringControls
	tilt     *anim.SpringControls
	backdrop *anim.SpringControls
	reveal   *anim.SpringControls
	// buttons has one control per button variant.
	buttons []*anim.SpringControls
	// hover holds the hover controls of each zone, listed in hoverOrder.
	hover      map[string]hoverable
	hoverOrder []string
	hovered    string

	spinner    *anim.SpringControls
	wave       *anim.SpringControls
	busyCancel context.CancelFunc

	sequencer *anim.Sequencer

	pointerFollow *anim.PointerFollow
	parallax      *anim.Parallax
	scrollReveal  *anim.ScrollReveal
}

// motionSources are the observer inputs the model feeds.
type motionSources struct {
	pointer    observer.Source[observer.PointerEvent]
	bounds     func() observer.Rect
	scroll     observer.Source[int]
	visibility observer.Source[float64]
}

func newMotion(ctx context.Context, cfg config.Config, reg *flags.Registry, tracer trace.Tracer, src motionSources, buttons int) (*motion, error) {
	m := &motion{frames: pubsub.NewBroker[element]()}

	m.hero = m.controls(elemHero, cfg.Animation.FPS, anim.Values{anim.Opacity: 1, anim.Scale: 1})
	m.tilt = m.controls(elemTilt, cfg.Animation.FPS, nil)
	m.backdrop = m.controls(elemBackdrop, cfg.Animation.FPS, nil)
	m.reveal = m.controls(elemReveal, cfg.Animation.FPS, anim.Values{anim.Opacity: 1})
	for range buttons {
		m.buttons = append(m.buttons, m.controls(elemButtons, cfg.Animation.FPS, anim.Values{anim.Opacity: 1}))
	}
	m.spinner = m.controls(elemSpinner, cfg.Animation.FPS, anim.Values{anim.Rotate: 0})
	m.wave = m.controls(elemWave, cfg.Animation.FPS, anim.Values{anim.ScaleX: 1, anim.ScaleY: 1})

	m.hover = make(map[string]hoverable)
	buttonHover, _ := anim.Variant("buttonHover")
	for i := range buttons {
		m.addHover(buttonZone(i), cfg.Animation.FPS, buttonHover, anim.Values{anim.Scale: 1})
	}
	cardHover, _ := anim.Variant("cardHover")
	for _, id := range []string{cardZoneDefault, cardZoneElevated} {
		m.addHover(id, cfg.Animation.FPS, cardHover, anim.Values{anim.Y: 0, anim.Scale: 1})
	}

	var opts []anim.SequencerOption
	if tracer != nil {
		opts = append(opts, anim.WithTracer(tracer))
	}
	m.sequencer = anim.NewSequencer(m.hero, opts...)

	if reg.Enabled(flags.FlagPointerTilt) {
		pointer := observer.NewPointer(src.pointer, src.bounds, cfg.Observers.PointerMagnitude)
		m.pointerFollow = anim.NewPointerFollow(ctx, pointer, m.tilt, anim.Transitions["spring"])
	}

	if reg.Enabled(flags.FlagParallax) {
		scroll := observer.NewScroll(src.scroll, 0, cfg.Observers.ParallaxSpeed)
		m.parallax = anim.NewParallax(ctx, scroll, m.backdrop)
	}

	if reg.Enabled(flags.FlagScrollReveal) {
		mode := observer.Once
		if cfg.Observers.VisibilityMode == "repeat" {
			mode = observer.Repeat
		}
		visibility, err := observer.NewVisibility(src.visibility, observer.VisibilityOptions{
			Threshold: cfg.Observers.VisibilityThreshold,
			Mode:      mode,
		})
		if err != nil {
			m.close()
			return nil, fmt.Errorf("scroll reveal: %w", err)
		}
		variants, _ := anim.Variant(revealVariant)
		m.scrollReveal = anim.NewScrollReveal(ctx, visibility, m.reveal, variants, anim.Transitions["smooth"])
	}

	log.Debug(log.CatUI, "motion wired",
		"pointer_tilt", m.pointerFollow != nil,
		"parallax", m.parallax != nil,
		"scroll_reveal", m.scrollReveal != nil)
	return m, nil
}

// controls creates spring controls that announce every frame of el.
func (m *motion) controls(el element, fps int, initial anim.Values) *anim.SpringControls {
	return anim.NewSpringControls(initial,
		anim.WithFPS(fps),
		anim.WithFrameFunc(func(anim.Frame) {
			m.frames.Publish(pubsub.FrameEvent, el)
		}),
	)
}

func (m *motion) addHover(id string, fps int, variants anim.Variants, rest anim.Values) {
	m.hover[id] = hoverable{
		controls: m.controls(elemHover, fps, rest),
		variants: variants,
		rest:     rest,
	}
	m.hoverOrder = append(m.hoverOrder, id)
}

// pointerAt moves the hover to zone id, or off every zone when id is
// empty. The zone left behind springs back to rest.
func (m *motion) pointerAt(ctx context.Context, id string) {
	if id == m.hovered {
		return
	}
	if prev, ok := m.hover[m.hovered]; ok {
		start(ctx, prev.controls, anim.To(prev.rest.Clone()))
	}
	m.hovered = id
	if next, ok := m.hover[id]; ok {
		start(ctx, next.controls, next.target(anim.Hover))
	}
}

// press plays the tap state of zone id and returns to hover.
func (m *motion) press(ctx context.Context, id string) {
	h, ok := m.hover[id]
	if !ok {
		return
	}
	tap, hover := h.target(anim.Tap), h.target(anim.Hover)
	go func() {
		if err := h.controls.Start(ctx, tap); err == nil {
			_ = h.controls.Start(ctx, hover)
		}
	}()
}

// startBusy loops the spinner and backdrop wave until stopBusy.
func (m *motion) startBusy(ctx context.Context) {
	m.stopBusy()
	ctx, cancel := context.WithCancel(ctx)
	m.busyCancel = cancel
	spinner, _ := anim.Loop("spinner")
	start(ctx, m.spinner, spinner)
	start(ctx, m.wave, anim.Wave(wavePeriod))
}

func (m *motion) stopBusy() {
	if m.busyCancel == nil {
		return
	}
	m.busyCancel()
	m.busyCancel = nil
	m.spinner.Set(anim.Values{anim.Rotate: 0})
	m.wave.Set(anim.Values{anim.ScaleX: 1, anim.ScaleY: 1})
}

func start(ctx context.Context, c *anim.SpringControls, t anim.Target) {
	go func() {
		_ = c.Start(ctx, t)
	}()
}

// enterButtons replays the staggered entrance of the button row. Each
// button restarts from hidden and settles in turn.
func (m *motion) enterButtons(ctx context.Context) {
	variants, _ := anim.Variant("staggerItem")
	base, _ := variants.Target(anim.Animate, anim.Transitions["smooth"])
	for i, target := range anim.Staggered(base, len(m.buttons), buttonStagger) {
		c := m.buttons[i]
		c.Set(variants[anim.Initial])
		start(ctx, c, target)
	}
}

// snapshot is the current value of every element, read once per render.
type snapshot struct {
	hero, tilt, backdrop, reveal anim.Values
	spinner, wave                anim.Values
	buttons                      []anim.Values
	// hover is keyed by zone id.
	hover map[string]anim.Values
}

func (m *motion) snapshot() snapshot {
	buttons := make([]anim.Values, len(m.buttons))
	for i, c := range m.buttons {
		buttons[i] = c.Values()
	}
	hover := make(map[string]anim.Values, len(m.hover))
	for id, h := range m.hover {
		hover[id] = h.controls.Values()
	}
	return snapshot{
		hero:     m.hero.Values(),
		tilt:     m.tilt.Values(),
		backdrop: m.backdrop.Values(),
		reveal:   m.reveal.Values(),
		spinner:  m.spinner.Values(),
		wave:     m.wave.Values(),
		buttons:  buttons,
		hover:    hover,
	}
}

func (m *motion) close() {
	m.sequencer.Cancel()
	if m.busyCancel != nil {
		m.busyCancel()
	}
	if m.pointerFollow != nil {
		m.pointerFollow.Detach()
	}
	if m.parallax != nil {
		m.parallax.Detach()
	}
	if m.scrollReveal != nil {
		m.scrollReveal.Detach()
	}
	for _, c := range append([]*anim.SpringControls{m.hero, m.tilt, m.backdrop, m.reveal, m.spinner, m.wave}, m.buttons...) {
		c.Close()
	}
	for _, h := range m.hover {
		h.controls.Close()
	}
	m.frames.Close()
}
