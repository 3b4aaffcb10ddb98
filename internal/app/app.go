// Package app contains the showcase's root Bubble Tea model. It feeds
// terminal events into the environment observers, renders the engine's
// resolved appearance and plays animation sequences.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/tint/internal/anim"
	"github.com/zjrosen/tint/internal/broadcast"
	"github.com/zjrosen/tint/internal/config"
	"github.com/zjrosen/tint/internal/engine"
	"github.com/zjrosen/tint/internal/flags"
	"github.com/zjrosen/tint/internal/keys"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/observer"
	"github.com/zjrosen/tint/internal/pubsub"
	"github.com/zjrosen/tint/internal/theme"
	"github.com/zjrosen/tint/internal/ui/logoverlay"
	"github.com/zjrosen/tint/internal/ui/styles"
	"github.com/zjrosen/tint/internal/ui/toaster"
)

// heroZone marks the card the pointer tilt follows.
const heroZone = "tint-hero"

// Headline is typed out above the hero card.
const Headline = "tint · reactive presentation state"

// Services are the long-lived collaborators the showcase renders.
type Services struct {
	Engine    *engine.Engine
	Config    config.Config
	Flags     *flags.Registry
	Sequences []*anim.Sequence
	// Tracer records sequence runs. Nil disables tracing.
	Tracer trace.Tracer
	// Preferences carries modes read back from disk after an external
	// edit. Nil when the preference is not watched.
	Preferences *pubsub.Broker[theme.Mode]
}

// Model is the root application state.
type Model struct {
	svc    Services
	ctx    context.Context
	cancel context.CancelFunc

	keys     keys.KeyMap
	help     help.Model
	viewport viewport.Model
	toaster  toaster.Model
	// logs collects debug log entries when logging is on.
	logs logoverlay.Model

	width  int
	height int

	// Observer inputs fed from Update.
	bridge     *observer.Bridge
	breakpoint *observer.BreakpointObserver
	scroll     *observer.Emitter[int]
	visibility *observer.Emitter[float64]
	bp         observer.Breakpoint

	motion     *motion
	typewriter *anim.Typewriter
	reduced    bool

	sequence int
	focus    int
	// revealTop and revealHeight locate the reveal card in the viewport
	// content, in rows.
	revealTop    int
	revealHeight int

	// Listeners bridging goroutine-side events into Update.
	appearance  *pubsub.ContinuousListener[theme.State]
	faults      *pubsub.ContinuousListener[broadcast.Fault]
	breakpoints *pubsub.ContinuousListener[observer.Breakpoint]
	frames      *pubsub.ContinuousListener[element]
	preferences *pubsub.ContinuousListener[theme.Mode]
	bpBroker    *pubsub.Broker[observer.Breakpoint]
	bpUnsub     func()
}

// typeTickMsg reveals the next grapheme of the headline.
type typeTickMsg struct{}

// sequenceDoneMsg reports the end of a sequence run.
type sequenceDoneMsg struct {
	name   string
	result anim.Result
}

// New creates the showcase model. The engine must already be started.
func New(svc Services) (Model, error) {
	if svc.Engine == nil {
		return Model{}, fmt.Errorf("engine is required")
	}
	if svc.Flags == nil {
		svc.Flags = flags.New(svc.Config.Flags)
	}
	ctx, cancel := context.WithCancel(context.Background())

	cfg := svc.Config
	bridge := observer.NewBridge(cfg.Viewport.CellWidth)
	scroll := observer.NewEmitter[int]()
	visibility := observer.NewEmitter[float64]()

	mot, err := newMotion(ctx, cfg, svc.Flags, svc.Tracer, motionSources{
		pointer:    bridge.Pointer(),
		bounds:     observer.ZoneBounds(globalZones{}, heroZone),
		scroll:     scroll,
		visibility: visibility,
	}, len(styles.ButtonVariants()))
	if err != nil {
		cancel()
		return Model{}, err
	}

	bpBroker := pubsub.NewBroker[observer.Breakpoint]()
	breakpoint := observer.NewBreakpoint(bridge.Widths(), 0,
		observer.WithDebounce(cfg.Observers.BreakpointDebounce))
	bpUnsub := breakpoint.Subscribe(func(bp observer.Breakpoint) {
		bpBroker.Publish(pubsub.BreakpointChangedEvent, bp)
	})

	m := Model{
		svc:         svc,
		ctx:         ctx,
		cancel:      cancel,
		keys:        keys.DefaultKeyMap(),
		help:        help.New(),
		viewport:    viewport.New(0, 0),
		toaster:     toaster.New(),
		bridge:      bridge,
		breakpoint:  breakpoint,
		scroll:      scroll,
		visibility:  visibility,
		bp:          breakpoint.Current(),
		motion:      mot,
		typewriter:  anim.NewTypewriter(Headline),
		sequence:    defaultSequenceIndex(svc.Sequences, cfg.Animation.DefaultSequence),
		appearance:  pubsub.NewContinuousListener(ctx, svc.Engine.Events()),
		faults:      pubsub.NewContinuousListener(ctx, svc.Engine.Faults()),
		breakpoints: pubsub.NewContinuousListener(ctx, bpBroker),
		frames:      pubsub.NewContinuousListener(ctx, mot.frames),
		bpBroker:    bpBroker,
		bpUnsub:     bpUnsub,
	}
	if svc.Preferences != nil {
		m.preferences = pubsub.NewContinuousListener(ctx, svc.Preferences)
	}
	m.logs = logoverlay.New()
	m.logs.StartListening(ctx)
	if !svc.Flags.Enabled(flags.FlagTypewriter) {
		for m.typewriter.Next() {
		}
	}
	return m, nil
}

func defaultSequenceIndex(seqs []*anim.Sequence, name string) int {
	for i, s := range seqs {
		if s.Name == name {
			return i
		}
	}
	return 0
}

// Close stops the listeners and animations. Call it after the program
// exits.
func (m Model) Close() {
	m.cancel()
	m.bpUnsub()
	m.breakpoint.Detach()
	m.motion.close()
	m.bpBroker.Close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.appearance.Listen(),
		m.faults.Listen(),
		m.breakpoints.Listen(),
		m.frames.Listen(),
	}
	if m.preferences != nil {
		cmds = append(cmds, m.preferences.Listen())
	}
	if m.logs.Listening() {
		cmds = append(cmds, m.logs.Listen())
	}
	if !m.typewriter.Done() {
		cmds = append(cmds, typeTick())
	}
	return tea.Batch(cmds...)
}

func typeTick() tea.Cmd {
	return tea.Tick(anim.DefaultTypeSpeed, func(time.Time) tea.Msg { return typeTickMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bridge.Handle(msg)
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logs.SetSize(msg.Width, msg.Height)
		// Undebounced resizes settle immediately; otherwise the
		// breakpoint event arrives later.
		m.bp = m.breakpoint.Current()
		m.layout()
		return m, nil

	case tea.MouseMsg:
		m.bridge.Handle(msg)
		if !m.reduced {
			id := m.zoneAt(msg)
			m.motion.pointerAt(m.ctx, id)
			if id != "" && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				m.motion.press(m.ctx, id)
			}
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.ScrollUp(1)
			m.afterScroll()
		case tea.MouseButtonWheelDown:
			m.viewport.ScrollDown(1)
			m.afterScroll()
		}
		return m, nil

	case tea.KeyMsg:
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}
		if m.logs.Listening() && key.Matches(msg, m.keys.Logs) {
			m.logs.Toggle()
			return m, nil
		}
		return m.handleKey(msg)

	case log.LogEvent:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd

	case logoverlay.CloseMsg:
		return m, nil

	case typeTickMsg:
		if m.typewriter.Next() {
			return m, typeTick()
		}
		return m, nil

	case pubsub.Event[theme.State]:
		log.Debug(log.CatUI, "appearance changed", "appearance", msg.Payload.Appearance(), "mode", msg.Payload.Mode)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(
			fmt.Sprintf("%s appearance (%s)", msg.Payload.Appearance(), msg.Payload.Mode),
			toaster.StyleInfo, toaster.DefaultDuration)
		m.refresh()
		return m, tea.Batch(cmd, m.appearance.Listen())

	case pubsub.Event[broadcast.Fault]:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Payload.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, tea.Batch(cmd, m.faults.Listen())

	case pubsub.Event[observer.Breakpoint]:
		m.bp = msg.Payload
		m.refresh()
		return m, m.breakpoints.Listen()

	case pubsub.Event[element]:
		m.refresh()
		return m, m.frames.Listen()

	case pubsub.Event[theme.Mode]:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("preference changed on disk: "+msg.Payload.String(),
			toaster.StyleInfo, toaster.DefaultDuration)
		return m, tea.Batch(cmd, m.preferences.Listen())

	case sequenceDoneMsg:
		return m.sequenceDone(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMode):
		m.svc.Engine.Toggle()
	case key.Matches(msg, m.keys.Light):
		m.svc.Engine.SetMode(theme.Light)
	case key.Matches(msg, m.keys.Dark):
		m.svc.Engine.SetMode(theme.Dark)
	case key.Matches(msg, m.keys.System):
		m.svc.Engine.SetMode(theme.System)

	case key.Matches(msg, m.keys.Play):
		return m.play()
	case key.Matches(msg, m.keys.Cancel):
		m.motion.sequencer.Cancel()
		m.motion.stopBusy()
	case key.Matches(msg, m.keys.Sequence):
		if n := len(m.svc.Sequences); n > 0 {
			m.sequence = (m.sequence + 1) % n
		}

	case key.Matches(msg, m.keys.Focus):
		m.focus = (m.focus + 1) % len(styles.ButtonVariants())
	case key.Matches(msg, m.keys.Flags):
		m.reduced = !m.reduced

	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
		m.afterScroll()
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
		m.afterScroll()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfPageUp()
		m.afterScroll()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfPageDown()
		m.afterScroll()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}

	m.refresh()
	return m, nil
}

// play starts the selected sequence, superseding any run in flight.
func (m Model) play() (tea.Model, tea.Cmd) {
	seq := m.currentSequence()
	if seq == nil {
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("no sequences loaded", toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	log.Info(log.CatUI, "playing sequence", "name", seq.Name, "steps", len(seq.Steps))
	results := m.motion.sequencer.PlayNamed(m.ctx, seq.Name, seq.Steps)
	if !m.reduced {
		m.motion.enterButtons(m.ctx)
		m.motion.startBusy(m.ctx)
	}
	name := seq.Name
	return m, func() tea.Msg {
		return sequenceDoneMsg{name: name, result: <-results}
	}
}

func (m Model) sequenceDone(msg sequenceDoneMsg) (tea.Model, tea.Cmd) {
	res := msg.result
	// A superseded run ends while the newer one is still running.
	if status, _ := m.motion.sequencer.Status(); status != anim.Running {
		m.motion.stopBusy()
	}
	var (
		text  string
		style toaster.Style
	)
	switch res.Status {
	case anim.Done:
		text, style = fmt.Sprintf("%s finished", msg.name), toaster.StyleSuccess
	case anim.Failed:
		text, style = fmt.Sprintf("%s failed: %v", msg.name, res.Err), toaster.StyleError
	default:
		// A superseded run reports quietly; the newer run owns the toast.
		log.Debug(log.CatUI, "sequence ended", "name", msg.name, "status", res.Status, "completed", res.Completed)
		return m, nil
	}

	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, style, toaster.DefaultDuration)
	return m, cmd
}

func (m Model) currentSequence() *anim.Sequence {
	if m.sequence < 0 || m.sequence >= len(m.svc.Sequences) {
		return nil
	}
	return m.svc.Sequences[m.sequence]
}

// afterScroll reports the new offset and the reveal card's visibility.
func (m *Model) afterScroll() {
	m.scroll.Emit(m.viewport.YOffset)
	m.emitVisibility()
}

func (m *Model) emitVisibility() {
	if m.viewport.Height <= 0 || m.revealHeight <= 0 {
		return
	}
	view := observer.Rect{X: 0, Y: m.viewport.YOffset, W: 1, H: m.viewport.Height}
	card := observer.Rect{X: 0, Y: m.revealTop, W: 1, H: m.revealHeight}
	m.visibility.Emit(observer.IntersectionRatio(card, view))
}

// layout sizes the viewport from the window and re-renders its content.
func (m *Model) layout() {
	h := m.height - headerHeight - heroHeight - m.footerHeight()
	m.viewport.Width = m.width
	m.viewport.Height = max(h, 1)
	m.refresh()
	m.emitVisibility()
}

// refresh rebuilds the scrollable content.
func (m *Model) refresh() {
	if m.width == 0 {
		return
	}
	content, top, height := m.renderGallery(m.motion.snapshot())
	m.revealTop, m.revealHeight = top, height
	m.viewport.SetContent(content)
}

// zoneAt returns the hoverable zone under the pointer, or "".
func (m Model) zoneAt(msg tea.MouseMsg) string {
	zones := globalZones{}
	for _, id := range m.motion.hoverOrder {
		if zones.Get(id).InBounds(msg) {
			return id
		}
	}
	return ""
}

// globalZones adapts the package-level zone manager to observer.ZoneGetter.
type globalZones struct{}

func (globalZones) Get(id string) *zone.ZoneInfo { return zone.Get(id) }
