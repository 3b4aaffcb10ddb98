package observer

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// ZoneGetter looks up rendered zones. *zone.Manager implements it.
type ZoneGetter interface {
	Get(id string) *zone.ZoneInfo
}

// ZoneBounds returns a bounds func for the zone marked id. An unrendered
// zone has empty bounds.
func ZoneBounds(zones ZoneGetter, id string) func() Rect {
	return func() Rect {
		z := zones.Get(id)
		if z == nil || z.IsZero() {
			return Rect{}
		}
		return Rect{
			X: z.StartX,
			Y: z.StartY,
			W: z.EndX - z.StartX + 1,
			H: z.EndY - z.StartY + 1,
		}
	}
}

// Bridge turns Bubble Tea messages into source events.
type Bridge struct {
	cellWidth int
	widths    *Emitter[int]
	pointer   *Emitter[PointerEvent]
}

// NewBridge creates a bridge that converts columns to px with cellWidth.
func NewBridge(cellWidth int) *Bridge {
	return &Bridge{
		cellWidth: cellWidth,
		widths:    NewEmitter[int](),
		pointer:   NewEmitter[PointerEvent](),
	}
}

// Widths is the resize source, in px.
func (b *Bridge) Widths() *Emitter[int] { return b.widths }

// Pointer is the pointer source, in cells.
func (b *Bridge) Pointer() *Emitter[PointerEvent] { return b.pointer }

// Handle forwards msg to the matching source. It reports whether msg was
// consumed.
func (b *Bridge) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.widths.Emit(Width(msg.Width, b.cellWidth))
		return true
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion {
			return false
		}
		b.pointer.Emit(PointerEvent{X: msg.X, Y: msg.Y})
		return true
	}
	return false
}
