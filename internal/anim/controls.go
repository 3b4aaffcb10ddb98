package anim

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/zjrosen/tint/internal/pubsub"
)

// ErrSuperseded is returned by Start when a newer target replaced the one
// in flight.
var ErrSuperseded = errors.New("animation superseded")

// Controls animates an element toward targets.
type Controls interface {
	// Start blocks until the element reaches t or ctx is cancelled.
	Start(ctx context.Context, t Target) error
}

// ControlsFunc adapts a function to Controls.
type ControlsFunc func(ctx context.Context, t Target) error

// Start implements Controls.
func (f ControlsFunc) Start(ctx context.Context, t Target) error { return f(ctx, t) }

// Frame is a snapshot of animated values.
type Frame struct {
	Values Values
	// Settled is set on the last frame of a transition.
	Settled bool
}

const (
	// DefaultFPS is the frame rate transitions are stepped at.
	DefaultFPS    = 60
	settleEpsilon = 0.01
)

// defaultValue is the resting value of a property never set before.
func defaultValue(prop string) float64 {
	switch prop {
	case Opacity, Scale, ScaleX, ScaleY:
		return 1
	default:
		return 0
	}
}

// SpringOption configures SpringControls.
type SpringOption func(*SpringControls)

// WithFPS sets the frame rate.
func WithFPS(fps int) SpringOption {
	return func(c *SpringControls) {
		if fps > 0 {
			c.fps = fps
		}
	}
}

// WithFrameFunc calls fn with every frame, on the animating goroutine.
func WithFrameFunc(fn func(Frame)) SpringOption {
	return func(c *SpringControls) {
		c.onFrame = fn
	}
}

// SpringControls steps values with harmonica springs or eased tweens.
// Starting a new target supersedes the one in flight.
type SpringControls struct {
	fps     int
	onFrame func(Frame)
	frames  *pubsub.Broker[Frame]

	mu     sync.Mutex
	pos    Values
	vel    Values
	gen    uint64
	cancel context.CancelFunc
}

// NewSpringControls creates controls resting at initial.
func NewSpringControls(initial Values, opts ...SpringOption) *SpringControls {
	c := &SpringControls{
		fps:    DefaultFPS,
		frames: pubsub.NewBroker[Frame](),
		pos:    initial.Clone(),
		vel:    Values{},
	}
	if c.pos == nil {
		c.pos = Values{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Frames streams every frame.
func (c *SpringControls) Frames() *pubsub.Broker[Frame] {
	return c.frames
}

// Values returns the current values.
func (c *SpringControls) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos.Clone()
}

// Set jumps to values immediately, superseding any transition.
func (c *SpringControls) Set(values Values) {
	c.mu.Lock()
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	for k, v := range values {
		c.pos[k] = v
		c.vel[k] = 0
	}
	frame := Frame{Values: c.pos.Clone(), Settled: true}
	c.mu.Unlock()
	c.emit(frame)
}

// Close stops the frame stream.
func (c *SpringControls) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.frames.Close()
}

func (c *SpringControls) emit(f Frame) {
	if c.onFrame != nil {
		c.onFrame(f)
	}
	c.frames.Publish(pubsub.FrameEvent, f)
}

// Start implements Controls. A context that is already done leaves the
// element and any transition in flight untouched.
func (c *SpringControls) Start(ctx context.Context, t Target) error {
	if err := t.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if err := ctx.Err(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	if d := t.Transition.Delay; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-runCtx.Done():
			timer.Stop()
			return c.stopped(runCtx, gen)
		}
	}

	step, err := c.stepper(gen, t)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(c.fps))
	defer ticker.Stop()

	for {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return ErrSuperseded
		}
		if runCtx.Err() != nil {
			c.mu.Unlock()
			return c.stopped(runCtx, gen)
		}
		settled := step()
		frame := Frame{Values: c.pos.Clone(), Settled: settled}
		c.mu.Unlock()

		c.emit(frame)
		if settled {
			return nil
		}

		select {
		case <-ticker.C:
		case <-runCtx.Done():
			return c.stopped(runCtx, gen)
		}
	}
}

func (c *SpringControls) stopped(ctx context.Context, gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return ErrSuperseded
	}
	return ctx.Err()
}

// stepper returns a func advancing one frame under c.mu and reporting
// whether the target was reached. Repeats restart from the values the
// element had when the target began.
func (c *SpringControls) stepper(gen uint64, t Target) (func() bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return nil, ErrSuperseded
	}

	from := Values{}
	for k := range t.Final() {
		if _, ok := c.pos[k]; !ok {
			c.pos[k] = defaultValue(k)
		}
		from[k] = c.pos[k]
	}

	repeat := t.Transition.Repeat
	played := 0
	step := c.cycle(from, t)
	return func() bool {
		if !step() {
			return false
		}
		if repeat != RepeatForever && played >= repeat {
			return true
		}
		played++
		for k, v := range from {
			c.pos[k] = v
			c.vel[k] = 0
		}
		step = c.cycle(from, t)
		return false
	}, nil
}

// cycle returns the step func for one pass of t. Keyframed targets always
// tween.
func (c *SpringControls) cycle(from Values, t Target) func() bool {
	tr := t.Transition
	final := t.Final()
	if tr.Type != Tween && len(t.Keyframes) == 0 {
		return c.spring(final, tr)
	}

	for k, frames := range t.Keyframes {
		c.pos[k] = frames[0]
		c.vel[k] = 0
	}
	frames := int(math.Ceil(tr.Duration.Seconds() * float64(c.fps)))
	n := 0
	return func() bool {
		n++
		if n >= frames {
			for k, v := range final {
				c.pos[k] = v
				c.vel[k] = 0
			}
			return true
		}
		p := float64(n) / float64(frames)
		for k, v := range t.Values {
			if _, keyed := t.Keyframes[k]; keyed {
				continue
			}
			c.pos[k] = from[k] + (v-from[k])*tr.ease(p)
		}
		for k, kf := range t.Keyframes {
			c.pos[k] = keyframeAt(kf, p, tr.ease)
		}
		return false
	}
}

func (c *SpringControls) spring(target Values, tr Transition) func() bool {
	stiffness, damping := tr.Stiffness, tr.Damping
	if stiffness <= 0 {
		stiffness = 300
	}
	if damping <= 0 {
		damping = 30
	}
	omega := math.Sqrt(stiffness)
	spring := harmonica.NewSpring(harmonica.FPS(c.fps), omega, damping/(2*omega))
	return func() bool {
		settled := true
		for k, v := range target {
			p, vel := spring.Update(c.pos[k], c.vel[k], v)
			c.pos[k], c.vel[k] = p, vel
			if math.Abs(p-v) > settleEpsilon || math.Abs(vel) > settleEpsilon {
				settled = false
			}
		}
		if settled {
			for k, v := range target {
				c.pos[k] = v
				c.vel[k] = 0
			}
		}
		return settled
	}
}

// easeInOut is a cubic ease over p in [0, 1].
func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	f := 2*p - 2
	return 0.5*f*f*f + 1
}

var _ Controls = (*SpringControls)(nil)
