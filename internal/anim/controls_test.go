package anim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpringControls_InstantTween(t *testing.T) {
	c := NewSpringControls(Values{Opacity: 0})
	defer c.Close()

	err := c.Start(context.Background(), To(Values{Opacity: 1, X: 5}).With(Transitions["instant"]))
	require.NoError(t, err)
	require.Equal(t, Values{Opacity: 1, X: 5}, c.Values())
}

func TestSpringControls_TweenPassesThroughMidpoints(t *testing.T) {
	var frames []Frame
	c := NewSpringControls(Values{X: 0}, WithFPS(200), WithFrameFunc(func(f Frame) {
		frames = append(frames, f)
	}))
	defer c.Close()

	tr := Transition{Type: Tween, Duration: 50 * time.Millisecond}
	require.NoError(t, c.Start(context.Background(), Target{Values: Values{X: 10}, Transition: tr}))

	require.Len(t, frames, 10)
	require.True(t, frames[len(frames)-1].Settled)
	require.Equal(t, 10.0, frames[len(frames)-1].Values[X])
	for i := 1; i < len(frames); i++ {
		require.GreaterOrEqual(t, frames[i].Values[X], frames[i-1].Values[X], "ease must be monotonic")
	}
}

func TestSpringControls_SpringSettlesExactly(t *testing.T) {
	c := NewSpringControls(nil, WithFPS(1000))
	defer c.Close()

	// Unset properties start from their resting value.
	require.NoError(t, c.Start(context.Background(), To(Values{Scale: 2, Y: -5})))
	require.Equal(t, Values{Scale: 2, Y: -5}, c.Values())
}

func TestSpringControls_NewStartSupersedes(t *testing.T) {
	first := make(chan struct{}, 1)
	c := NewSpringControls(Values{X: 0}, WithFrameFunc(func(Frame) {
		select {
		case first <- struct{}{}:
		default:
		}
	}))
	defer c.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Start(context.Background(), To(Values{X: 100}).With(Transitions["slow"]))
	}()
	<-first

	require.NoError(t, c.Start(context.Background(), To(Values{X: 3}).With(Transitions["instant"])))
	require.ErrorIs(t, <-errCh, ErrSuperseded)
	require.Equal(t, 3.0, c.Values()[X])
}

func TestSpringControls_ContextCancel(t *testing.T) {
	c := NewSpringControls(Values{X: 0})
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := Transition{Type: Tween, Duration: time.Second, Delay: time.Second}
	err := c.Start(ctx, Target{Values: Values{X: 1}, Transition: tr})
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, 0.0, c.Values()[X])
}

func TestSpringControls_DoneContextTouchesNothing(t *testing.T) {
	frames := 0
	c := NewSpringControls(Values{X: 0}, WithFrameFunc(func(Frame) { frames++ }))
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Start(ctx, To(Values{X: 100}))
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, frames)
	require.Equal(t, Values{X: 0}, c.Values())
}

func TestSpringControls_DoneContextKeepsLiveTransition(t *testing.T) {
	first := make(chan struct{}, 1)
	c := NewSpringControls(Values{X: 0}, WithFPS(200), WithFrameFunc(func(Frame) {
		select {
		case first <- struct{}{}:
		default:
		}
	}))
	defer c.Close()

	errCh := make(chan error, 1)
	go func() {
		tr := Transition{Type: Tween, Duration: 100 * time.Millisecond}
		errCh <- c.Start(context.Background(), Target{Values: Values{X: 100}, Transition: tr})
	}()
	<-first

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, c.Start(ctx, To(Values{X: -50})), context.Canceled)

	require.NoError(t, <-errCh)
	require.Equal(t, 100.0, c.Values()[X])
}

func TestSpringControls_RepeatRestartsFromStart(t *testing.T) {
	var frames []Frame
	c := NewSpringControls(Values{X: 0}, WithFPS(200), WithFrameFunc(func(f Frame) {
		frames = append(frames, f)
	}))
	defer c.Close()

	tr := Transition{Type: Tween, Duration: 20 * time.Millisecond, Repeat: 2}
	require.NoError(t, c.Start(context.Background(), Target{Values: Values{X: 10}, Transition: tr}))

	// Three passes of four frames; each restart shows the starting value.
	require.Len(t, frames, 12)
	restarts := 0
	for i, f := range frames {
		require.Equal(t, i == len(frames)-1, f.Settled)
		if f.Values[X] == 0 {
			restarts++
		}
	}
	require.Equal(t, 2, restarts)
	require.Equal(t, 10.0, c.Values()[X])
}

func TestSpringControls_RepeatForeverEndsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := 0
	c := NewSpringControls(nil, WithFPS(500), WithFrameFunc(func(f Frame) {
		require.False(t, f.Settled)
		n++
		if n == 20 {
			cancel()
		}
	}))
	defer c.Close()

	spinner, ok := Loop("spinner")
	require.True(t, ok)
	spinner.Transition.Duration = 10 * time.Millisecond

	err := c.Start(ctx, spinner)
	require.ErrorIs(t, err, context.Canceled)
	require.GreaterOrEqual(t, n, 20)
}

func TestSpringControls_Keyframes(t *testing.T) {
	var frames []Frame
	c := NewSpringControls(nil, WithFPS(200), WithFrameFunc(func(f Frame) {
		frames = append(frames, f)
	}))
	defer c.Close()

	target := Target{
		Keyframes:  map[string][]float64{Scale: {1, 1.2, 1}},
		Values:     Values{Opacity: 0.5, Scale: 9},
		Transition: Transition{Type: Tween, Duration: 40 * time.Millisecond},
	}
	require.NoError(t, c.Start(context.Background(), target))

	require.Len(t, frames, 8)
	require.Equal(t, 1.2, frames[3].Values[Scale], "midpoint lands on the middle frame")
	require.Equal(t, Values{Opacity: 0.5, Scale: 1}, c.Values())
}

func TestSpringControls_KeyframesOverrideSpring(t *testing.T) {
	c := NewSpringControls(Values{Y: 3})
	defer c.Close()

	target := Target{Keyframes: map[string][]float64{Y: {0, -10, 0}}, Transition: Transitions["spring"]}
	require.NoError(t, c.Start(context.Background(), target))
	require.Equal(t, 0.0, c.Values()[Y])
}

func TestTarget_Validate(t *testing.T) {
	require.NoError(t, To(Values{X: 1}).Validate())
	require.NoError(t, Target{Transition: Transition{Repeat: RepeatForever}}.Validate())

	bad := Target{Transition: Transition{Repeat: -2}}
	require.ErrorContains(t, bad.Validate(), "repeat")

	c := NewSpringControls(nil)
	defer c.Close()
	err := c.Start(context.Background(), Target{Keyframes: map[string][]float64{X: {}}})
	require.ErrorContains(t, err, "keyframes for x are empty")
}

func TestKeyframeAt(t *testing.T) {
	linear := func(p float64) float64 { return p }
	frames := []float64{0, 10, 0}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 0},
		{0.25, 5},
		{0.5, 10},
		{0.75, 5},
		{1, 0},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, keyframeAt(frames, tt.p, linear), 1e-9, "p=%v", tt.p)
	}
	require.Equal(t, 7.0, keyframeAt([]float64{7}, 0.3, linear))
}

func TestSpringControls_SetJumps(t *testing.T) {
	c := NewSpringControls(nil)
	defer c.Close()

	ch := c.Frames().Subscribe(context.Background())
	c.Set(Values{Opacity: 0.5})

	select {
	case ev := <-ch:
		require.True(t, ev.Payload.Settled)
		require.Equal(t, 0.5, ev.Payload.Values[Opacity])
	case <-time.After(time.Second):
		require.FailNow(t, "no frame published")
	}
	require.Equal(t, Values{Opacity: 0.5}, c.Values())
}

func TestDefaultValue(t *testing.T) {
	require.Equal(t, 1.0, defaultValue(Opacity))
	require.Equal(t, 1.0, defaultValue(Scale))
	require.Equal(t, 1.0, defaultValue(ScaleX))
	require.Equal(t, 0.0, defaultValue(RotateX))
}

func TestEaseInOut(t *testing.T) {
	require.Equal(t, 0.0, easeInOut(0))
	require.Equal(t, 0.5, easeInOut(0.5))
	require.Equal(t, 1.0, easeInOut(1))
}
