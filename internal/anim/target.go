// Package anim plays animation targets. A Sequencer runs ordered steps one
// after another; Followers chase continuously changing targets driven by
// observers.
package anim

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Well-known property names.
const (
	Opacity = "opacity"
	X       = "x"
	Y       = "y"
	Scale   = "scale"
	ScaleX  = "scaleX"
	ScaleY  = "scaleY"
	Rotate  = "rotate"
	RotateX = "rotateX"
	RotateY = "rotateY"
)

// TransitionType selects how a property moves toward its target.
type TransitionType string

const (
	Spring TransitionType = "spring"
	Tween  TransitionType = "tween"
)

// Easing shapes a tween's progress.
type Easing string

const (
	// EaseInOut is the default cubic ease.
	EaseInOut Easing = "easeInOut"
	Linear    Easing = "linear"
)

// RepeatForever makes a transition loop until its context ends.
const RepeatForever = -1

// Transition describes the motion toward a target.
type Transition struct {
	Type      TransitionType `yaml:"type"`
	Stiffness float64        `yaml:"stiffness"`
	Damping   float64        `yaml:"damping"`
	Duration  time.Duration  `yaml:"duration"`
	// Delay postpones the start of the motion.
	Delay time.Duration `yaml:"delay"`
	Ease  Easing        `yaml:"ease"`
	// Repeat plays the motion this many extra times, restarting from the
	// values it began with. RepeatForever never settles.
	Repeat int `yaml:"repeat"`
}

// ease applies the transition's easing to p in [0, 1].
func (tr Transition) ease(p float64) float64 {
	if tr.Ease == Linear {
		return p
	}
	return easeInOut(p)
}

// Values maps property names to numbers.
type Values map[string]float64

// Clone returns an independent copy.
func (v Values) Clone() Values {
	return maps.Clone(v)
}

func (v Values) String() string {
	keys := slices.Sorted(maps.Keys(v))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Target is a set of property values to animate to.
//
// A keyframed property jumps to its first frame and tweens through the
// rest over the transition's duration, ending on the last one. Keyframes
// take precedence over Values for the same property.
type Target struct {
	Values     Values               `yaml:"values"`
	Keyframes  map[string][]float64 `yaml:"keyframes"`
	Transition Transition           `yaml:"transition"`
}

func (t Target) clone() Target {
	t.Values = t.Values.Clone()
	if t.Keyframes != nil {
		kf := make(map[string][]float64, len(t.Keyframes))
		for k, frames := range t.Keyframes {
			kf[k] = slices.Clone(frames)
		}
		t.Keyframes = kf
	}
	return t
}

// Final returns the values t comes to rest at.
func (t Target) Final() Values {
	out := t.Values.Clone()
	if out == nil {
		out = Values{}
	}
	for k, frames := range t.Keyframes {
		if len(frames) > 0 {
			out[k] = frames[len(frames)-1]
		}
	}
	return out
}

// Validate reports a target the controls cannot play.
func (t Target) Validate() error {
	if t.Transition.Repeat < RepeatForever {
		return fmt.Errorf("repeat must be %d or more, got %d", RepeatForever, t.Transition.Repeat)
	}
	for k, frames := range t.Keyframes {
		if len(frames) == 0 {
			return fmt.Errorf("keyframes for %s are empty", k)
		}
	}
	return nil
}

// keyframeAt samples frames at progress p in [0, 1]. Each segment takes an
// equal share of the duration and is eased on its own.
func keyframeAt(frames []float64, p float64, ease func(float64) float64) float64 {
	n := len(frames) - 1
	if n <= 0 {
		return frames[0]
	}
	if p >= 1 {
		return frames[n]
	}
	pos := p * float64(n)
	i := int(pos)
	return frames[i] + (frames[i+1]-frames[i])*ease(pos-float64(i))
}

// To builds a target with the default spring transition.
func To(values Values) Target {
	return Target{Values: values, Transition: Transitions["spring"]}
}

// With returns a copy of t using tr.
func (t Target) With(tr Transition) Target {
	t.Transition = tr
	return t
}
