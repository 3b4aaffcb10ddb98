package anim

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Transitions are the named motion presets.
var Transitions = map[string]Transition{
	"spring":  {Type: Spring, Stiffness: 300, Damping: 30},
	"smooth":  {Type: Tween, Duration: 300 * time.Millisecond},
	"bouncy":  {Type: Spring, Stiffness: 400, Damping: 20},
	"slow":    {Type: Tween, Duration: 600 * time.Millisecond},
	"instant": {Type: Tween},
}

// Variant states.
const (
	Initial = "initial"
	Animate = "animate"
	Exit    = "exit"
	Hover   = "hover"
	Tap     = "tap"
)

// Variants maps a state name such as Animate to the values for it.
type Variants map[string]Values

// Target returns the target for state using tr, and whether the state is
// defined.
func (v Variants) Target(state string, tr Transition) (Target, bool) {
	values, ok := v[state]
	if !ok {
		return Target{}, false
	}
	return Target{Values: values.Clone(), Transition: tr}, true
}

var variantPresets = map[string]Variants{
	"fadeIn": {
		Initial: {Opacity: 0},
		Animate: {Opacity: 1},
		Exit:    {Opacity: 0},
	},
	"slideUp": {
		Initial: {Opacity: 0, Y: 20},
		Animate: {Opacity: 1, Y: 0},
		Exit:    {Opacity: 0, Y: -20},
	},
	"slideDown": {
		Initial: {Opacity: 0, Y: -20},
		Animate: {Opacity: 1, Y: 0},
		Exit:    {Opacity: 0, Y: 20},
	},
	"slideLeft": {
		Initial: {Opacity: 0, X: 20},
		Animate: {Opacity: 1, X: 0},
		Exit:    {Opacity: 0, X: -20},
	},
	"slideRight": {
		Initial: {Opacity: 0, X: -20},
		Animate: {Opacity: 1, X: 0},
		Exit:    {Opacity: 0, X: 20},
	},
	"scale": {
		Initial: {Opacity: 0, Scale: 0.95},
		Animate: {Opacity: 1, Scale: 1},
		Exit:    {Opacity: 0, Scale: 0.95},
	},
	"scaleUp": {
		Initial: {Opacity: 0, Scale: 0.8},
		Animate: {Opacity: 1, Scale: 1},
		Exit:    {Opacity: 0, Scale: 1.1},
	},
	"rotate": {
		Initial: {Opacity: 0, Rotate: -10},
		Animate: {Opacity: 1, Rotate: 0},
		Exit:    {Opacity: 0, Rotate: 10},
	},
	"staggerItem": {
		Initial: {Opacity: 0, Y: 20},
		Animate: {Opacity: 1, Y: 0},
	},
	"buttonHover": {
		Hover: {Scale: 1.02},
		Tap:   {Scale: 0.98},
	},
	"cardHover": {
		Hover: {Y: -5},
		Tap:   {Scale: 0.98},
	},
}

// Variant returns a copy of the named preset.
func Variant(name string) (Variants, bool) {
	v, ok := variantPresets[name]
	if !ok {
		return nil, false
	}
	out := make(Variants, len(v))
	for state, values := range v {
		out[state] = values.Clone()
	}
	return out, true
}

// VariantNames lists the presets in sorted order.
func VariantNames() []string {
	return slices.Sorted(maps.Keys(variantPresets))
}

// Direction is where a slide comes from.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// SlideVariants builds a slide that enters moving toward dir over
// distance and exits continuing the same way.
func SlideVariants(dir Direction, distance float64) (Variants, error) {
	var prop string
	var sign float64
	switch dir {
	case Up:
		prop, sign = Y, 1
	case Down:
		prop, sign = Y, -1
	case Left:
		prop, sign = X, 1
	case Right:
		prop, sign = X, -1
	default:
		return nil, fmt.Errorf("unknown slide direction %q", dir)
	}
	return Variants{
		Initial: {Opacity: 0, prop: sign * distance},
		Animate: {Opacity: 1, X: 0, Y: 0},
		Exit:    {Opacity: 0, prop: -sign * distance},
	}, nil
}

// ScaleVariants builds a fade that grows from initial and shrinks or grows
// to exit.
func ScaleVariants(initial, exit float64) Variants {
	return Variants{
		Initial: {Opacity: 0, Scale: initial},
		Animate: {Opacity: 1, Scale: 1},
		Exit:    {Opacity: 0, Scale: exit},
	}
}

// loops are motions that repeat until cancelled.
var loops = map[string]Target{
	"spinner": {
		Values:     Values{Rotate: 360},
		Transition: Transition{Type: Tween, Duration: time.Second, Ease: Linear, Repeat: RepeatForever},
	},
	"pulse": {
		Keyframes:  map[string][]float64{Scale: {1, 1.05, 1}},
		Transition: Transition{Type: Tween, Duration: 2 * time.Second, Repeat: RepeatForever},
	},
	"bounce": {
		Keyframes:  map[string][]float64{Y: {0, -10, 0}},
		Transition: Transition{Type: Tween, Duration: 600 * time.Millisecond, Repeat: RepeatForever},
	},
}

// Loop returns a copy of the named repeating motion.
func Loop(name string) (Target, bool) {
	t, ok := loops[name]
	if !ok {
		return Target{}, false
	}
	return t.clone(), true
}

// LoopNames lists the repeating motions in sorted order.
func LoopNames() []string {
	return slices.Sorted(maps.Keys(loops))
}

// Wave squashes horizontally and vertically in turn, once per period.
func Wave(period time.Duration) Target {
	return Target{
		Keyframes: map[string][]float64{
			ScaleX: {1, 1.2, 1},
			ScaleY: {1, 0.8, 1},
		},
		Transition: Transition{Type: Tween, Duration: period, Repeat: RepeatForever},
	}
}
