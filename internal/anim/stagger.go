package anim

import "time"

// Stagger returns the start delay of the i-th item in a list.
func Stagger(i int, delay time.Duration) time.Duration {
	if i <= 0 {
		return 0
	}
	return time.Duration(i) * delay
}

// Staggered returns n copies of base, each delayed by its index.
func Staggered(base Target, n int, delay time.Duration) []Target {
	out := make([]Target, n)
	for i := range out {
		t := base.clone()
		t.Transition.Delay = base.Transition.Delay + Stagger(i, delay)
		out[i] = t
	}
	return out
}
