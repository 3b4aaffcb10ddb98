package observer

import "github.com/zjrosen/tint/internal/log"

// DefaultSpeed is the parallax factor used when none is given.
const DefaultSpeed = 0.5

// Scroll reports the scroll offset multiplied by a speed factor.
type Scroll struct {
	subject[float64]
	speed float64
}

// NewScroll attaches to a source of scroll offsets in rows. A zero speed
// uses DefaultSpeed.
func NewScroll(src Source[int], offset int, speed float64) *Scroll {
	if speed == 0 {
		speed = DefaultSpeed
	}
	s := &Scroll{speed: speed}
	s.current = float64(offset) * speed
	if src == nil {
		log.WarnErr(log.CatObserver, "scroll source missing, offset fixed", ErrObserverUnavailable)
		s.detached.Store(true)
		return s
	}
	attach(&s.subject, src, s.handle)
	return s
}

func (s *Scroll) handle(offset int) {
	next := float64(offset) * s.speed
	if prev := s.set(next); prev == next {
		return
	}
	s.publish(next)
}

var _ Observable[float64] = (*Scroll)(nil)
