package anim

import (
	"time"

	"github.com/rivo/uniseg"
)

// DefaultTypeSpeed is the delay between revealed graphemes.
const DefaultTypeSpeed = 50 * time.Millisecond

// Typewriter reveals text one grapheme cluster at a time, so combined
// emoji and accented letters never appear half-drawn.
type Typewriter struct {
	text  string
	state int
	pos   int
}

// NewTypewriter starts with nothing revealed.
func NewTypewriter(text string) *Typewriter {
	return &Typewriter{text: text, state: -1}
}

// Next reveals one more grapheme. It reports false once complete.
func (t *Typewriter) Next() bool {
	if t.pos >= len(t.text) {
		return false
	}
	cluster, _, _, state := uniseg.FirstGraphemeClusterInString(t.text[t.pos:], t.state)
	t.pos += len(cluster)
	t.state = state
	return true
}

// Text returns the revealed prefix.
func (t *Typewriter) Text() string {
	return t.text[:t.pos]
}

// Done reports whether the whole text is revealed.
func (t *Typewriter) Done() bool {
	return t.pos >= len(t.text)
}

// Reset hides everything again.
func (t *Typewriter) Reset() {
	t.pos = 0
	t.state = -1
}
