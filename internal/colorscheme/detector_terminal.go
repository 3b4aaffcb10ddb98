package colorscheme

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
)

const (
	detectorNameTerminal = "terminal"
	priorityTerminal     = 50
)

// TerminalDetector asks the terminal for its background colour (OSC 11).
// It is only available when stdout is a terminal with colour support.
//
// The query reads from the terminal, which would race with a running
// Bubble Tea program, so the answer is taken once and reused.
type TerminalDetector struct {
	output *termenv.Output
	once   sync.Once
	dark   bool
}

// NewTerminalDetector creates a detector querying stdout.
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{output: termenv.NewOutput(os.Stdout)}
}

// Name implements Detector.
func (*TerminalDetector) Name() string { return detectorNameTerminal }

// Priority implements Detector.
func (*TerminalDetector) Priority() int { return priorityTerminal }

// Cached implements Cacher.
func (*TerminalDetector) Cached() bool { return true }

// Available implements Detector.
func (d *TerminalDetector) Available() bool {
	if d.output == nil || d.output.TTY() == nil {
		return false
	}
	return d.output.EnvColorProfile() != termenv.Ascii
}

// Detect implements Detector.
func (d *TerminalDetector) Detect() (prefersDark, ok bool) {
	if !d.Available() {
		return false, false
	}
	d.once.Do(func() {
		d.dark = d.output.HasDarkBackground()
	})
	return d.dark, true
}
