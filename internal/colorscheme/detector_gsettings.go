package colorscheme

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const (
	detectorNameGsettings = "gsettings"
	priorityGsettings     = 10
	gsettingsTimeout      = 2 * time.Second
)

// GsettingsDetector reads org.gnome.desktop.interface color-scheme.
type GsettingsDetector struct {
	lookPath func(string) (string, error)
	output   func(ctx context.Context) ([]byte, error)
}

// NewGsettingsDetector creates a detector that shells out to gsettings.
func NewGsettingsDetector() *GsettingsDetector {
	return &GsettingsDetector{
		lookPath: exec.LookPath,
		output: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
		},
	}
}

// Name implements Detector.
func (*GsettingsDetector) Name() string { return detectorNameGsettings }

// Priority implements Detector.
func (*GsettingsDetector) Priority() int { return priorityGsettings }

// Available implements Detector.
func (d *GsettingsDetector) Available() bool {
	_, err := d.lookPath("gsettings")
	return err == nil
}

// Detect implements Detector.
func (d *GsettingsDetector) Detect() (prefersDark, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), gsettingsTimeout)
	defer cancel()

	out, err := d.output(ctx)
	if err != nil {
		return false, false
	}
	return parseGsettings(string(out))
}

// parseGsettings handles output like "'prefer-dark'\n". "default" defers
// to other detectors.
func parseGsettings(out string) (prefersDark, ok bool) {
	result := strings.Trim(strings.TrimSpace(out), `'"`)
	switch result {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	default:
		return false, false
	}
}
