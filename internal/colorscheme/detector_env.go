package colorscheme

import (
	"os"
	"strconv"
	"strings"
)

const (
	detectorNameEnv       = "TINT_COLOR_SCHEME"
	priorityEnv           = 30
	detectorNameColorFGBG = "COLORFGBG"
	priorityColorFGBG     = 15
)

// EnvDetector reads an explicit scheme from TINT_COLOR_SCHEME.
// Accepted values: dark, light, prefer-dark, prefer-light.
type EnvDetector struct {
	getenv func(string) string
}

// NewEnvDetector creates a detector reading the process environment.
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{getenv: os.Getenv}
}

// Name implements Detector.
func (*EnvDetector) Name() string { return detectorNameEnv }

// Priority implements Detector.
func (*EnvDetector) Priority() int { return priorityEnv }

// Available implements Detector.
func (d *EnvDetector) Available() bool {
	return d.getenv(detectorNameEnv) != ""
}

// Detect implements Detector.
func (d *EnvDetector) Detect() (prefersDark, ok bool) {
	return parseScheme(d.getenv(detectorNameEnv))
}

// parseScheme interprets the scheme names used by env vars and config.
func parseScheme(s string) (prefersDark, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "prefer-dark":
		return true, true
	case "light", "prefer-light":
		return false, true
	default:
		return false, false
	}
}

// ColorFGBGDetector infers the background from COLORFGBG ("fg;bg" ANSI
// palette indices), which rxvt-derived terminals and some others export.
type ColorFGBGDetector struct {
	getenv func(string) string
}

// NewColorFGBGDetector creates a detector reading the process environment.
func NewColorFGBGDetector() *ColorFGBGDetector {
	return &ColorFGBGDetector{getenv: os.Getenv}
}

// Name implements Detector.
func (*ColorFGBGDetector) Name() string { return detectorNameColorFGBG }

// Priority implements Detector.
func (*ColorFGBGDetector) Priority() int { return priorityColorFGBG }

// Available implements Detector.
func (d *ColorFGBGDetector) Available() bool {
	return d.getenv(detectorNameColorFGBG) != ""
}

// Detect implements Detector.
func (d *ColorFGBGDetector) Detect() (prefersDark, ok bool) {
	return parseColorFGBG(d.getenv(detectorNameColorFGBG))
}

func parseColorFGBG(v string) (prefersDark, ok bool) {
	parts := strings.Split(v, ";")
	if len(parts) < 2 {
		return false, false
	}
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || bg < 0 || bg > 15 {
		return false, false
	}
	// 7 (white) and the bright range above 8 are light backgrounds.
	return bg != 7 && bg < 9, true
}
