package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	// Colors overrides tokens. A plain key such as "accent" sets both
	// backgrounds; "accent.light" or "accent.dark" sets one.
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	light := maps.Clone(DefaultPreset.Light)
	dark := maps.Clone(DefaultPreset.Dark)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(light, preset.Light)
		maps.Copy(dark, preset.Dark)
	}

	for key, value := range cfg.Colors {
		token, side := splitOverride(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		if side != "dark" {
			light[token] = value
		}
		if side != "light" {
			dark[token] = value
		}
	}

	mu.Lock()
	palette = paletteOf(light, dark)
	mu.Unlock()

	Rebuild()
	return nil
}

func splitOverride(key string) (ColorToken, string) {
	for _, side := range []string{"light", "dark"} {
		if base, ok := strings.CutSuffix(key, "."+side); ok {
			return ColorToken(base), side
		}
	}
	return ColorToken(key), ""
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
