package styles

// Preset is a complete color theme. Every token has a light and a dark
// value; the terminal background picks between them.
type Preset struct {
	Name        string
	Description string
	Light       map[ColorToken]string
	Dark        map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"nord":          NordPreset,
	"high-contrast": HighContrastPreset,
}

// DefaultPreset is the tint color scheme.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default tint theme",
	Light: map[ColorToken]string{
		TokenTextPrimary:   "#1F2328",
		TokenTextSecondary: "#57606A",
		TokenTextMuted:     "#8C959F",

		TokenSurface:         "#FFFFFF",
		TokenSurfaceElevated: "#F6F8FA",

		TokenBorderDefault: "#D0D7DE",
		TokenBorderFocus:   "#0969DA",

		TokenAccent: "#0969DA",

		TokenStatusSuccess: "#1A7F37",
		TokenStatusError:   "#CF222E",

		TokenButtonText:               "#FFFFFF",
		TokenButtonPrimaryBg:          "#0969DA",
		TokenButtonPrimaryFocusBg:     "#0550AE",
		TokenButtonSecondaryBg:        "#D0D7DE",
		TokenButtonSecondaryFocusBg:   "#AFB8C1",
		TokenButtonDestructiveBg:      "#CF222E",
		TokenButtonDestructiveFocusBg: "#A40E26",
		TokenButtonGhostFocusBg:       "#EAEEF2",
	},
	Dark: map[ColorToken]string{
		TokenTextPrimary:   "#E6EDF3",
		TokenTextSecondary: "#9DA7B3",
		TokenTextMuted:     "#6E7681",

		TokenSurface:         "#0D1117",
		TokenSurfaceElevated: "#161B22",

		TokenBorderDefault: "#30363D",
		TokenBorderFocus:   "#58A6FF",

		TokenAccent: "#58A6FF",

		TokenStatusSuccess: "#3FB950",
		TokenStatusError:   "#F85149",

		TokenButtonText:               "#FFFFFF",
		TokenButtonPrimaryBg:          "#1F6FEB",
		TokenButtonPrimaryFocusBg:     "#388BFD",
		TokenButtonSecondaryBg:        "#30363D",
		TokenButtonSecondaryFocusBg:   "#484F58",
		TokenButtonDestructiveBg:      "#DA3633",
		TokenButtonDestructiveFocusBg: "#F85149",
		TokenButtonGhostFocusBg:       "#21262D",
	},
}

// NordPreset follows the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Light: map[ColorToken]string{
		TokenTextPrimary:   "#2E3440",
		TokenTextSecondary: "#4C566A",
		TokenTextMuted:     "#7B88A1",

		TokenSurface:         "#ECEFF4",
		TokenSurfaceElevated: "#E5E9F0",

		TokenBorderDefault: "#D8DEE9",
		TokenBorderFocus:   "#5E81AC",

		TokenAccent: "#5E81AC",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusError:   "#BF616A",

		TokenButtonText:               "#ECEFF4",
		TokenButtonPrimaryBg:          "#5E81AC",
		TokenButtonPrimaryFocusBg:     "#81A1C1",
		TokenButtonSecondaryBg:        "#D8DEE9",
		TokenButtonSecondaryFocusBg:   "#C2CAD8",
		TokenButtonDestructiveBg:      "#BF616A",
		TokenButtonDestructiveFocusBg: "#D08770",
		TokenButtonGhostFocusBg:       "#E5E9F0",
	},
	Dark: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4",
		TokenTextSecondary: "#D8DEE9",
		TokenTextMuted:     "#616E88",

		TokenSurface:         "#2E3440",
		TokenSurfaceElevated: "#3B4252",

		TokenBorderDefault: "#4C566A",
		TokenBorderFocus:   "#88C0D0",

		TokenAccent: "#88C0D0",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusError:   "#BF616A",

		TokenButtonText:               "#2E3440",
		TokenButtonPrimaryBg:          "#88C0D0",
		TokenButtonPrimaryFocusBg:     "#8FBCBB",
		TokenButtonSecondaryBg:        "#434C5E",
		TokenButtonSecondaryFocusBg:   "#4C566A",
		TokenButtonDestructiveBg:      "#BF616A",
		TokenButtonDestructiveFocusBg: "#D08770",
		TokenButtonGhostFocusBg:       "#3B4252",
	},
}

// HighContrastPreset maximizes legibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Black and white with saturated accents",
	Light: map[ColorToken]string{
		TokenTextPrimary:   "#000000",
		TokenTextSecondary: "#000000",
		TokenTextMuted:     "#333333",

		TokenSurface:         "#FFFFFF",
		TokenSurfaceElevated: "#FFFFFF",

		TokenBorderDefault: "#000000",
		TokenBorderFocus:   "#0000FF",

		TokenAccent: "#0000FF",

		TokenStatusSuccess: "#006400",
		TokenStatusError:   "#B00000",

		TokenButtonText:               "#FFFFFF",
		TokenButtonPrimaryBg:          "#0000FF",
		TokenButtonPrimaryFocusBg:     "#000080",
		TokenButtonSecondaryBg:        "#333333",
		TokenButtonSecondaryFocusBg:   "#000000",
		TokenButtonDestructiveBg:      "#B00000",
		TokenButtonDestructiveFocusBg: "#700000",
		TokenButtonGhostFocusBg:       "#DDDDDD",
	},
	Dark: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#CCCCCC",

		TokenSurface:         "#000000",
		TokenSurfaceElevated: "#000000",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenAccent: "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusError:   "#FF5555",

		TokenButtonText:               "#000000",
		TokenButtonPrimaryBg:          "#FFFF00",
		TokenButtonPrimaryFocusBg:     "#FFFFFF",
		TokenButtonSecondaryBg:        "#CCCCCC",
		TokenButtonSecondaryFocusBg:   "#FFFFFF",
		TokenButtonDestructiveBg:      "#FF5555",
		TokenButtonDestructiveFocusBg: "#FF0000",
		TokenButtonGhostFocusBg:       "#333333",
	},
}
