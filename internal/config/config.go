// Package config provides configuration types and defaults for tint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/paths"
	"github.com/zjrosen/tint/internal/theme"
	"github.com/zjrosen/tint/internal/tracing"
)

// Config holds all configuration options for tint.
type Config struct {
	Theme      ThemeConfig      `mapstructure:"theme"`
	Preference PreferenceConfig `mapstructure:"preference"`
	Viewport   ViewportConfig   `mapstructure:"viewport"`
	Observers  ObserversConfig  `mapstructure:"observers"`
	Animation  AnimationConfig  `mapstructure:"animation"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
	Flags      map[string]bool  `mapstructure:"flags"`
}

// ThemeConfig holds appearance options.
type ThemeConfig struct {
	// DefaultMode is written as the preference when none is stored.
	// Valid values: "light", "dark", "system"
	DefaultMode string `mapstructure:"default_mode"`

	// ColorScheme overrides OS color-scheme detection.
	// Valid values: "", "light", "dark"
	ColorScheme string `mapstructure:"color_scheme"`

	// Preset loads a built-in palette: "default", "nord", "high-contrast".
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     button:
	//       primary:
	//         bg: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "accent.dark": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// PreferenceConfig selects where the mode preference lives.
type PreferenceConfig struct {
	// Backend is "sqlite" (default), "file" or "memory".
	Backend string `mapstructure:"backend"`

	// Path of the database or YAML file. Empty uses the config dir.
	Path string `mapstructure:"path"`

	// CacheTTL bounds how long a loaded value is reused. Zero caches until
	// the next write or external change.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Watch reloads the preference when the file backend changes on disk.
	Watch bool `mapstructure:"watch"`

	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// ResolvedPath returns Path with ~ expanded, or the backend's default.
func (p PreferenceConfig) ResolvedPath() string {
	if p.Path != "" {
		return paths.Expand(p.Path)
	}
	return paths.PreferenceFile(p.Backend)
}

// ViewportConfig maps terminal cells to the pixel widths breakpoints use.
type ViewportConfig struct {
	// CellWidth is the assumed width of one terminal column in px.
	CellWidth int `mapstructure:"cell_width"`
}

// ObserversConfig tunes the environment observers.
type ObserversConfig struct {
	VisibilityThreshold float64       `mapstructure:"visibility_threshold"` // (0, 1]
	VisibilityMode      string        `mapstructure:"visibility_mode"`      // "once" or "repeat"
	PointerMagnitude    float64       `mapstructure:"pointer_magnitude"`
	ParallaxSpeed       float64       `mapstructure:"parallax_speed"`
	BreakpointDebounce  time.Duration `mapstructure:"breakpoint_debounce"`
	OSPollInterval      time.Duration `mapstructure:"os_poll_interval"` // 0 disables polling
}

// AnimationConfig holds sequencer options.
type AnimationConfig struct {
	// SequencesDir holds user sequence files. Empty uses the config dir.
	SequencesDir string `mapstructure:"sequences_dir"`

	// DefaultSequence is played by the showcase's play key.
	DefaultSequence string `mapstructure:"default_sequence"`

	// FPS is the frame rate transitions are stepped at.
	FPS int `mapstructure:"fps"`
}

// ResolvedSequencesDir returns SequencesDir with ~ expanded, or the
// default.
func (a AnimationConfig) ResolvedSequencesDir() string {
	if a.SequencesDir != "" {
		return paths.Expand(a.SequencesDir)
	}
	return paths.SequencesDir()
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = paths.TracesFile()

	return Config{
		Theme: ThemeConfig{
			DefaultMode: theme.System.String(),
			Preset:      "default",
		},
		Preference: PreferenceConfig{
			Backend:       "sqlite",
			WatchDebounce: 100 * time.Millisecond,
		},
		Viewport: ViewportConfig{
			CellWidth: 8,
		},
		Observers: ObserversConfig{
			VisibilityThreshold: 0.1,
			VisibilityMode:      "once",
			PointerMagnitude:    20,
			ParallaxSpeed:       0.5,
			BreakpointDebounce:  50 * time.Millisecond,
			OSPollInterval:      5 * time.Second,
		},
		Animation: AnimationConfig{
			DefaultSequence: "intro",
			FPS:             60,
		},
		Tracing: tr,
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidatePreference(c.Preference); err != nil {
		return err
	}
	if c.Viewport.CellWidth <= 0 {
		return fmt.Errorf("viewport.cell_width must be positive, got %d", c.Viewport.CellWidth)
	}
	if err := ValidateObservers(c.Observers); err != nil {
		return err
	}
	if c.Animation.FPS <= 0 || c.Animation.FPS > 240 {
		return fmt.Errorf("animation.fps must be between 1 and 240, got %d", c.Animation.FPS)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTheme checks theme options. Palette names and colors are
// checked when the theme is applied.
func ValidateTheme(t ThemeConfig) error {
	if t.DefaultMode != "" {
		if _, ok := theme.ParseMode(t.DefaultMode); !ok {
			return fmt.Errorf("theme.default_mode must be \"light\", \"dark\" or \"system\", got %q", t.DefaultMode)
		}
	}
	switch t.ColorScheme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.color_scheme must be \"light\", \"dark\" or empty, got %q", t.ColorScheme)
	}
	return nil
}

// ValidatePreference checks preference storage options.
func ValidatePreference(p PreferenceConfig) error {
	switch p.Backend {
	case "", "sqlite", "file", "memory":
	default:
		return fmt.Errorf("preference.backend must be \"sqlite\", \"file\" or \"memory\", got %q", p.Backend)
	}
	if p.CacheTTL < 0 {
		return fmt.Errorf("preference.cache_ttl cannot be negative")
	}
	if p.Watch && p.Backend != "file" {
		return fmt.Errorf("preference.watch requires the \"file\" backend")
	}
	return nil
}

// ValidateObservers checks observer tuning.
func ValidateObservers(o ObserversConfig) error {
	if o.VisibilityThreshold < 0 || o.VisibilityThreshold > 1 {
		return fmt.Errorf("observers.visibility_threshold must be in (0, 1], got %v", o.VisibilityThreshold)
	}
	switch o.VisibilityMode {
	case "", "once", "repeat":
	default:
		return fmt.Errorf("observers.visibility_mode must be \"once\" or \"repeat\", got %q", o.VisibilityMode)
	}
	if o.ParallaxSpeed < 0 {
		return fmt.Errorf("observers.parallax_speed cannot be negative")
	}
	if o.BreakpointDebounce < 0 || o.OSPollInterval < 0 {
		return fmt.Errorf("observers durations cannot be negative")
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tr tracing.Config) error {
	if tr.SampleRate < 0.0 || tr.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tr.SampleRate)
	}

	if tr.Exporter != "" {
		switch tr.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tr.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tr.Enabled {
		if tr.Exporter == "file" && tr.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tr.Exporter == "otlp" && tr.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# tint configuration

theme:
  # Mode used when no preference has been saved: light, dark or system
  default_mode: system
  # Force the OS color scheme instead of detecting it: light or dark
  # color_scheme: dark
  # Palette: default, nord, high-contrast
  preset: default
  # Override individual tokens. A plain key sets both backgrounds.
  # colors:
  #   accent: "#FF79C6"
  #   "surface.dark": "#101010"

preference:
  # Where the light/dark/system choice is kept: sqlite, file or memory
  backend: sqlite
  # path: ~/.config/tint/preferences.db
  # cache_ttl: 0s           # 0 keeps the value until it changes
  # watch: false            # reload when the file backend changes on disk
  # watch_debounce: 100ms

viewport:
  cell_width: 8             # px per terminal column, used for breakpoints

observers:
  visibility_threshold: 0.1
  visibility_mode: once     # once or repeat
  pointer_magnitude: 20
  parallax_speed: 0.5
  breakpoint_debounce: 50ms
  os_poll_interval: 5s      # 0 disables OS color scheme polling

animation:
  # sequences_dir: ~/.config/tint/sequences
  default_sequence: intro
  fps: 60

# flags:
#   pointer-tilt: true
#   parallax: true
#   scroll-reveal: true
#   typewriter: true

# Tracing of sequence runs (OpenTelemetry)
# tracing:
#   enabled: true
#   exporter: file          # none, file, stdout, otlp
#   file_path: ~/.config/tint/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
