package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tint/internal/paths"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "system", cfg.Theme.DefaultMode)
	require.Equal(t, "sqlite", cfg.Preference.Backend)
	require.Equal(t, 8, cfg.Viewport.CellWidth)
	require.Equal(t, "intro", cfg.Animation.DefaultSequence)
	require.False(t, cfg.Tracing.Enabled)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"default mode", func(c *Config) { c.Theme.DefaultMode = "sepia" }, "theme.default_mode"},
		{"color scheme", func(c *Config) { c.Theme.ColorScheme = "auto" }, "theme.color_scheme"},
		{"backend", func(c *Config) { c.Preference.Backend = "redis" }, "preference.backend"},
		{"cache ttl", func(c *Config) { c.Preference.CacheTTL = -time.Second }, "cache_ttl"},
		{"watch needs file", func(c *Config) { c.Preference.Watch = true }, "preference.watch"},
		{"cell width", func(c *Config) { c.Viewport.CellWidth = 0 }, "viewport.cell_width"},
		{"threshold", func(c *Config) { c.Observers.VisibilityThreshold = 1.5 }, "visibility_threshold"},
		{"visibility mode", func(c *Config) { c.Observers.VisibilityMode = "twice" }, "visibility_mode"},
		{"parallax", func(c *Config) { c.Observers.ParallaxSpeed = -1 }, "parallax_speed"},
		{"durations", func(c *Config) { c.Observers.OSPollInterval = -time.Second }, "durations"},
		{"fps", func(c *Config) { c.Animation.FPS = 0 }, "animation.fps"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "kafka" }, "tracing.exporter"},
		{"file path", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.FilePath = ""
		}, "file_path"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidatePreference_WatchWithFile(t *testing.T) {
	require.NoError(t, ValidatePreference(PreferenceConfig{Backend: "file", Watch: true}))
}

func TestPreferenceConfig_ResolvedPath(t *testing.T) {
	require.Equal(t, paths.PreferenceFile("sqlite"), PreferenceConfig{Backend: "sqlite"}.ResolvedPath())
	require.Equal(t, paths.PreferenceFile("file"), PreferenceConfig{Backend: "file"}.ResolvedPath())
	require.Equal(t, filepath.Clean("/tmp/p.yaml"), PreferenceConfig{Path: "/tmp/./p.yaml"}.ResolvedPath())
}

func TestAnimationConfig_ResolvedSequencesDir(t *testing.T) {
	require.Equal(t, paths.SequencesDir(), AnimationConfig{}.ResolvedSequencesDir())
	require.Equal(t, "/srv/seq", AnimationConfig{SequencesDir: "/srv/seq/"}.ResolvedSequencesDir())
}

func TestFlattenedColors(t *testing.T) {
	th := ThemeConfig{Colors: map[string]any{
		"accent": "#111111",
		"button": map[string]any{
			"primary": map[any]any{"bg": "#222222"},
		},
		"surface.dark": "#333333",
	}}
	require.Equal(t, map[string]string{
		"accent":            "#111111",
		"button.primary.bg": "#222222",
		"surface.dark":      "#333333",
	}, th.FlattenedColors())
}

func TestWriteDefaultConfig_RoundTripsThroughViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, "system", cfg.Theme.DefaultMode)
	require.Equal(t, "sqlite", cfg.Preference.Backend)
	require.Equal(t, 50*time.Millisecond, cfg.Observers.BreakpointDebounce)
	require.Equal(t, 5*time.Second, cfg.Observers.OSPollInterval)
	require.Equal(t, 60, cfg.Animation.FPS)
}
