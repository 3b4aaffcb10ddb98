package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tint/internal/app"
	"github.com/zjrosen/tint/internal/config"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/paths"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// debugEnv enables debug logging without the flag.
const debugEnv = "TINT_DEBUG"

var (
	version   = "dev"
	cfgFile   string
	debug     bool
	ephemeral bool
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "tint",
	Short: "A reactive light/dark presentation engine for the terminal",
	Long: `tint resolves a light, dark or system appearance preference against the
OS color scheme, persists the choice and drives responsive layout and motion
from it. Running it without a subcommand opens the interactive showcase.`,
	Version:       version,
	SilenceUsage:  true,
	RunE:          runApp,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return configErr
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/tint/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to debug.log (also enabled by "+debugEnv+")")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"keep the preference in memory only")
}

func initConfig() {
	setDefaults(config.Defaults())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .tint/config.yaml (current directory)
		// 2. ~/.config/tint/config.yaml (user config)
		if _, err := os.Stat(paths.LocalConfigFile()); err == nil {
			viper.SetConfigFile(paths.LocalConfigFile())
		} else {
			viper.AddConfigPath(paths.ConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case cfgFile != "":
			configErr = fmt.Errorf("reading config %s: %w", cfgFile, err)
			return
		case errors.As(err, &notFound):
			// No config anywhere: write the commented default for next time.
			defaultPath := paths.ConfigFile()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		default:
			log.WarnErr(log.CatConfig, "reading config, using defaults", err)
		}
	}

	cfg = config.Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		configErr = fmt.Errorf("parsing config: %w", err)
		return
	}
	if ephemeral {
		cfg.Preference.Backend = "memory"
		cfg.Preference.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		configErr = fmt.Errorf("invalid configuration: %w", err)
		return
	}
	configErr = nil
}

func setDefaults(d config.Config) {
	viper.SetDefault("theme.default_mode", d.Theme.DefaultMode)
	viper.SetDefault("theme.preset", d.Theme.Preset)
	viper.SetDefault("preference.backend", d.Preference.Backend)
	viper.SetDefault("preference.watch_debounce", d.Preference.WatchDebounce)
	viper.SetDefault("viewport.cell_width", d.Viewport.CellWidth)
	viper.SetDefault("observers.visibility_threshold", d.Observers.VisibilityThreshold)
	viper.SetDefault("observers.visibility_mode", d.Observers.VisibilityMode)
	viper.SetDefault("observers.pointer_magnitude", d.Observers.PointerMagnitude)
	viper.SetDefault("observers.parallax_speed", d.Observers.ParallaxSpeed)
	viper.SetDefault("observers.breakpoint_debounce", d.Observers.BreakpointDebounce)
	viper.SetDefault("observers.os_poll_interval", d.Observers.OSPollInterval)
	viper.SetDefault("animation.default_sequence", d.Animation.DefaultSequence)
	viper.SetDefault("animation.fps", d.Animation.FPS)
	viper.SetDefault("tracing.enabled", d.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", d.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", d.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// initLogging starts debug logging when requested. The returned cleanup is
// always safe to call.
func initLogging() func() {
	if !debug && os.Getenv(debugEnv) == "" {
		return func() {}
	}
	path := filepath.Join(".", "debug.log")
	cleanup, err := log.InitWithTeaLog(path, "tint")
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug logging disabled: %v\n", err)
		return func() {}
	}
	log.Info(log.CatConfig, "debug logging enabled", "path", path, "config", viper.ConfigFileUsed())
	return cleanup
}

func runApp(cmd *cobra.Command, _ []string) error {
	closeLog := initLogging()
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := newRuntime(ctx, cfg, runtimeOptions{interactive: true})
	if err != nil {
		return err
	}
	defer rt.close()

	zone.NewGlobal()

	model, err := app.New(app.Services{
		Engine:      rt.engine,
		Config:      cfg,
		Sequences:   rt.sequences,
		Tracer:      rt.tracer.Tracer(),
		Preferences: rt.prefs,
	})
	if err != nil {
		return fmt.Errorf("building showcase: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	model.Close()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
