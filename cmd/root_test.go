package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tint/internal/config"
	"github.com/zjrosen/tint/internal/engine"
	"github.com/zjrosen/tint/internal/preference"
	"github.com/zjrosen/tint/internal/pubsub"
	"github.com/zjrosen/tint/internal/testutil"
	"github.com/zjrosen/tint/internal/theme"
)

// writeConfig writes a config using the file backend inside a temp dir and
// returns its path and the preference file path.
func writeConfig(t *testing.T, extra string) (cfgPath, prefPath string) {
	t.Helper()
	dir := t.TempDir()
	prefPath = filepath.Join(dir, "prefs.yaml")
	body := "theme:\n" +
		"  color_scheme: dark\n" +
		"preference:\n" +
		"  backend: file\n" +
		"  path: " + prefPath + "\n" +
		"animation:\n" +
		"  sequences_dir: " + filepath.Join(dir, "sequences") + "\n" +
		extra
	cfgPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	return cfgPath, prefPath
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(engine.AppearanceEnv, "")

	viper.Reset()
	cfgFile, debug, ephemeral = "", false, false
	breakpointCols, sequencesJSON = false, false
	t.Cleanup(viper.Reset)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestMode_GetWithoutPreferenceSavesDefault(t *testing.T) {
	cfgPath, prefPath := writeConfig(t, "")

	out, err := execute(t, "--config", cfgPath, "mode", "get")
	require.NoError(t, err)
	require.Equal(t, "system (dark appearance)\n", out)

	mode, found, err := preference.NewFileStore(prefPath).Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, theme.System, mode)
}

func TestMode_DefaultModeFromConfig(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	// default_mode lives under theme, which writeConfig already opened.
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	body := strings.Replace(string(data), "theme:\n", "theme:\n  default_mode: light\n", 1)
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))

	out, err := execute(t, "--config", cfgPath, "mode", "get")
	require.NoError(t, err)
	require.Equal(t, "light (light appearance)\n", out)
}

func TestMode_SetPersistsAndMarks(t *testing.T) {
	cfgPath, prefPath := writeConfig(t, "")

	out, err := execute(t, "--config", cfgPath, "mode", "set", "dark")
	require.NoError(t, err)
	require.Equal(t, "dark (dark appearance)\n", out)
	require.Equal(t, "dark", os.Getenv(engine.AppearanceEnv))

	mode, found, err := preference.NewFileStore(prefPath).Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, theme.Dark, mode)

	out, err = execute(t, "--config", cfgPath, "mode", "get")
	require.NoError(t, err)
	require.Equal(t, "dark (dark appearance)\n", out)
}

func TestMode_SetRejectsUnknownMode(t *testing.T) {
	cfgPath, prefPath := writeConfig(t, "")

	_, err := execute(t, "--config", cfgPath, "mode", "set", "sepia")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown mode "sepia"`)

	_, statErr := os.Stat(prefPath)
	require.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestMode_ToggleCycles(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")

	_, err := execute(t, "--config", cfgPath, "mode", "set", "light")
	require.NoError(t, err)

	want := []string{
		"dark (dark appearance)\n",
		"system (dark appearance)\n",
		"light (light appearance)\n",
	}
	for _, w := range want {
		out, err := execute(t, "--config", cfgPath, "mode", "toggle")
		require.NoError(t, err)
		require.Equal(t, w, out)
	}
}

func TestMode_InvalidStoredValueFallsBack(t *testing.T) {
	cfgPath, prefPath := writeConfig(t, "")
	require.NoError(t, os.WriteFile(prefPath, []byte(preference.Key+": purple\n"), 0o600))

	out, err := execute(t, "--config", cfgPath, "mode", "get")
	require.NoError(t, err)
	require.Equal(t, "system (dark appearance)\n", out)
}

func TestMode_EphemeralLeavesStoreUntouched(t *testing.T) {
	cfgPath, prefPath := writeConfig(t, "")

	out, err := execute(t, "--config", cfgPath, "--ephemeral", "mode", "set", "dark")
	require.NoError(t, err)
	require.Equal(t, "dark (dark appearance)\n", out)

	_, statErr := os.Stat(prefPath)
	require.True(t, os.IsNotExist(statErr), "memory backend must not touch the file")
}

func TestConfig_InvalidIsRejected(t *testing.T) {
	cfgPath, _ := writeConfig(t, "viewport:\n  cell_width: 0\n")

	_, err := execute(t, "--config", cfgPath, "mode", "get")
	require.Error(t, err)
	require.Contains(t, err.Error(), "viewport.cell_width")
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "breakpoint", "10")
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config")
}

func TestConfig_WritesDefaultWhenNoneFound(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := execute(t, "breakpoint", "800")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, ".config", "tint", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestBreakpoint(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "xs", args: []string{"0"}, want: "0px: xs (mobile), container 0px\n"},
		{name: "threshold belongs to wider class", args: []string{"768"}, want: "768px: md (mobile), container 768px\n"},
		{name: "tablet", args: []string{"800"}, want: "800px: md (tablet), container 768px\n"},
		{name: "desktop", args: []string{"1600"}, want: "1600px: 2xl (desktop), container 1536px\n"},
		{name: "columns", args: []string{"--cols", "120"}, want: "960px: md (tablet), container 768px\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfgPath, "breakpoint"}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestBreakpoint_RejectsBadWidth(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")

	_, err := execute(t, "--config", cfgPath, "breakpoint", "wide")
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-negative integer")
}

func TestSequences_ListsBuiltinsAndUserFiles(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	seqDir := filepath.Join(filepath.Dir(cfgPath), "sequences")
	require.NoError(t, os.MkdirAll(seqDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(seqDir, "wave.yaml"), []byte(
		"name: wave\ndescription: Side to side.\nsteps:\n  - values:\n      x: 10\n    transition: smooth\n"), 0o600))

	out, err := execute(t, "--config", cfgPath, "sequences")
	require.NoError(t, err)
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "intro *")
	require.Contains(t, out, "wave")
	require.Contains(t, out, "Side to side.")

	out, err = execute(t, "--config", cfgPath, "sequences", "--json")
	require.NoError(t, err)

	var listed []sequenceJSON
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	byName := make(map[string]sequenceJSON, len(listed))
	for _, s := range listed {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "pulse")
	require.Equal(t, 1, byName["wave"].Steps)
	require.Equal(t, filepath.Join(seqDir, "wave.yaml"), byName["wave"].Source)
	require.True(t, byName["intro"].Default)
}

func TestRuntime_Interactive(t *testing.T) {
	t.Setenv(engine.AppearanceEnv, "")
	cfg := testutil.NewBuilder(t).
		WithColorScheme("dark").
		WithSequence("wave", "name: wave\nsteps:\n  - values:\n      x: 10\n").
		Build()

	rt, err := newRuntime(context.Background(), cfg, runtimeOptions{interactive: true})
	require.NoError(t, err)
	defer rt.close()

	require.Equal(t, theme.System, rt.engine.State().Mode)
	require.True(t, rt.engine.State().IsDark)
	require.NotNil(t, rt.prefs)
	require.NotNil(t, rt.tracer)
	require.False(t, rt.tracer.Enabled())
	require.Nil(t, rt.watch, "watch is off by default")

	names := make([]string, 0, len(rt.sequences))
	for _, s := range rt.sequences {
		names = append(names, s.Name)
	}
	require.Contains(t, names, "intro")
	require.Contains(t, names, "wave")
}

func TestRuntime_TracingToFile(t *testing.T) {
	t.Setenv(engine.AppearanceEnv, "")
	cfg := testutil.NewBuilder(t).WithTracing().Build()

	rt, err := newRuntime(context.Background(), cfg, runtimeOptions{interactive: true})
	require.NoError(t, err)
	defer rt.close()

	require.True(t, rt.tracer.Enabled())
}

func TestRuntime_WatchFollowsExternalChanges(t *testing.T) {
	t.Setenv(engine.AppearanceEnv, "")
	cfg := testutil.NewBuilder(t).
		WithColorScheme("dark").
		WithWatch(10 * time.Millisecond).
		Build()

	rt, err := newRuntime(context.Background(), cfg, runtimeOptions{interactive: true})
	require.NoError(t, err)
	defer rt.close()
	require.NotNil(t, rt.watch)
	require.True(t, rt.engine.State().IsDark)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := rt.prefs.Subscribe(ctx)

	require.NoError(t, preference.NewFileStore(cfg.Preference.Path).Save(context.Background(), theme.Light))

	select {
	case ev := <-events:
		require.Equal(t, pubsub.PreferenceChangedEvent, ev.Type)
		require.Equal(t, theme.Light, ev.Payload)
	case <-time.After(2 * time.Second):
		require.Fail(t, "timeout waiting for preference event")
	}
	require.Eventually(t, func() bool {
		return rt.engine.State().Mode == theme.Light
	}, time.Second, 10*time.Millisecond)
	require.False(t, rt.engine.State().IsDark)
}

func TestRuntime_BadBackendCleansUp(t *testing.T) {
	cfg := testutil.NewBuilder(t).Build()
	cfg.Preference.Backend = "floppy"

	rt, err := newRuntime(context.Background(), cfg, runtimeOptions{})
	require.Error(t, err)
	require.Nil(t, rt)
}

func TestRuntime_SQLiteBackend(t *testing.T) {
	t.Setenv(engine.AppearanceEnv, "")
	cfg := testutil.NewBuilder(t).
		WithBackend(preference.BackendSQLite).
		WithStoredMode("dark").
		Build()

	rt, err := newRuntime(context.Background(), cfg, runtimeOptions{})
	require.NoError(t, err)

	require.Equal(t, theme.Dark, rt.engine.State().Mode)
	rt.engine.Toggle()
	require.Equal(t, theme.System, rt.engine.State().Mode)
	require.False(t, rt.engine.State().IsDark)
	rt.close()

	raw, ok := testutil.StoredSQLite(t, cfg.Preference.Path)
	require.True(t, ok)
	require.Equal(t, "system", raw)
}

func TestRuntime_CorruptSQLiteRowFallsBackToDefault(t *testing.T) {
	t.Setenv(engine.AppearanceEnv, "")
	cfg := testutil.NewBuilder(t).
		WithBackend(preference.BackendSQLite).
		WithDefaultMode("dark").
		WithStoredMode("sepia").
		Build()

	rt, err := newRuntime(context.Background(), cfg, runtimeOptions{})
	require.NoError(t, err)
	require.Equal(t, theme.Dark, rt.engine.State().Mode)
	rt.close()

	raw, ok := testutil.StoredSQLite(t, cfg.Preference.Path)
	require.True(t, ok)
	require.Equal(t, "dark", raw, "the default replaces the corrupt row")
}

func TestRuntime_MemoryBackend(t *testing.T) {
	t.Setenv(engine.AppearanceEnv, "")
	cfg := testutil.NewBuilder(t).WithBackend(preference.BackendMemory).Build()

	rt, err := newRuntime(context.Background(), cfg, runtimeOptions{})
	require.NoError(t, err)
	defer rt.close()

	rt.engine.SetMode(theme.Dark)
	require.True(t, rt.engine.State().IsDark)
	require.Equal(t, "dark", os.Getenv(engine.AppearanceEnv))

	rt.engine.SetMode(theme.System)
	require.False(t, rt.engine.State().IsDark)
	require.Equal(t, "light", os.Getenv(engine.AppearanceEnv))
}
