// Package testutil builds isolated configurations and seeded preference
// stores for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tint/internal/config"
	"github.com/zjrosen/tint/internal/preference"
)

// sequenceData is a sequence file to write before Build returns.
type sequenceData struct {
	name string
	body string
}

// Builder accumulates test configuration and writes its files in the
// correct order.
type Builder struct {
	t         *testing.T
	dir       string
	cfg       config.Config
	stored    *string
	sequences []sequenceData
}

// NewBuilder returns a builder rooted in a fresh temp dir. The OS scheme
// is forced light, polling and debounce are off and the preference is a
// file in the temp dir.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Defaults()
	cfg.Theme.ColorScheme = "light"
	cfg.Preference.Backend = preference.BackendFile
	cfg.Preference.Path = filepath.Join(dir, "preferences.yaml")
	cfg.Observers.OSPollInterval = 0
	cfg.Observers.BreakpointDebounce = 0
	cfg.Animation.SequencesDir = filepath.Join(dir, "sequences")
	cfg.Animation.FPS = 200
	cfg.Tracing.FilePath = filepath.Join(dir, "traces.jsonl")

	return &Builder{t: t, dir: dir, cfg: cfg}
}

// Dir is the builder's temp dir.
func (b *Builder) Dir() string {
	return b.dir
}

// WithBackend selects the preference backend.
func (b *Builder) WithBackend(backend string) *Builder {
	b.cfg.Preference.Backend = backend
	switch backend {
	case preference.BackendSQLite:
		b.cfg.Preference.Path = filepath.Join(b.dir, "preferences.db")
	case preference.BackendFile:
		b.cfg.Preference.Path = filepath.Join(b.dir, "preferences.yaml")
	}
	return b
}

// WithColorScheme forces the OS scheme: "light", "dark" or "" to detect.
func (b *Builder) WithColorScheme(scheme string) *Builder {
	b.cfg.Theme.ColorScheme = scheme
	return b
}

// WithDefaultMode sets the mode used when nothing is stored.
func (b *Builder) WithDefaultMode(mode string) *Builder {
	b.cfg.Theme.DefaultMode = mode
	return b
}

// WithStoredMode seeds the raw stored value. It need not be a valid mode.
func (b *Builder) WithStoredMode(raw string) *Builder {
	b.stored = &raw
	return b
}

// WithWatch turns on the file watcher with the given debounce.
func (b *Builder) WithWatch(debounce time.Duration) *Builder {
	b.cfg.Preference.Watch = true
	b.cfg.Preference.WatchDebounce = debounce
	return b
}

// WithSequence writes a YAML sequence file into the sequences dir.
func (b *Builder) WithSequence(name, body string) *Builder {
	b.sequences = append(b.sequences, sequenceData{name: name, body: body})
	return b
}

// WithTracing enables the file trace exporter.
func (b *Builder) WithTracing() *Builder {
	b.cfg.Tracing.Enabled = true
	b.cfg.Tracing.Exporter = "file"
	return b
}

// Build writes seeded files and returns the config.
func (b *Builder) Build() config.Config {
	b.t.Helper()

	if len(b.sequences) > 0 {
		require.NoError(b.t, os.MkdirAll(b.cfg.Animation.SequencesDir, 0o750))
		for _, s := range b.sequences {
			path := filepath.Join(b.cfg.Animation.SequencesDir, s.name+".yaml")
			require.NoError(b.t, os.WriteFile(path, []byte(s.body), 0o600))
		}
	}

	if b.stored != nil {
		switch b.cfg.Preference.Backend {
		case preference.BackendFile:
			SeedFile(b.t, b.cfg.Preference.Path, *b.stored)
		case preference.BackendSQLite:
			SeedSQLite(b.t, b.cfg.Preference.Path, *b.stored)
		default:
			b.t.Fatalf("cannot seed the %q backend", b.cfg.Preference.Backend)
		}
	}

	require.NoError(b.t, b.cfg.Validate())
	return b.cfg
}

// SeedFile writes raw as the stored value of a file backend.
func SeedFile(t *testing.T, path, raw string) {
	t.Helper()
	body := preference.Key + ": " + raw + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}
