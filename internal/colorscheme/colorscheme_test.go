package colorscheme

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tint/internal/observer"
)

// stubDetector implements Detector for testing.
type stubDetector struct {
	mu          sync.Mutex
	name        string
	priority    int
	available   bool
	prefersDark bool
	detectOk    bool
	calls       int
}

func (s *stubDetector) Name() string    { return s.name }
func (s *stubDetector) Priority() int   { return s.priority }
func (s *stubDetector) Available() bool { return s.available }
func (s *stubDetector) Detect() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.prefersDark, s.detectOk
}

// cachedDetector answers once and repeats itself, like TerminalDetector.
type cachedDetector struct {
	stubDetector
	once sync.Once
	dark bool
}

func (c *cachedDetector) Cached() bool { return true }
func (c *cachedDetector) Detect() (bool, bool) {
	c.once.Do(func() { c.dark, _ = c.stubDetector.Detect() })
	return c.dark, true
}

func (s *stubDetector) set(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefersDark = dark
}

func TestResolver_Override(t *testing.T) {
	tests := []struct {
		override   string
		wantDark   bool
		wantSource string
	}{
		{"dark", true, SourceOverride},
		{"prefer-dark", true, SourceOverride},
		{"Light", false, SourceOverride},
		{"prefer-light", false, SourceOverride},
		{"", true, "stub"},
		{"default", true, "stub"},
	}
	for _, tt := range tests {
		t.Run(tt.override, func(t *testing.T) {
			d := &stubDetector{name: "stub", priority: 10, available: true, prefersDark: true, detectOk: true}
			got := NewResolver(tt.override, d).Resolve()
			require.Equal(t, tt.wantDark, got.PrefersDark)
			require.Equal(t, tt.wantSource, got.Source)
		})
	}
}

func TestResolver_PriorityOrder(t *testing.T) {
	low := &stubDetector{name: "low", priority: 10, available: true, prefersDark: false, detectOk: true}
	high := &stubDetector{name: "high", priority: 50, available: true, prefersDark: true, detectOk: true}

	got := NewResolver("", low, high).Resolve()
	require.Equal(t, "high", got.Source)
	require.True(t, got.PrefersDark)
	require.Zero(t, low.calls)
}

func TestResolver_SkipsUnavailableAndFailing(t *testing.T) {
	unavailable := &stubDetector{name: "unavailable", priority: 100, available: false, prefersDark: true, detectOk: true}
	failing := &stubDetector{name: "failing", priority: 50, available: true, detectOk: false}
	working := &stubDetector{name: "working", priority: 10, available: true, prefersDark: true, detectOk: true}

	got := NewResolver("", unavailable, failing, working).Resolve()
	require.Equal(t, "working", got.Source)
	require.Zero(t, unavailable.calls)
	require.Equal(t, 1, failing.calls)
}

func TestResolver_FallbackIsLight(t *testing.T) {
	r := NewResolver("", &stubDetector{name: "off", available: false})
	require.False(t, r.Available())

	got := r.Resolve()
	require.False(t, got.PrefersDark)
	require.Equal(t, SourceFallback, got.Source)
}

func TestParseGsettings(t *testing.T) {
	tests := []struct {
		out      string
		wantDark bool
		wantOk   bool
	}{
		{"'prefer-dark'\n", true, true},
		{"'prefer-light'\n", false, true},
		{"'default'\n", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		dark, ok := parseGsettings(tt.out)
		require.Equal(t, tt.wantDark, dark, tt.out)
		require.Equal(t, tt.wantOk, ok, tt.out)
	}
}

func TestGsettingsDetector_CommandFailure(t *testing.T) {
	d := &GsettingsDetector{
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
		output: func(context.Context) ([]byte, error) {
			return nil, errors.New("exit 1")
		},
	}
	require.False(t, d.Available())
	_, ok := d.Detect()
	require.False(t, ok)

	d.output = func(context.Context) ([]byte, error) { return []byte("'prefer-dark'"), nil }
	dark, ok := d.Detect()
	require.True(t, ok)
	require.True(t, dark)
}

func TestEnvDetector(t *testing.T) {
	env := map[string]string{}
	d := &EnvDetector{getenv: func(k string) string { return env[k] }}
	require.False(t, d.Available())

	env["TINT_COLOR_SCHEME"] = "prefer-dark"
	require.True(t, d.Available())
	dark, ok := d.Detect()
	require.True(t, ok)
	require.True(t, dark)

	env["TINT_COLOR_SCHEME"] = "sepia"
	_, ok = d.Detect()
	require.False(t, ok)
}

func TestParseColorFGBG(t *testing.T) {
	tests := []struct {
		value    string
		wantDark bool
		wantOk   bool
	}{
		{"15;0", true, true},
		{"0;15", false, true},
		{"0;7", false, true},
		{"15;default;0", true, true},
		{"12;8", true, true},
		{"garbage", false, false},
		{"15;x", false, false},
		{"15;42", false, false},
	}
	for _, tt := range tests {
		dark, ok := parseColorFGBG(tt.value)
		require.Equal(t, tt.wantOk, ok, tt.value)
		require.Equal(t, tt.wantDark, dark, tt.value)
	}
}

func TestPoller_EmitsOnlyOnChange(t *testing.T) {
	d := &stubDetector{name: "stub", priority: 10, available: true, detectOk: true}
	p := NewPoller(NewResolver("", d), time.Hour)
	require.False(t, p.Initial())

	cs := observer.NewColorScheme(p.Source(), p.Initial())
	var got []bool
	cs.Subscribe(func(v bool) { got = append(got, v) })

	require.False(t, p.Poll())
	d.set(true)
	require.True(t, p.Poll())
	require.False(t, p.Poll())
	d.set(false)
	require.True(t, p.Poll())

	require.Equal(t, []bool{true, false}, got)
}

func TestResolver_CachedDetectorsGoLast(t *testing.T) {
	term := &cachedDetector{stubDetector: stubDetector{name: "terminal", priority: priorityTerminal, available: true, detectOk: true}}
	live := &stubDetector{name: "gsettings", priority: priorityGsettings, available: true, detectOk: true}

	r := NewResolver("", term, live)
	require.Equal(t, "gsettings", r.Resolve().Source)

	live.available = false
	got := r.Resolve()
	require.Equal(t, "terminal", got.Source, "cached detectors still answer when nothing live does")
	require.False(t, got.PrefersDark)
}

func TestPoller_SeesLiveChangeBehindCachedDetector(t *testing.T) {
	term := &cachedDetector{stubDetector: stubDetector{name: "terminal", priority: priorityTerminal, available: true, detectOk: true}}
	live := &stubDetector{name: "gsettings", priority: priorityGsettings, available: true, detectOk: true}

	p := NewPoller(NewResolver("", term, live), time.Hour)
	require.False(t, p.Initial())

	var got []bool
	p.Source().Listen(func(v bool) { got = append(got, v) })

	term.set(true)
	live.set(true)
	require.True(t, p.Poll())
	require.Equal(t, []bool{true}, got)
}

func TestTerminalDetector_IsCached(t *testing.T) {
	var d Detector = NewTerminalDetector()
	require.True(t, isCached(d))
	require.False(t, isCached(NewGsettingsDetector()))
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	d := &stubDetector{name: "stub", priority: 10, available: true, detectOk: true}
	p := NewPoller(NewResolver("", d), 5*time.Millisecond)

	changed := make(chan bool, 1)
	p.Source().Listen(func(v bool) {
		select {
		case changed <- v:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	d.set(true)
	select {
	case v := <-changed:
		require.True(t, v)
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for poll")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Run did not stop")
	}
}
