package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/tint/internal/anim"
	"github.com/zjrosen/tint/internal/colorscheme"
	"github.com/zjrosen/tint/internal/config"
	"github.com/zjrosen/tint/internal/engine"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/observer"
	"github.com/zjrosen/tint/internal/paths"
	"github.com/zjrosen/tint/internal/preference"
	"github.com/zjrosen/tint/internal/pubsub"
	"github.com/zjrosen/tint/internal/theme"
	"github.com/zjrosen/tint/internal/tracing"
	"github.com/zjrosen/tint/internal/ui/styles"
	"github.com/zjrosen/tint/internal/watcher"
)

// runtimeOptions selects which long-lived parts a command needs.
type runtimeOptions struct {
	// interactive adds the terminal marker, OS polling, the preference
	// watcher, tracing and the sequence catalog.
	interactive bool
}

// runtime is everything a command needs to resolve and change the
// appearance.
type runtime struct {
	opened    *preference.Opened
	engine    *engine.Engine
	scheme    *observer.ColorScheme
	prefs     *pubsub.Broker[theme.Mode]
	watch     *watcher.Watcher
	tracer    *tracing.Provider
	sequences []*anim.Sequence

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// newRuntime opens the preference store and starts the engine. Everything
// it starts is stopped by close.
func newRuntime(ctx context.Context, cfg config.Config, opts runtimeOptions) (_ *runtime, err error) {
	ctx, cancel := context.WithCancel(ctx)
	rt := &runtime{cancel: cancel}
	defer func() {
		if err != nil {
			rt.close()
		}
	}()

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return nil, fmt.Errorf("applying theme: %w", err)
	}

	rt.opened, err = preference.Open(preference.Options{
		Backend:  cfg.Preference.Backend,
		Path:     cfg.Preference.ResolvedPath(),
		CacheTTL: cfg.Preference.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	resolver := colorscheme.Default(cfg.Theme.ColorScheme)
	var marker engine.Marker = engine.EnvMarker{}
	if opts.interactive {
		marker = engine.Markers(engine.LipglossMarker{Rebuild: styles.Rebuild}, engine.EnvMarker{})

		interval := cfg.Observers.OSPollInterval
		poller := colorscheme.NewPoller(resolver, interval)
		rt.scheme = observer.NewColorScheme(poller.Source(), poller.Initial())
		if interval > 0 {
			rt.goRun(func() { poller.Run(ctx) })
		}
	} else {
		// One-shot commands read the OS scheme once.
		rt.scheme = observer.NewColorScheme(observer.NewEmitter[bool](), resolver.Resolve().PrefersDark)
	}

	def, _ := theme.ParseMode(cfg.Theme.DefaultMode)
	rt.engine = engine.New(engine.Options{
		Store:   rt.opened.Store,
		OS:      rt.scheme,
		Marker:  marker,
		Default: def,
	})
	rt.engine.Start(ctx)

	if !opts.interactive {
		return rt, nil
	}

	rt.prefs = pubsub.NewBroker[theme.Mode]()
	if cfg.Preference.Watch && rt.opened.File != nil {
		if err := rt.startWatcher(ctx, cfg.Preference.WatchDebounce); err != nil {
			// The showcase still works without live reload.
			log.WarnErr(log.CatWatcher, "preference watcher disabled", err)
		}
	}

	tcfg := cfg.Tracing
	tcfg.FilePath = paths.Expand(tcfg.FilePath)
	rt.tracer, err = tracing.NewProvider(tcfg)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}

	rt.sequences, err = anim.LoadCatalog(cfg.Animation.ResolvedSequencesDir())
	if err != nil {
		return nil, fmt.Errorf("loading sequences: %w", err)
	}
	return rt, nil
}

func (rt *runtime) startWatcher(ctx context.Context, debounce time.Duration) error {
	wcfg := watcher.DefaultConfig(rt.opened.File.Path())
	if debounce > 0 {
		wcfg.DebounceDur = debounce
	}
	w, err := watcher.New(wcfg)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}
	rt.watch = w
	rt.goRun(func() {
		watcher.Follow(ctx, changes, rt.opened.Cached, rt.prefs, rt.engine.ExternalMode)
	})
	return nil
}

func (rt *runtime) goRun(fn func()) {
	rt.wg.Add(1)
	go func() {
		defer rt.wg.Done()
		fn()
	}()
}

// close stops background work and releases the store. Safe on a partially
// built runtime.
func (rt *runtime) close() {
	rt.cancel()
	if rt.watch != nil {
		_ = rt.watch.Stop()
	}
	rt.wg.Wait()

	if rt.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rt.tracer.Shutdown(ctx); err != nil {
			log.WarnErr(log.CatAnim, "flushing traces", err)
		}
		cancel()
	}
	if rt.engine != nil {
		rt.engine.Close()
	}
	if rt.scheme != nil {
		rt.scheme.Detach()
	}
	if rt.prefs != nil {
		rt.prefs.Close()
	}
	if rt.opened != nil {
		if err := rt.opened.Close(); err != nil {
			log.WarnErr(log.CatStore, "closing preference store", err)
		}
	}
}
