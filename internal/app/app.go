package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"

	"easel/internal/config"
	"easel/internal/event"
	"easel/internal/history"
	"easel/internal/scene"
	"easel/internal/script"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit")

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty uses defaults.
	ConfigPath string
}

// App wires the scene, the history engine, and the terminal UI together.
type App struct {
	opts Options

	bus    event.Bus
	scene  *scene.Scene
	engine *history.Engine
	runner *script.Runner

	cfgMu      sync.RWMutex
	cfg        config.Config
	cfgWatcher *config.Watcher

	screen tcell.Screen

	// mode state for the key handler
	moving  bool
	status  string
	palette int

	shutdownOnce sync.Once
}

// New creates the application: it loads configuration, builds the bus,
// the scene, and the history engine, and attaches optional Lua hooks.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus(event.WithPanicHandler(func(env event.Envelope, recovered any) {
		log.Printf("handler panic on %s: %v", env.Topic, recovered)
	}))

	sc := scene.New(bus)

	eng, err := history.New(context.Background(), bus, sc,
		history.WithMaxEntries(cfg.History.MaxEntries))
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("creating history engine: %w", err)
	}

	a := &App{
		opts:   opts,
		bus:    bus,
		scene:  sc,
		engine: eng,
		cfg:    cfg,
	}

	if cfg.Script.Enabled {
		runner, err := script.NewRunner(cfg.Script.Path)
		if err != nil {
			a.Shutdown()
			return nil, err
		}
		if err := runner.Attach(bus); err != nil {
			runner.Close()
			a.Shutdown()
			return nil, err
		}
		a.runner = runner
	}

	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, a.applyConfig,
			config.WithErrorHandler(func(err error) {
				log.Printf("config reload failed: %v", err)
			}))
		if err == nil {
			a.cfgWatcher = watcher
		} else {
			// Live reload is best effort; the app runs fine without it.
			log.Printf("config watcher unavailable: %v", err)
		}
	}

	return a, nil
}

// applyConfig swaps in a freshly reloaded configuration. The history cap
// takes effect immediately; script and UI toggles apply on next use.
func (a *App) applyConfig(cfg config.Config) {
	a.cfgMu.Lock()
	a.cfg = cfg
	a.cfgMu.Unlock()

	a.engine.SetMaxEntries(cfg.History.MaxEntries)
}

// statusLineEnabled reports the current status line setting.
func (a *App) statusLineEnabled() bool {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg.UI.StatusLine
}

// Run initializes the terminal and enters the main event loop.
// It returns ErrQuit on a normal exit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	a.screen = screen
	defer screen.Fini()

	for {
		a.draw()

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if err := a.handleKey(context.Background(), ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return ErrQuit
				}
				// Operational errors show in the status line; the loop
				// keeps running.
				a.status = err.Error()
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			// Screen finalized underneath us.
			return ErrQuit
		}
	}
}

// Shutdown releases every resource. Safe to call multiple times and safe
// to call while Run is blocked in PollEvent.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.cfgWatcher != nil {
			_ = a.cfgWatcher.Close()
		}
		if a.runner != nil {
			a.runner.Close()
		}
		a.engine.Dispose()
		a.bus.Close()
		if a.screen != nil {
			a.screen.Fini()
		}
	})
}
