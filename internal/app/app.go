// Package app wires the keybinding registry into a small terminal reader.
//
// An App owns the configuration, logger, action catalog, registry, translator
// and the Viewer model the bound actions operate on. RunScreen drives a tcell
// screen: key presses are resolved through the registry, and changes to the
// bindings file on disk are applied on the event loop goroutine.
package app

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/i18n"
	"github.com/dshills/keybind/internal/input/catalog"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/script"
	"github.com/dshills/keybind/internal/watcher"
)

// DefaultPages is the length of the demo document.
const DefaultPages = 120

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultPath.
	ConfigPath string

	// Config replaces loading from ConfigPath when set.
	Config *config.Config

	// BindingsPath overrides keybindings.path.
	BindingsPath string

	// LogLevel overrides logging.level.
	LogLevel string

	// Language overrides ui.language.
	Language string

	// LogOutput receives log lines when no log file is configured.
	// Defaults to os.Stderr.
	LogOutput io.Writer

	// Store replaces the bindings file. Watching is disabled.
	Store keymap.Store

	// NoWatch disables watching the bindings file regardless of
	// keybindings.watch.
	NoWatch bool

	// Pages is the demo document length. Defaults to DefaultPages.
	Pages int
}

// App is the composed application.
type App struct {
	cfg       *config.Config
	log       *Logger
	logCloser io.Closer

	catalog  *catalog.Catalog
	registry *keymap.Registry
	tr       *i18n.Translator
	viewer   *Viewer
	commands map[string]*script.Command
	watcher  *watcher.Watcher

	running   atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New loads the configuration and builds every component.
func New(opts Options) (*App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	log, closer, err := OpenLogger(cfg.Logging, out)
	if err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	a := &App{
		cfg:       cfg,
		log:       log,
		logCloser: closer,
		catalog:   catalog.Default(),
		commands:  make(map[string]*script.Command),
	}

	pages := opts.Pages
	if pages <= 0 {
		pages = DefaultPages
	}
	a.viewer = NewViewer(pages)

	a.tr, err = i18n.New(cfg.UI.Language)
	if err != nil {
		a.Close()
		return nil, &InitError{Component: "i18n", Err: err}
	}

	store := opts.Store
	if store == nil {
		store = keymap.NewFileStore(cfg.Keybindings.Path)
	}
	a.registry = keymap.NewRegistry(a.catalog,
		keymap.WithStore(store),
		keymap.WithLogger(log.WithComponent("keymap")),
	)

	if err := a.registerActions(); err != nil {
		a.Close()
		return nil, &InitError{Component: "keymap", Err: err}
	}

	if opts.Store == nil && !opts.NoWatch && cfg.Keybindings.Watch {
		if err := a.startWatcher(); err != nil {
			log.Warn("%v", NewComponentError("watcher", "watch "+cfg.Keybindings.Path, err))
		}
	}

	return a, nil
}

// loadConfig resolves the configuration and applies the option overrides.
func loadConfig(opts Options) (*config.Config, error) {
	cfg := opts.Config
	if cfg == nil {
		path := opts.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if opts.BindingsPath != "" {
		cfg.Keybindings.Path = opts.BindingsPath
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Language != "" {
		cfg.UI.Language = opts.Language
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// registerActions registers the viewer operations and the configured
// commands in catalog order.
func (a *App) registerActions() error {
	viewerActions := a.viewer.actions()
	log := a.log.WithComponent("script")

	sources := make(map[string]string, len(a.cfg.Commands))
	for slot, src := range a.cfg.Commands {
		name, ok := config.CommandAction(slot)
		if !ok {
			log.Warn("ignoring command slot %q", slot)
			continue
		}
		sources[name] = src
	}

	for _, e := range a.catalog.Entries() {
		if fn, ok := viewerActions[e.Name]; ok {
			if err := a.registry.Register(e.Name, DefaultBindings(e.Name), keymap.Do(fn)); err != nil {
				return err
			}
			continue
		}

		src, ok := sources[e.Name]
		if !ok {
			continue
		}
		cmd, err := script.Compile(e.Name, src, script.WithNotifier(a.viewer.Notify))
		if err != nil {
			log.Error("%v", err)
			continue
		}
		a.commands[e.Name] = cmd
		if err := a.registry.Register(e.Name, DefaultBindings(e.Name), cmd); err != nil {
			return err
		}
	}
	return nil
}

// startWatcher watches the bindings file, creating its directory if needed.
func (a *App) startWatcher() error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.Keybindings.Path), 0o755); err != nil {
		return err
	}
	w, err := watcher.New(a.cfg.Keybindings.Path)
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *Logger {
	return a.log
}

// Catalog returns the action catalog.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Registry returns the binding registry.
func (a *App) Registry() *keymap.Registry {
	return a.registry
}

// Translator returns the translator for the configured language.
func (a *App) Translator() *i18n.Translator {
	return a.tr
}

// Viewer returns the reading state.
func (a *App) Viewer() *Viewer {
	return a.viewer
}

// Commands returns the names of the actions backed by a script, in catalog
// order.
func (a *App) Commands() []string {
	names := make([]string, 0, len(a.commands))
	for _, name := range a.catalog.Names() {
		if _, ok := a.commands[name]; ok {
			names = append(names, name)
		}
	}
	return slices.Clip(names)
}

// Watching reports whether the bindings file is watched.
func (a *App) Watching() bool {
	return a.watcher != nil
}

// Close stops the watcher and closes the log file. It is safe to call more
// than once.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		var errs []error
		if a.watcher != nil {
			errs = append(errs, a.watcher.Close())
		}
		if a.logCloser != nil {
			errs = append(errs, a.logCloser.Close())
		}
		a.closeErr = errors.Join(errs...)
	})
	return a.closeErr
}
