package app

import (
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/specialistvlad/extmod/internal/modsys"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	modules []modsys.Module
	slots   *modsys.Slots

	httpServer *http.Server

	mu         sync.Mutex
	extensions []modsys.ExtensionEntry
}

// NewApp is the constructor for the main application. With no modules given,
// the compiled-in core modules are registered.
func NewApp(outW io.Writer, config *Config, modules ...modsys.Module) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules(outW)
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  config,
		modules: modules,
		slots:   modsys.NewSlots(),
	}
}

// Slots returns the context bindings. This is primarily for testing.
func (a *App) Slots() *modsys.Slots {
	return a.slots
}

// Extensions returns the extensions of the last initialized module system.
func (a *App) Extensions() []modsys.ExtensionEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.extensions)
}

func (a *App) setExtensions(entries []modsys.ExtensionEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.extensions = entries
}
