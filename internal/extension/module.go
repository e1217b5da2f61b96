// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package extension

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/scriptctx"
)

// ErrReleased is returned when a released module is asked to load.
var ErrReleased = errors.New("extension module already released")

const (
	wrapperHead = "(function(exports, extension, requireNative) {\n"
	wrapperTail = "\n})"
)

// Module is the loader for one extension. It implements modsys.Loader and
// modsys.Releaser.
type Module struct {
	name     string
	source   string
	settings map[string]any
	logger   *slog.Logger

	program *goja.Program

	sc          *scriptctx.Context
	req         modsys.LoadRequest
	trampolines []string
	loaded      bool
	released    bool
}

// Option configures a Module.
type Option func(*Module)

// WithSettings exposes settings to the glue code as extension.settings.
func WithSettings(settings map[string]any) Option {
	return func(m *Module) {
		m.settings = maps.Clone(settings)
	}
}

// WithLogger sets the logger used for failures that happen inside
// trampolines, where no caller can receive an error.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Module) {
		m.logger = logger
	}
}

// New creates the loader for the extension called name with the given glue
// source.
func New(name, source string, opts ...Option) *Module {
	m := &Module{
		name:   name,
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("extension", name)
	return m
}

// Name returns the extension name.
func (m *Module) Name() string {
	return m.name
}

// Loaded reports whether the glue code has run.
func (m *Module) Loaded() bool {
	return m.loaded
}

// LoadExtensionCode compiles the glue code and either runs it or installs
// trampolines, depending on req.UseTrampoline.
func (m *Module) LoadExtensionCode(sc *scriptctx.Context, req modsys.LoadRequest) error {
	if m.released {
		return ErrReleased
	}
	if m.sc != nil {
		return fmt.Errorf("extension '%s' already attached to a script context", m.name)
	}

	program, err := goja.Compile(m.name, wrapperHead+m.source+wrapperTail, false)
	if err != nil {
		return fmt.Errorf("failed to compile extension '%s': %w", m.name, err)
	}
	m.program = program
	m.sc = sc
	m.req = req

	if !req.UseTrampoline {
		m.logger.Debug("Loading extension code eagerly.")
		return m.load()
	}

	// Installing an accessor below a path that is itself a trampoline reads
	// that path, which may load this very module; stop once that happens.
	for _, path := range append([]string{req.Name}, req.EntryPoints...) {
		if m.loaded {
			break
		}
		m.installTrampoline(path)
	}
	m.logger.Debug("Installed trampolines.", "paths", m.trampolines)
	return nil
}

// Release makes the module inert. Trampolines that script still holds answer
// undefined afterwards.
func (m *Module) Release() {
	m.released = true
	m.sc = nil
	m.program = nil
}

func (m *Module) installTrampoline(path string) {
	vm := m.sc.Runtime()
	segments, leaf := splitPath(path)
	parent := ensureParent(vm, segments)

	getter := vm.ToValue(func(goja.FunctionCall) goja.Value {
		if m.released {
			m.logger.Warn("Trampoline used after the module system was destroyed.", "path", path)
			return goja.Undefined()
		}
		if err := m.load(); err != nil {
			m.logger.Error("Failed to load extension code from trampoline.", "path", path, "error", err)
			return goja.Undefined()
		}
		return lookupPath(vm, path)
	})

	if err := parent.DefineAccessorProperty(leaf, getter, nil, goja.FLAG_TRUE, goja.FLAG_TRUE); err != nil {
		m.logger.Warn("Failed to install trampoline.", "path", path, "error", err)
		return
	}
	m.trampolines = append(m.trampolines, path)
}

func (m *Module) removeTrampolines() {
	vm := m.sc.Runtime()
	for _, path := range m.trampolines {
		segments, leaf := splitPath(path)
		parent := ensureParent(vm, segments)
		_ = parent.Delete(leaf)
	}
	m.trampolines = nil
}

// load runs the glue code once with the namespace object as exports.
func (m *Module) load() error {
	if m.released {
		return ErrReleased
	}
	if m.loaded {
		return nil
	}
	m.loaded = true
	m.removeTrampolines()

	vm := m.sc.Runtime()
	segments, leaf := splitPath(m.req.Name)
	parent := ensureParent(vm, segments)
	exports, ok := parent.Get(leaf).(*goja.Object)
	if !ok {
		exports = vm.NewObject()
		if err := parent.Set(leaf, exports); err != nil {
			return fmt.Errorf("failed to install namespace '%s': %w", m.req.Name, err)
		}
	}

	fnValue, err := vm.RunProgram(m.program)
	if err != nil {
		return fmt.Errorf("failed to evaluate extension '%s': %w", m.name, err)
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return fmt.Errorf("extension '%s' wrapper is not a function", m.name)
	}

	requireNative := m.req.RequireNative
	if requireNative == nil {
		requireNative = goja.Undefined()
	}
	if _, err := fn(goja.Undefined(), exports, m.describe(vm), requireNative); err != nil {
		return fmt.Errorf("extension '%s' threw during load: %w", m.name, err)
	}
	m.logger.Debug("Extension code loaded.", "trampoline", m.req.UseTrampoline)
	return nil
}

// describe builds the extension argument handed to the glue code.
func (m *Module) describe(vm *goja.Runtime) *goja.Object {
	obj := vm.NewObject()
	_ = obj.Set("name", m.name)
	_ = obj.Set("useTrampoline", m.req.UseTrampoline)
	entryPoints := make([]any, 0, len(m.req.EntryPoints))
	for _, ep := range m.req.EntryPoints {
		entryPoints = append(entryPoints, ep)
	}
	_ = obj.Set("entryPoints", vm.NewArray(entryPoints...))
	settings := m.settings
	if settings == nil {
		settings = map[string]any{}
	}
	_ = obj.Set("settings", vm.ToValue(settings))
	return obj
}
