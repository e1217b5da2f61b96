// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package modsys

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/ctxlog"
	"github.com/specialistvlad/extmod/internal/nativemod"
	"github.com/specialistvlad/extmod/internal/scriptctx"
	"github.com/specialistvlad/extmod/internal/trampoline"
)

var (
	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("module system already initialized")
	// ErrDestroyed is returned when a destroyed module system is used.
	ErrDestroyed = errors.New("module system already destroyed")
)

// Module is implemented by packages that contribute native modules and glue
// extensions to a module system.
type Module interface {
	Register(ms *ModuleSystem)
}

// ModuleSystem binds extension and native modules into one scripting context.
type ModuleSystem struct {
	sc         *scriptctx.Context
	logger     *slog.Logger
	native     *nativemod.Registry
	extensions []*extensionModuleEntry

	bridge        *bridge
	requireNative goja.Value

	initialized bool
	destroyed   bool
}

// New creates the module system for sc. The logger is taken from ctx.
func New(ctx context.Context, sc *scriptctx.Context) *ModuleSystem {
	logger := ctxlog.FromContext(ctxlog.With(ctx, "script_context", sc.ID().String()))

	ms := &ModuleSystem{
		sc:     sc,
		logger: logger,
		native: nativemod.New(),
	}
	ms.bridge = &bridge{system: ms, logger: logger}
	ms.requireNative = sc.Runtime().ToValue(ms.bridge.requireNative)
	return ms
}

// Context returns the bound scripting context, or nil after Destroy.
func (ms *ModuleSystem) Context() *scriptctx.Context {
	return ms.sc
}

// Logger returns the logger carrying this system's script context.
func (ms *ModuleSystem) Logger() *slog.Logger {
	return ms.logger
}

// RegisterExtensionModule adds an extension under name. A duplicate name is
// logged and ignored; the first registration wins.
func (ms *ModuleSystem) RegisterExtensionModule(name string, loader Loader, entryPoints []string) {
	if name == "" || loader == nil {
		ms.logger.Warn("Can't register Extension Module without a name and a loader.", "extension", name)
		return
	}
	if ms.destroyed {
		ms.logger.Warn("Can't register Extension Module because the module system was destroyed.", "extension", name)
		return
	}
	if ms.containsExtensionModule(name) {
		ms.logger.Warn("Can't register Extension Module in the Module System because name was already registered.", "extension", name)
		return
	}
	if ms.initialized {
		ms.logger.Debug("Extension Module registered after Initialize; it will not be loaded.", "extension", name)
	}
	ms.extensions = append(ms.extensions, &extensionModuleEntry{
		name:          name,
		loader:        loader,
		entryPoints:   slices.Clone(entryPoints),
		useTrampoline: true,
	})
	ms.logger.Debug("Registered Extension Module.", "extension", name, "entry_points", entryPoints)
}

// RegisterNativeModule adds a native module. It panics on a duplicate name.
func (ms *ModuleSystem) RegisterNativeModule(name string, module nativemod.NativeModule) {
	ms.native.Register(name, module)
}

// Resolve returns a new instance of the named native module.
func (ms *ModuleSystem) Resolve(name string) (*goja.Object, bool) {
	if ms.destroyed {
		return nil, false
	}
	return ms.native.Resolve(ms.sc.Runtime(), name)
}

// RequireNative returns the script-visible requireNative function. The same
// value is returned on every call.
func (ms *ModuleSystem) RequireNative() goja.Value {
	return ms.requireNative
}

// NativeModuleNames lists the registered native modules.
func (ms *ModuleSystem) NativeModuleNames() []string {
	return ms.native.Names()
}

// Extensions returns the registered extensions in their current order.
func (ms *ModuleSystem) Extensions() []ExtensionEntry {
	out := make([]ExtensionEntry, 0, len(ms.extensions))
	for _, e := range ms.extensions {
		out = append(out, ExtensionEntry{
			Name:          e.name,
			EntryPoints:   slices.Clone(e.entryPoints),
			UseTrampoline: e.useTrampoline,
		})
	}
	return out
}

// Initialize decides which extensions use trampolines and then asks every
// loader to load its code. It runs once.
func (ms *ModuleSystem) Initialize(ctx context.Context) error {
	if ms.destroyed {
		return ErrDestroyed
	}
	if ms.initialized {
		return ErrAlreadyInitialized
	}
	ms.initialized = true

	ms.markModulesWithTrampoline()

	for _, e := range ms.extensions {
		if err := ctx.Err(); err != nil {
			return err
		}
		req := LoadRequest{
			Name:          e.name,
			EntryPoints:   slices.Clone(e.entryPoints),
			UseTrampoline: e.useTrampoline,
			RequireNative: ms.requireNative,
		}
		if err := e.loader.LoadExtensionCode(ms.sc, req); err != nil {
			ms.logger.Error("Failed to load extension code.", "extension", e.name, "error", err)
			continue
		}
	}
	ms.logger.Info("Module system initialized.", "extensions", len(ms.extensions), "native_modules", ms.native.Len())
	return nil
}

func (ms *ModuleSystem) markModulesWithTrampoline() {
	flags := trampoline.Mark(ms.extensions, func(e *extensionModuleEntry) string { return e.name })
	for i, e := range ms.extensions {
		e.useTrampoline = flags[i]
		if !e.useTrampoline {
			ms.logger.Debug("Extension should not use trampoline.", "extension", e.name)
		}
	}
}

func (ms *ModuleSystem) containsExtensionModule(name string) bool {
	return slices.ContainsFunc(ms.extensions, func(e *extensionModuleEntry) bool {
		return e.name == name
	})
}

// Destroy releases extension modules, then native modules, then clears the
// context binding. Script-held requireNative functions answer undefined from
// then on. Calling Destroy more than once is a no-op.
func (ms *ModuleSystem) Destroy() error {
	if ms.destroyed {
		return nil
	}
	ms.destroyed = true

	for _, e := range ms.extensions {
		if r, ok := e.loader.(Releaser); ok {
			r.Release()
		}
	}
	ms.extensions = nil

	err := ms.native.Close()

	ms.bridge.invalidate()
	ms.sc = nil
	ms.logger.Debug("Module system destroyed.")
	return err
}
