package modsys

import (
	"log/slog"
	"reflect"

	"github.com/dop251/goja"
)

// bridge backs the requireNative function. The back-reference is cleared by
// Destroy and checked on every call.
type bridge struct {
	system *ModuleSystem
	logger *slog.Logger
}

func (b *bridge) requireNative(call goja.FunctionCall) goja.Value {
	ms := b.system
	if ms == nil {
		b.logger.Warn("Trying to use requireNative from already destroyed module system!")
		return goja.Undefined()
	}
	if len(call.Arguments) < 1 {
		return goja.Undefined()
	}
	// Only string primitives name a module; toString is never called.
	arg := call.Argument(0)
	if t := arg.ExportType(); t == nil || t.Kind() != reflect.String {
		return goja.Undefined()
	}
	name := arg.String()

	obj, ok := ms.Resolve(name)
	if !ok {
		ms.logger.Debug("requireNative found no module.", "name", name)
		return goja.Undefined()
	}
	return obj
}

func (b *bridge) invalidate() {
	b.system = nil
}
