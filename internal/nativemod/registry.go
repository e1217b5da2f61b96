package nativemod

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/dop251/goja"
)

// NativeModule produces a fresh script-visible instance each time it is asked.
type NativeModule interface {
	NewInstance(vm *goja.Runtime) *goja.Object
}

// Func adapts an ordinary function to the NativeModule interface.
type Func func(vm *goja.Runtime) *goja.Object

// NewInstance calls f(vm).
func (f Func) NewInstance(vm *goja.Runtime) *goja.Object {
	return f(vm)
}

// Registry maps module names to their factories.
type Registry struct {
	modules map[string]NativeModule
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		modules: make(map[string]NativeModule),
	}
}

// Register stores module under name. It panics if name is empty, module is
// nil, or name is already taken.
func (r *Registry) Register(name string, module NativeModule) {
	if name == "" {
		panic("native module name must not be empty")
	}
	if module == nil {
		panic(fmt.Sprintf("native module '%s' is nil", name))
	}
	if _, exists := r.modules[name]; exists {
		panic(fmt.Sprintf("native module with name '%s' already registered", name))
	}
	slog.Debug("Registering native module.", "name", name)
	r.modules[name] = module
}

// Resolve creates a new instance of the module registered under name. It
// reports false for empty or unknown names, and when the factory yields nil.
func (r *Registry) Resolve(vm *goja.Runtime, name string) (*goja.Object, bool) {
	if name == "" {
		return nil, false
	}
	module, ok := r.modules[name]
	if !ok {
		return nil, false
	}
	obj := module.NewInstance(vm)
	if obj == nil {
		return nil, false
	}
	return obj, true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.modules[name]
	return ok
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// Names returns the registered names in lexicographic order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Close releases every module and empties the registry. Modules implementing
// io.Closer are closed; their errors are joined.
func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.Names() {
		if c, ok := r.modules[name].(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing native module '%s': %w", name, err))
			}
		}
	}
	clear(r.modules)
	return errors.Join(errs...)
}
