// Package env_vars exposes the process environment to scripts through the
// "env_vars" native module and the "env" namespace.
package env_vars

import (
	_ "embed"
	"os"
	"strings"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/extension"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/nativemod"
)

//go:embed env.js
var glue string

// Module implements the modsys.Module interface for this package.
type Module struct{}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

func newInstance(vm *goja.Runtime) *goja.Object {
	obj := vm.NewObject()
	_ = obj.Set("all", func() map[string]string {
		return Environ()
	})
	_ = obj.Set("get", func(call goja.FunctionCall) goja.Value {
		value, ok := os.LookupEnv(call.Argument(0).String())
		if !ok {
			return goja.Undefined()
		}
		return vm.ToValue(value)
	})
	return obj
}

// Register registers the native module and its glue extension.
func (m *Module) Register(ms *modsys.ModuleSystem) {
	ms.RegisterNativeModule("env_vars", nativemod.Func(newInstance))
	ms.RegisterExtensionModule("env", extension.New("env", glue, extension.WithLogger(ms.Logger())), nil)
}
