// Package print exposes a "print" native module and the "print" namespace
// that writes values to the host's output.
package print

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/extension"
	"github.com/specialistvlad/extmod/internal/modsys"
)

//go:embed print.js
var glue string

// Module implements the modsys.Module interface for this package.
type Module struct {
	// Out receives printed lines. Nil means os.Stdout.
	Out io.Writer
}

type native struct {
	out io.Writer
}

// PrintValue writes every key of value sorted by name, one per line.
func PrintValue(out io.Writer, value map[string]any) {
	if value == nil {
		fmt.Fprintln(out, "      (null)")
		return
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(out, "      %s = %q\n", k, fmt.Sprint(value[k]))
	}
}

// NewInstance builds the script-side print object.
func (n *native) NewInstance(vm *goja.Runtime) *goja.Object {
	obj := vm.NewObject()
	_ = obj.Set("value", func(call goja.FunctionCall) goja.Value {
		arg := call.Argument(0)
		if goja.IsUndefined(arg) || goja.IsNull(arg) {
			PrintValue(n.out, nil)
			return goja.Undefined()
		}
		value, ok := arg.Export().(map[string]any)
		if !ok {
			value = map[string]any{"value": arg.Export()}
		}
		PrintValue(n.out, value)
		return goja.Undefined()
	})
	_ = obj.Set("line", func(msg string) {
		fmt.Fprintln(n.out, msg)
	})
	return obj
}

// Register registers the native module and its glue extension.
func (m *Module) Register(ms *modsys.ModuleSystem) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	ms.RegisterNativeModule("print", &native{out: out})
	ms.RegisterExtensionModule("print", extension.New("print", glue, extension.WithLogger(ms.Logger())), nil)
}
