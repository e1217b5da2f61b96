// Package http_client exposes outbound HTTP to scripts through the
// "http_client" native module and the "net.http" namespace.
package http_client

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/extension"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/scriptctx"
)

//go:embed http.js
var glue string

// Module implements the modsys.Module interface for this package.
type Module struct {
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

type native struct {
	sc     *scriptctx.Context
	client *http.Client
}

// NewInstance builds the script-side client. Every instance shares one
// connection pool.
func (n *native) NewInstance(vm *goja.Runtime) *goja.Object {
	obj := vm.NewObject()
	_ = obj.Set("request", func(call goja.FunctionCall) goja.Value {
		method := ""
		if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			method = arg.String()
		}
		body := ""
		if arg := call.Argument(2); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			body = arg.String()
		}
		resp, err := Do(n.sc.RunContext(), n.sc.Logger(), n.client, method, call.Argument(1).String(), body)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(resp)
	})
	return obj
}

// Close releases idle connections.
func (n *native) Close() error {
	n.client.CloseIdleConnections()
	return nil
}

// Register registers the native module and its glue extension.
func (m *Module) Register(ms *modsys.ModuleSystem) {
	ms.RegisterNativeModule("http_client", &native{sc: ms.Context(), client: newHttpClient(m.Timeout)})
	ms.RegisterExtensionModule("net.http", extension.New("net.http", glue, extension.WithLogger(ms.Logger())), nil)
}
