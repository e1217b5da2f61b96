// Package socketio exposes a Socket.IO emit-and-wait client to scripts
// through the "socketio" native module and the "net.socketio" namespace.
package socketio

import (
	_ "embed"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/extension"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/scriptctx"
)

//go:embed socketio.js
var glue string

// Module implements the modsys.Module interface for this package.
type Module struct{}

type native struct {
	sc *scriptctx.Context
}

// requestFromObject reads the script-side options object.
func requestFromObject(obj *goja.Object) *Request {
	str := func(key string) string {
		v := obj.Get(key)
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			return ""
		}
		return v.String()
	}
	req := &Request{
		URL:       str("url"),
		Namespace: str("namespace"),
		OnEvent:   str("on_event"),
		EmitEvent: str("emit_event"),
		Timeout:   str("timeout"),
	}
	if v := obj.Get("emit_data"); v != nil {
		req.EmitData = v.Export()
	}
	if v := obj.Get("insecure_skip_verify"); v != nil {
		req.InsecureSkipVerify = v.ToBoolean()
	}
	return req
}

// NewInstance builds the script-side client.
func (n *native) NewInstance(vm *goja.Runtime) *goja.Object {
	obj := vm.NewObject()
	_ = obj.Set("request", func(call goja.FunctionCall) goja.Value {
		arg := call.Argument(0)
		if goja.IsUndefined(arg) || goja.IsNull(arg) {
			panic(vm.NewTypeError("socketio.request expects an options object"))
		}
		resp, err := Do(n.sc.RunContext(), n.sc.Logger(), requestFromObject(arg.ToObject(vm)))
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(resp)
	})
	return obj
}

// Register registers the native module and its glue extension.
func (m *Module) Register(ms *modsys.ModuleSystem) {
	ms.RegisterNativeModule("socketio", &native{sc: ms.Context()})
	ms.RegisterExtensionModule("net.socketio", extension.New("net.socketio", glue, extension.WithLogger(ms.Logger())), nil)
}
