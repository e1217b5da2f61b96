package modsys

import (
	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/scriptctx"
)

// LoadRequest is what a Loader receives when the module system initializes.
type LoadRequest struct {
	// Name is the extension's dot-delimited namespace.
	Name string
	// EntryPoints are additional global paths the extension defines.
	EntryPoints []string
	// UseTrampoline asks the loader to defer execution until script first
	// touches the namespace or one of the entry points. When false the glue
	// code must run immediately.
	UseTrampoline bool
	// RequireNative is the module system's bridge function.
	RequireNative goja.Value
}

// Loader executes an extension's glue code inside a scripting context.
// Reporting glue-code failures is the loader's job; the module system only
// logs the returned error and moves on.
type Loader interface {
	LoadExtensionCode(sc *scriptctx.Context, req LoadRequest) error
}

// Releaser is implemented by loaders that hold state which must be made inert
// when the module system is destroyed.
type Releaser interface {
	Release()
}

// extensionModuleEntry is the bookkeeping record for one registered extension.
type extensionModuleEntry struct {
	name          string
	loader        Loader
	entryPoints   []string
	useTrampoline bool
}

// ExtensionEntry is a read-only view of a registered extension.
type ExtensionEntry struct {
	Name          string   `json:"name"`
	EntryPoints   []string `json:"entry_points"`
	UseTrampoline bool     `json:"use_trampoline"`
}
