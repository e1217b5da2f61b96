// Package s3 exposes pre-signed URL uploads to scripts through the "s3"
// native module and the "storage.s3" namespace.
package s3

import (
	_ "embed"
	"net/http"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/extension"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/scriptctx"
)

//go:embed s3.js
var glue string

// Module implements the modsys.Module interface for this package.
type Module struct {
	// Client performs uploads. Nil means a fresh client per module system.
	Client *http.Client
}

type native struct {
	sc     *scriptctx.Context
	client *http.Client
}

// NewInstance builds the script-side uploader.
func (n *native) NewInstance(vm *goja.Runtime) *goja.Object {
	obj := vm.NewObject()
	_ = obj.Set("upload", func(sourcePath, uploadURL string) *UploadResult {
		res, err := Upload(n.sc.RunContext(), n.sc.Logger(), n.client, sourcePath, uploadURL)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return res
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
	client := m.Client
	if client == nil {
		client = &http.Client{}
	}
	ms.RegisterNativeModule("s3", &native{sc: ms.Context(), client: client})
	ms.RegisterExtensionModule("storage.s3", extension.New("storage.s3", glue, extension.WithLogger(ms.Logger())), nil)
}
