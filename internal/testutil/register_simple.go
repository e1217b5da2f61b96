package testutil

import (
	"github.com/specialistvlad/extmod/internal/extension"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/nativemod"
)

// SimpleModule registers at most one native module and one glue extension.
type SimpleModule struct {
	NativeName string
	Native     nativemod.NativeModule

	ExtensionName string
	Source        string
	EntryPoints   []string
}

// Register implements the modsys.Module interface.
func (m *SimpleModule) Register(ms *modsys.ModuleSystem) {
	if m.NativeName != "" && m.Native != nil {
		ms.RegisterNativeModule(m.NativeName, m.Native)
	}
	if m.ExtensionName != "" {
		ms.RegisterExtensionModule(m.ExtensionName,
			extension.New(m.ExtensionName, m.Source, extension.WithLogger(ms.Logger())),
			m.EntryPoints)
	}
}
