package extension

import (
	"strings"

	"github.com/dop251/goja"
)

// splitPath turns "a.b.c" into its parent segments and the leaf.
func splitPath(path string) ([]string, string) {
	parts := strings.Split(path, ".")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// ensureParent walks segments from the global object, creating empty objects
// for missing or non-object links, and returns the last one.
func ensureParent(vm *goja.Runtime, segments []string) *goja.Object {
	obj := vm.GlobalObject()
	for _, seg := range segments {
		next, ok := obj.Get(seg).(*goja.Object)
		if !ok {
			next = vm.NewObject()
			_ = obj.Set(seg, next)
		}
		obj = next
	}
	return obj
}

// lookupPath reads path from the global object, yielding undefined when a
// link is missing.
func lookupPath(vm *goja.Runtime, path string) goja.Value {
	var v goja.Value = vm.GlobalObject()
	for _, seg := range strings.Split(path, ".") {
		obj, ok := v.(*goja.Object)
		if !ok {
			return goja.Undefined()
		}
		v = obj.Get(seg)
		if v == nil {
			return goja.Undefined()
		}
	}
	return v
}
