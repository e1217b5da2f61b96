package extension

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	parents, leaf := splitPath("tizen.time.zone")
	assert.Equal(t, []string{"tizen", "time"}, parents)
	assert.Equal(t, "zone", leaf)

	parents, leaf = splitPath("print")
	assert.Empty(t, parents)
	assert.Equal(t, "print", leaf)
}

func TestEnsureParentAndLookup(t *testing.T) {
	vm := goja.New()
	_, err := vm.RunString(`var net = 5;`)
	assert.NoError(t, err)

	parent := ensureParent(vm, []string{"net", "http"})
	_ = parent.Set("port", 8080)

	assert.EqualValues(t, 8080, lookupPath(vm, "net.http.port").ToInteger())
	assert.True(t, goja.IsUndefined(lookupPath(vm, "net.socketio.port")))
	assert.True(t, goja.IsUndefined(lookupPath(vm, "missing")))
}
