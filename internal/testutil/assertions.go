package testutil

import (
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/require"
)

// AssertLogged fails unless the captured log contains substr.
func AssertLogged(t *testing.T, h *Harness, substr string) {
	t.Helper()
	require.True(t,
		strings.Contains(h.Logs.String(), substr),
		"expected %q in log output:\n%s", substr, h.Logs.String(),
	)
}

// AssertUndefined fails unless v is the undefined value.
func AssertUndefined(t *testing.T, v goja.Value) {
	t.Helper()
	require.True(t, goja.IsUndefined(v), "expected undefined, got %v", v)
}
