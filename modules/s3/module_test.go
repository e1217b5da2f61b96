package s3

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/extmod/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type received struct {
	method      string
	contentType string
	body        string
}

func newUploadServer(t *testing.T, status int) (*httptest.Server, *received) {
	t.Helper()
	got := &received{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		got.body = string(body)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, got
}

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok":true}`), 0600))
	return path
}

func TestModule_UploadFromScript(t *testing.T) {
	// --- Arrange ---
	server, got := newUploadServer(t, http.StatusOK)
	h := testutil.NewHarness(t, &Module{}).Initialize(t)
	vm := h.Context.Runtime()
	require.NoError(t, vm.Set("source", writeSource(t)))
	require.NoError(t, vm.Set("target", server.URL+"/bucket/report.json"))

	// --- Act ---
	v := h.Eval(t, `
		var r = storage.s3.upload(source, target);
		r.success + " " + r.status;
	`)

	// --- Assert ---
	assert.Equal(t, "true 200 OK", v.String())
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, `{"ok":true}`, got.body)
}

func TestModule_UploadFailures(t *testing.T) {
	server, _ := newUploadServer(t, http.StatusForbidden)
	h := testutil.NewHarness(t, &Module{}).Initialize(t)
	vm := h.Context.Runtime()
	require.NoError(t, vm.Set("source", writeSource(t)))
	require.NoError(t, vm.Set("target", server.URL))
	require.NoError(t, vm.Set("missing", filepath.Join(t.TempDir(), "missing.bin")))

	testCases := []struct {
		name   string
		script string
		want   string
	}{
		{name: "rejected by server", script: `storage.s3.upload(source, target)`, want: "S3 upload failed with status: 403 Forbidden"},
		{name: "missing source", script: `storage.s3.upload(missing, target)`, want: "failed to open source file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := h.EvalErr(tc.script)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
