package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/extmod/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under a temp dir and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func TestLoadDir_FullDefinition(t *testing.T) {
	// --- Arrange ---
	root := writeTree(t, map[string]string{
		"tizen/manifest.hcl": `
			extension "tizen" {
				source = "tizen.js"
			}

			extension "tizen.time" {
				source       = "time/time.js"
				entry_points = ["tizen.TZDate", "tizen.TimeDuration"]
				settings = {
					zone    = "UTC"
					offsets = [1, 2.5]
					strict  = true
					nested  = { depth = 2 }
				}
			}
		`,
		"tizen/tizen.js":     "exports.root = true;",
		"tizen/time/time.js": "exports.now = Date.now;",
	})
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	defs, err := LoadDir(ctx, root)

	// --- Assert ---
	require.NoError(t, err)
	want := []*Definition{
		{
			Name:       "tizen",
			SourcePath: filepath.Join(root, "tizen/tizen.js"),
			Source:     "exports.root = true;",
			FilePath:   filepath.Join(root, "tizen/manifest.hcl"),
		},
		{
			Name:        "tizen.time",
			SourcePath:  filepath.Join(root, "tizen/time/time.js"),
			Source:      "exports.now = Date.now;",
			EntryPoints: []string{"tizen.TZDate", "tizen.TimeDuration"},
			Settings: map[string]any{
				"zone":    "UTC",
				"offsets": []any{1.0, 2.5},
				"strict":  true,
				"nested":  map[string]any{"depth": 2.0},
			},
			FilePath: filepath.Join(root, "tizen/manifest.hcl"),
		},
	}
	if diff := cmp.Diff(want, defs, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("LoadDir() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDir_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"bad.hcl": `extension "x" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing source attribute",
			files:   map[string]string{"m.hcl": `extension "x" {}`},
			wantErr: "Missing required argument",
		},
		{
			name:    "unknown attribute",
			files:   map[string]string{"m.hcl": "extension \"x\" {\n  source = \"x.js\"\n  color = \"red\"\n}", "x.js": ""},
			wantErr: "Unsupported argument",
		},
		{
			name:    "unreadable source",
			files:   map[string]string{"m.hcl": `extension "x" { source = "nope.js" }`},
			wantErr: "Unreadable extension source",
		},
		{
			name:    "entry points not strings",
			files:   map[string]string{"m.hcl": "extension \"x\" {\n  source = \"x.js\"\n  entry_points = [{ a = 1 }]\n}", "x.js": ""},
			wantErr: "Invalid entry_points",
		},
		{
			name:    "settings not an object",
			files:   map[string]string{"m.hcl": "extension \"x\" {\n  source = \"x.js\"\n  settings = \"flat\"\n}", "x.js": ""},
			wantErr: "Invalid settings",
		},
		{
			name:    "empty name",
			files:   map[string]string{"m.hcl": `extension "" { source = "x.js" }`, "x.js": ""},
			wantErr: "Empty extension name",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := writeTree(t, tc.files)
			_, err := LoadDir(ctxlog.Discard(context.Background()), root)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadDir_NoManifests(t *testing.T) {
	root := writeTree(t, map[string]string{"readme.txt": "nothing here"})

	defs, err := LoadDir(ctxlog.Discard(context.Background()), root)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestDefinition_Module(t *testing.T) {
	def := &Definition{Name: "print", Source: "exports.ok = true;"}
	m := def.Module(ctxlog.FromContext(ctxlog.Discard(context.Background())))

	assert.Equal(t, "print", m.Name())
	assert.False(t, m.Loaded())
}
