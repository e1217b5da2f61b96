// Package testutil holds helpers shared by package tests that need a live
// scripting context with a module system bound to it.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/dop251/goja"
	"github.com/specialistvlad/extmod/internal/ctxlog"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/scriptctx"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Harness is a script context with its module system.
type Harness struct {
	Ctx     context.Context
	Context *scriptctx.Context
	System  *modsys.ModuleSystem
	Logs    *SafeBuffer
}

// NewHarness creates a context and module system and registers modules. The
// system is destroyed when the test ends. Set EXTMOD_TEST_LOGS=true to dump
// the captured log.
func NewHarness(t *testing.T, modules ...modsys.Module) *Harness {
	t.Helper()

	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	sc := scriptctx.New(ctx)
	ms := modsys.New(ctx, sc)
	for _, m := range modules {
		m.Register(ms)
	}

	t.Cleanup(func() {
		_ = ms.Destroy()
		if os.Getenv("EXTMOD_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return &Harness{Ctx: ctx, Context: sc, System: ms, Logs: logs}
}

// Initialize runs the module system's Initialize and fails the test on error.
func (h *Harness) Initialize(t *testing.T) *Harness {
	t.Helper()
	require.NoError(t, h.System.Initialize(h.Ctx))
	return h
}

// Eval runs src in the harness context and fails the test on error.
func (h *Harness) Eval(t *testing.T, src string) goja.Value {
	t.Helper()
	v, err := h.Context.Run(h.Ctx, t.Name()+".js", src)
	require.NoError(t, err)
	return v
}

// EvalErr runs src and returns its error.
func (h *Harness) EvalErr(src string) error {
	_, err := h.Context.Run(h.Ctx, "eval.js", src)
	return err
}
