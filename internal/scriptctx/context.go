package scriptctx

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/google/uuid"
	"github.com/specialistvlad/extmod/internal/ctxlog"
)

// ID identifies a scripting context for the lifetime of the process.
type ID = uuid.UUID

// Context is a single scripting context.
type Context struct {
	id     ID
	vm     *goja.Runtime
	logger *slog.Logger

	// runCtx is the context of the innermost Run in progress.
	runCtx context.Context
}

// New creates a scripting context with console support. The logger is taken
// from ctx.
func New(ctx context.Context) *Context {
	id := uuid.New()
	logger := ctxlog.FromContext(ctxlog.With(ctx, "script_context", id.String()))

	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	registry := require.NewRegistry()
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(&printer{logger: logger}))
	registry.Enable(vm)
	console.Enable(vm)

	logger.Debug("Script context created.")
	return &Context{id: id, vm: vm, logger: logger}
}

// ID returns the context identity.
func (c *Context) ID() ID {
	return c.id
}

// Runtime returns the underlying goja runtime.
func (c *Context) Runtime() *goja.Runtime {
	return c.vm
}

// Logger returns the logger bound to this context.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// RunContext returns the context of the script currently running, or
// context.Background when none is. Native modules use it for blocking calls.
func (c *Context) RunContext() context.Context {
	if c.runCtx == nil {
		return context.Background()
	}
	return c.runCtx
}

// Run executes src under the given script name. If ctx is cancelled while the
// script runs, the runtime is interrupted and the context error is returned.
func (c *Context) Run(ctx context.Context, name, src string) (goja.Value, error) {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			c.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	prev := c.runCtx
	c.runCtx = ctx
	v, err := c.vm.RunScript(name, src)
	c.runCtx = prev
	close(done)
	<-stopped
	c.vm.ClearInterrupt()

	if err != nil {
		if _, interrupted := err.(*goja.InterruptedError); interrupted {
			return nil, fmt.Errorf("script '%s' interrupted: %w", name, ctx.Err())
		}
		return nil, fmt.Errorf("script '%s' failed: %w", name, err)
	}
	return v, nil
}

// RunFile reads path and runs it with Run.
func (c *Context) RunFile(ctx context.Context, path string) (goja.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script '%s': %w", path, err)
	}
	c.logger.Debug("Running script file.", "path", path, "bytes", len(src))
	return c.Run(ctx, path, string(src))
}
