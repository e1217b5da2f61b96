package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/extmod/internal/ctxlog"
	"github.com/specialistvlad/extmod/internal/manifest"
	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/internal/scriptctx"
)

// Run loads the extension manifests, binds a module system to a fresh script
// context and runs the configured script in it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(ctx); err != nil {
			return err
		}
		defer a.closeHealthcheckServer(ctx)
	}

	var defs []*manifest.Definition
	if a.config.ExtensionsPath != "" {
		var err error
		defs, err = manifest.LoadDir(ctx, a.config.ExtensionsPath)
		if err != nil {
			return fmt.Errorf("failed to load extensions: %w", err)
		}
	}

	sc := scriptctx.New(ctx)
	ms := modsys.New(ctx, sc)
	if err := a.slots.Set(sc, ms); err != nil {
		return fmt.Errorf("failed to bind module system: %w", err)
	}
	defer func() {
		if err := a.slots.Reset(sc); err != nil {
			a.logger.Error("Module system teardown failed.", "error", err)
		}
	}()

	for _, mod := range a.modules {
		mod.Register(ms)
	}
	a.logger.Debug("All Go modules registered.", "count", len(a.modules))

	for _, def := range defs {
		ms.RegisterExtensionModule(def.Name, def.Module(ms.Logger()), def.EntryPoints)
	}
	a.logger.Debug("Manifest extensions registered.", "count", len(defs))

	if err := ms.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize module system: %w", err)
	}
	a.setExtensions(ms.Extensions())
	a.logger.Info("Native modules registered:", "count", len(ms.NativeModuleNames()), "keys", ms.NativeModuleNames())

	a.logger.Info("🚀 Running script...", "path", a.config.ScriptPath)
	if _, err := sc.RunFile(ctx, a.config.ScriptPath); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
