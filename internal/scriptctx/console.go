package scriptctx

import "log/slog"

// printer routes console.log/warn/error into slog.
type printer struct {
	logger *slog.Logger
}

func (p *printer) Log(s string)   { p.logger.Info(s, "source", "console") }
func (p *printer) Warn(s string)  { p.logger.Warn(s, "source", "console") }
func (p *printer) Error(s string) { p.logger.Error(s, "source", "console") }
