package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/SparrowtheDon/email-checker/internal/verifier"
	"github.com/SparrowtheDon/email-checker/internal/web"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.verifier.enabled") {
		closer, err := verifier.New(verifier.Dependency{
			Config:  a.config,
			Router:  a.router,
			JobID:   a.snowflake,
			Metrics: a.metrics,
		})
		if err != nil {
			slog.Error("failed to init module verifier", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Verifier"] = closer
		}
	}

	if err := web.Register(a.router); err != nil {
		slog.Error("failed to init web client", "error", err)
		os.Exit(1)
	}
}
