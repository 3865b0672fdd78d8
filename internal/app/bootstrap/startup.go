// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backend
// client is built, but before the HTTP handler is. It applies the
// RAIZES_TIMEOUT_* overrides used by every page load and mutation.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts configured from environment",
			zap.Int("overrides", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("read", cur.Read),
			zap.Duration("write", cur.Write),
			zap.Duration("load", cur.Load))
	}
	return nil
}
