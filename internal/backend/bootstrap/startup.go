// internal/backend/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup reports what the backend is about to serve.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("serving collections",
		zap.String("store", appCfg.Store),
		zap.Strings("collections", appCfg.Collections),
		zap.Strings("cors_origins", appCfg.CORSOrigins))
	return nil
}
