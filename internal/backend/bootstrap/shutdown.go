// internal/backend/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown flushes and closes the record store.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Store == nil {
		return nil
	}
	logger.Info("closing record store", zap.String("store", appCfg.Store))
	if err := deps.Store.Close(ctx); err != nil {
		logger.Error("record store close failed", zap.Error(err))
		return err
	}
	return nil
}
