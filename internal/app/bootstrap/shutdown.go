// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown tears down back-end resources. The REST client holds only
// pooled keep-alive connections, which are released here.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Client != nil {
		logger.Info("closing backend client connections")
		deps.Client.CloseIdleConnections()
	}
	return nil
}
