// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the REST client every page reads through.
//
// An unreachable backend is not fatal: pages degrade to empty collections
// and /health reports the outage. The ping only records it in the log.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client := apiclient.New(appCfg.APIBaseURL,
		apiclient.WithTimeout(appCfg.APITimeout),
		apiclient.WithCurrentUser(appCfg.CurrentUserID),
		apiclient.WithLogger(logger.Named("apiclient")),
	)

	if msg, err := client.Status(ctx); err != nil {
		logger.Warn("backend not reachable at startup",
			zap.String("api_base_url", client.BaseURL()),
			zap.Error(err))
	} else {
		logger.Info("connected to backend",
			zap.String("api_base_url", client.BaseURL()),
			zap.String("message", msg.Message))
	}

	return DBDeps{Client: client}, nil
}

// EnsureSchema sets up indexes or schema as needed. The backend owns its
// storage, so there is nothing to prepare on this side.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
