// internal/backend/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/raizes/internal/backend/rest"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// BuildHandler mounts the json-server compatible REST API over the store.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	h := rest.NewHandler(deps.Store, appCfg.Collections, appCfg.StatusMessage, logger.Named("rest"))
	return rest.Routes(h, appCfg.CORSOrigins), nil
}
