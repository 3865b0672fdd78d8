// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	cartasfeature "github.com/dalemusser/raizes/internal/app/features/cartas"
	comunidadesfeature "github.com/dalemusser/raizes/internal/app/features/comunidades"
	dashboardfeature "github.com/dalemusser/raizes/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/raizes/internal/app/features/errors"
	healthfeature "github.com/dalemusser/raizes/internal/app/features/health"
	onboardingfeature "github.com/dalemusser/raizes/internal/app/features/onboarding"
	territoriosfeature "github.com/dalemusser/raizes/internal/app/features/territorios"
	"github.com/dalemusser/raizes/internal/app/system/ratelimit"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the backend client, and the
// Startup hook are ready. Every page answers with its view-model as JSON.
//
// /health and /onboarding are reachable by everyone. The remaining pages
// sit behind the onboarding gate, which sends users who have not finished
// the wizard to /onboarding.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	policy, err := viewstate.ParsePolicy(string(appCfg.Consistency))
	if err != nil {
		logger.Error("consistency policy rejected", zap.Error(err))
		return nil, err
	}
	client := deps.Client

	errorsHandler := errorsfeature.NewHandler(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if appCfg.MutationRateLimit > 0 {
		limiter := ratelimit.New(appCfg.MutationRateLimit, appCfg.MutationRateWindow)
		r.Use(ratelimit.Mutations(limiter, logger))
	}
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(client, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Get("/forbidden", errorsHandler.Forbidden)

	onboardingHandler := onboardingfeature.NewHandler(client, policy, logger)
	r.Mount(onboardingfeature.Path, onboardingfeature.Routes(onboardingHandler))

	r.Group(func(r chi.Router) {
		r.Use(onboardingfeature.Gate(client.Auth, logger))

		dashboardHandler := dashboardfeature.NewHandler(client, policy, appCfg.PublicBaseURL, logger)
		r.Mount("/", dashboardfeature.Routes(dashboardHandler))

		comunidadesHandler := comunidadesfeature.NewHandler(client, policy, logger)
		r.Mount("/comunidades", comunidadesfeature.Routes(comunidadesHandler))

		territoriosHandler := territoriosfeature.NewHandler(client, policy, logger)
		r.Mount("/territorios", territoriosfeature.Routes(territoriosHandler))

		cartasHandler := cartasfeature.NewHandler(client, policy, logger)
		r.Mount("/cartas", cartasfeature.Routes(cartasHandler))
	})

	return r, nil
}
