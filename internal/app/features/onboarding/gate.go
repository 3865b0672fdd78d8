// internal/app/features/onboarding/gate.go
package onboarding

import (
	"net/http"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"go.uber.org/zap"
)

// Path is where the onboarding wizard is mounted.
const Path = "/onboarding"

// Gate sends signed-in users who have not finished onboarding to the
// wizard. Guests pass through: they have no record to complete.
func Gate(identity apiclient.Identity, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := identity.Me(r.Context())
			if !u.IsGuest() && !u.OnboardingCompleto {
				logger.Debug("onboarding gate: redirecting",
					zap.String("user", u.Email),
					zap.String("path", r.URL.Path))
				http.Redirect(w, r, Path, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
