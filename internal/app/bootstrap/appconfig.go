// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/raizes/internal/app/system/viewstate"
)

// AppConfig holds service-specific configuration for the Raízes front-end.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig keeps the
// framework-level settings (ports, TLS, log level); everything that
// describes how the front-end reaches its backend lives here.
type AppConfig struct {
	// Backend REST API
	APIBaseURL string        // Base URL of the REST backend (e.g., http://localhost:3000)
	APITimeout time.Duration // Transport-level bound on every backend request

	// CurrentUserID is the usuarios record served as the signed-in user.
	CurrentUserID string

	// Consistency selects how views resynchronise after a mutation.
	Consistency viewstate.Policy

	// PublicBaseURL prefixes share links handed out by the dashboard.
	PublicBaseURL string

	// Mutation rate limiting per client IP (0 disables it)
	MutationRateLimit  int
	MutationRateWindow time.Duration
}
