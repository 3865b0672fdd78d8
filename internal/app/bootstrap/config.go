// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/inputval"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the Raízes front-end.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, consistency, etc.
//   - Environment variables: RAIZES_API_BASE_URL, RAIZES_CONSISTENCY, etc.
//   - Command-line flags: --api_base_url, --consistency, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: apiclient.DefaultBaseURL, Desc: "Base URL of the Raízes REST backend"},
	{Name: "api_timeout", Default: "10s", Desc: "Timeout for a single backend request (e.g., 10s, 1m)"},
	{Name: "current_user_id", Default: apiclient.DefaultCurrentUser, Desc: "Id of the usuarios record served as the current user"},
	{Name: "consistency", Default: string(viewstate.Refetch), Desc: "View resync after a mutation: 'refetch' or 'patch'"},
	{Name: "public_base_url", Default: "", Desc: "Public URL used to build share links (blank means relative links)"},

	// Rate limiting of POST/PUT/DELETE requests
	{Name: "mutation_rate_limit", Default: 120, Desc: "Max mutations per client IP per window (0 disables)"},
	{Name: "mutation_rate_window", Default: "1m", Desc: "Window for mutation_rate_limit (e.g., 1m, 30s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, RAIZES_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RAIZES", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL:    strings.TrimSpace(appValues.String("api_base_url")),
		APITimeout:    appValues.Duration("api_timeout", 10*time.Second),
		CurrentUserID: strings.TrimSpace(appValues.String("current_user_id")),
		Consistency:   viewstate.Policy(appValues.String("consistency")),
		PublicBaseURL: strings.TrimSpace(appValues.String("public_base_url")),

		MutationRateLimit:  appValues.Int("mutation_rate_limit"),
		MutationRateWindow: appValues.Duration("mutation_rate_window", time.Minute),
	}

	// Normalise the policy spelling; ValidateConfig reports unknown values.
	if p, err := viewstate.ParsePolicy(string(appCfg.Consistency)); err == nil {
		appCfg.Consistency = p
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Raízes rejects an unknown consistency policy and malformed URLs before
// any backend call is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !inputval.IsValidHTTPURL(appCfg.APIBaseURL) {
		logger.Error("invalid API base URL", zap.String("api_base_url", appCfg.APIBaseURL))
		return fmt.Errorf("invalid api_base_url %q: must be an absolute http(s) URL", appCfg.APIBaseURL)
	}
	if appCfg.PublicBaseURL != "" && !inputval.IsValidHTTPURL(appCfg.PublicBaseURL) {
		return fmt.Errorf("invalid public_base_url %q: must be an absolute http(s) URL", appCfg.PublicBaseURL)
	}
	if _, err := viewstate.ParsePolicy(string(appCfg.Consistency)); err != nil {
		return fmt.Errorf("invalid consistency: %w", err)
	}
	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", appCfg.APITimeout)
	}
	if appCfg.CurrentUserID == "" {
		return fmt.Errorf("current_user_id must not be empty")
	}
	if appCfg.MutationRateLimit < 0 {
		return fmt.Errorf("mutation_rate_limit must not be negative, got %d", appCfg.MutationRateLimit)
	}
	if appCfg.MutationRateLimit > 0 && appCfg.MutationRateWindow <= 0 {
		return fmt.Errorf("mutation_rate_window must be positive when mutation_rate_limit is set")
	}
	return nil
}
