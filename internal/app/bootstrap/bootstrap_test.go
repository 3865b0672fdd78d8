package bootstrap

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		APIBaseURL:    "http://localhost:3000",
		APITimeout:    10 * time.Second,
		CurrentUserID: "1",
		Consistency:   viewstate.Refetch,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"defaults", func(*AppConfig) {}, ""},
		{"patch policy", func(c *AppConfig) { c.Consistency = viewstate.PatchLocal }, ""},
		{"public base url", func(c *AppConfig) { c.PublicBaseURL = "https://raizes.org" }, ""},
		{"bad api url", func(c *AppConfig) { c.APIBaseURL = "localhost:3000" }, "api_base_url"},
		{"bad public url", func(c *AppConfig) { c.PublicBaseURL = "raizes" }, "public_base_url"},
		{"unknown policy", func(c *AppConfig) { c.Consistency = "eventual" }, "consistency"},
		{"zero timeout", func(c *AppConfig) { c.APITimeout = 0 }, "api_timeout"},
		{"no user", func(c *AppConfig) { c.CurrentUserID = "" }, "current_user_id"},
		{"rate limit", func(c *AppConfig) { c.MutationRateLimit = 10; c.MutationRateWindow = time.Minute }, ""},
		{"negative rate limit", func(c *AppConfig) { c.MutationRateLimit = -1 }, "mutation_rate_limit"},
		{"rate limit without window", func(c *AppConfig) { c.MutationRateLimit = 10 }, "mutation_rate_window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.wantErr != "" && err == nil:
				t.Fatalf("expected error mentioning %q", tt.wantErr)
			case tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr):
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConnectDB_UnreachableBackendIsNotFatal(t *testing.T) {
	cfg := validConfig()
	cfg.APIBaseURL = "http://127.0.0.1:1"
	cfg.APITimeout = time.Second

	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB failed: %v", err)
	}
	if deps.Client == nil {
		t.Fatal("expected a client")
	}
	if deps.Client.BaseURL() != "http://127.0.0.1:1" {
		t.Errorf("BaseURL = %q", deps.Client.BaseURL())
	}
	if err := Shutdown(context.Background(), &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func buildTestHandler(t *testing.T, userID string) http.Handler {
	t.Helper()
	b := testutil.NewBackend(t, testutil.Seed(), apiclient.WithCurrentUser(userID))
	h, err := BuildHandler(&config.CoreConfig{}, validConfig(), DBDeps{Client: b.Client}, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}
	return h
}

func TestBuildHandler_MountsPages(t *testing.T) {
	h := buildTestHandler(t, "1")
	for _, path := range []string{"/", "/comunidades", "/territorios", "/cartas", "/health"} {
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, path))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status %d (body: %s)", path, rec.Code, rec.Body.String())
		}
	}
}

func TestBuildHandler_NotFound(t *testing.T) {
	h := buildTestHandler(t, "1")
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/nao-existe/mesmo"))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Este caminho não existe")
}

func TestBuildHandler_CompletedUserSkipsWizard(t *testing.T) {
	h := buildTestHandler(t, "1")
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/onboarding"))
	rec.AssertRedirect(t, "/")
}

func TestBuildHandler_GateRedirectsNewUser(t *testing.T) {
	h := buildTestHandler(t, testutil.NovoID)
	for _, path := range []string{"/", "/cartas"} {
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, path))
		rec.AssertRedirect(t, "/onboarding")
	}

	// The wizard itself and /health stay reachable.
	for _, path := range []string{"/onboarding", "/health"} {
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, path))
		rec.AssertStatus(t, http.StatusOK)
	}
}

func TestBuildHandler_GuestPassesGate(t *testing.T) {
	h := buildTestHandler(t, testutil.GuestID)
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)
}

func TestBuildHandler_RejectsUnknownPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.Consistency = "eventual"
	if _, err := BuildHandler(&config.CoreConfig{}, cfg, DBDeps{Client: apiclient.New("")}, testLogger()); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestBuildHandler_LimitsMutations(t *testing.T) {
	b := testutil.NewBackend(t, testutil.Seed())
	cfg := validConfig()
	cfg.MutationRateLimit = 1
	cfg.MutationRateWindow = time.Minute
	h, err := BuildHandler(&config.CoreConfig{}, cfg, DBDeps{Client: b.Client}, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodPost, "/saberes/2/valorizar"))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodPost, "/saberes/2/valorizar"))
	rec.AssertStatus(t, http.StatusTooManyRequests)

	// Reads are not limited.
	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)
}
