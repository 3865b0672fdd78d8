package health_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/raizes/internal/app/features/health"
	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/backend/rest"
	"github.com/dalemusser/raizes/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_OK(t *testing.T) {
	b := testutil.NewBackend(t, nil)
	h := health.NewHandler(b.Client, zap.NewNop())

	rec := testutil.NewRecorder()
	health.Routes(h).ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"status":"ok"`)
	rec.AssertContains(t, rest.DefaultStatusMessage)
}

func TestServe_BackendDown(t *testing.T) {
	b := testutil.NewBackend(t, nil)
	client := apiclient.New(b.Server.URL)
	b.Server.Close()

	rec := testutil.NewRecorder()
	health.NewHandler(client, zap.NewNop()).Serve(rec, testutil.NewRequest(http.MethodGet, "/health"))

	rec.AssertStatus(t, http.StatusServiceUnavailable)
	rec.AssertContains(t, `"backend":"disconnected"`)
}
