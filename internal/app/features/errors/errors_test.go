package errors_test

import (
	"net/http"
	"testing"

	apperrors "github.com/dalemusser/raizes/internal/app/features/errors"
	"github.com/dalemusser/raizes/internal/testutil"
	"go.uber.org/zap"
)

func TestHandlers(t *testing.T) {
	h := apperrors.NewHandler(zap.NewNop())
	tests := []struct {
		name   string
		fn     http.HandlerFunc
		status int
		text   string
	}{
		{"not found", h.NotFound, http.StatusNotFound, "não existe"},
		{"method", h.MethodNotAllowed, http.StatusMethodNotAllowed, "não é aceita"},
		{"forbidden", h.Forbidden, http.StatusForbidden, "Acesso negado"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			tt.fn(rec, testutil.NewRequest(http.MethodGet, "/x"))
			rec.AssertStatus(t, tt.status)
			rec.AssertContains(t, tt.text)
			rec.AssertContains(t, `"level":"error"`)
		})
	}
}
