package viewdata

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{viewstate.Invalid("título obrigatório"), http.StatusUnprocessableEntity},
		{fmt.Errorf("x: %w", viewstate.ErrNotAllowed), http.StatusForbidden},
		{&apiclient.StatusError{Status: 404}, http.StatusNotFound},
		{viewstate.ErrUnknownRecord, http.StatusNotFound},
		{errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestNewBaseVM_Guest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/cartas?tab=minhas", nil)
	vm := NewBaseVM(r, models.GuestUser(), "Cartas Abertas", "/")
	if !vm.User.IsGuest || vm.User.Name != "Visitante" || vm.SiteName != SiteName {
		t.Errorf("BaseVM = %+v", vm)
	}
	if !strings.HasPrefix(vm.CurrentPath, "/cartas") {
		t.Errorf("CurrentPath = %q", vm.CurrentPath)
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusAccepted, map[string]string{"a": "b"})
	if rec.Code != http.StatusAccepted || !strings.Contains(rec.Body.String(), `"a":"b"`) {
		t.Errorf("got %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}
