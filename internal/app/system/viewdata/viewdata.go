// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// SiteName is shown in every page header.
const SiteName = "Raízes"

// UserVM is the slice of the current user every page shows.
type UserVM struct {
	Name               string                 `json:"name"`
	Email              string                 `json:"email,omitempty"`
	TipoParticipante   models.ParticipantType `json:"tipo_participante"`
	IsGuest            bool                   `json:"is_guest"`
	OnboardingCompleto bool                   `json:"onboarding_completo"`
}

// BaseVM contains the fields common to every page view model.
// Embed it in feature view models:
//
//	type dashboardData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName    string         `json:"site_name"`
	Title       string         `json:"title"`
	BackURL     string         `json:"back_url,omitempty"`
	CurrentPath string         `json:"current_path"`
	User        UserVM         `json:"user"`
	Notice      *notice.Notice `json:"notice,omitempty"`
}

// NewBaseVM builds the common header for a page.
func NewBaseVM(r *http.Request, u models.User, title, backDefault string) BaseVM {
	return BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		User:        NewUserVM(u),
	}
}

// NewUserVM projects a user record for display.
func NewUserVM(u models.User) UserVM {
	return UserVM{
		Name:               u.FullName,
		Email:              u.Email,
		TipoParticipante:   u.TipoParticipante,
		IsGuest:            u.IsGuest(),
		OnboardingCompleto: u.OnboardingCompleto,
	}
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps a mutation error to the HTTP status of the response.
// Backend failures are reported as 502; a nil error is 200.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, viewstate.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, viewstate.ErrNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, viewstate.ErrUnknownRecord), errors.Is(err, apiclient.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
