// internal/app/features/onboarding/handler.go
package onboarding

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/limits"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/raizes/internal/app/system/viewdata"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"go.uber.org/zap"
)

const pageTitle = "Bem-vindo à Raízes"

type Handler struct {
	Client *apiclient.Client
	Policy viewstate.Policy
	Log    *zap.Logger
}

func NewHandler(client *apiclient.Client, policy viewstate.Policy, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Policy: policy, Log: logger}
}

type pageData struct {
	viewdata.BaseVM
	View
	Redirect string `json:"redirect,omitempty"`
}

func (h *Handler) open(ctx context.Context) (*Page, *notice.Notice) {
	p := NewPage(h.Client, h.Policy, h.Log)
	p.Mount()
	if err := p.Load(ctx); err != nil {
		return p, notice.Fail("Erro ao carregar dados.")
	}
	return p, nil
}

// ServeWizard handles GET /onboarding. Users who already onboarded are
// sent to the dashboard.
func (h *Handler) ServeWizard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Load())
	defer cancel()

	p, n := h.open(ctx)
	defer p.Unmount()

	if p.Completed() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := pageData{BaseVM: viewdata.NewBaseVM(r, p.User(), pageTitle, "/"), View: p.View()}
	data.Notice = n
	viewdata.JSON(w, http.StatusOK, data)
}

// ServeSubmit handles POST /onboarding.
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	var form Form
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxOnboardingFormSize)).Decode(&form); err != nil {
		h.Log.Warn("onboarding: bad body", zap.Error(err))
		data := pageData{BaseVM: viewdata.NewBaseVM(r, p.User(), pageTitle, "/"), View: p.View()}
		data.Notice = notice.Fail("Formulário inválido.")
		viewdata.JSON(w, http.StatusBadRequest, data)
		return
	}

	n, err := p.Submit(ctx, form)
	data := pageData{BaseVM: viewdata.NewBaseVM(r, p.User(), pageTitle, "/"), View: p.View()}
	data.Notice = n
	if err == nil {
		data.Redirect = "/"
	}
	viewdata.JSON(w, viewdata.StatusFor(err), data)
}
