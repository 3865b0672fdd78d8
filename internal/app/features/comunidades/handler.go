// internal/app/features/comunidades/handler.go
package comunidades

import (
	"context"
	"net/http"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/raizes/internal/app/system/viewdata"
	"github.com/dalemusser/raizes/internal/app/system/viewstate"
	"github.com/dalemusser/raizes/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

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
}

func (h *Handler) open(ctx context.Context) (*Page, *notice.Notice) {
	p := NewPage(h.Client, h.Policy, h.Log)
	p.Mount()
	if err := p.Load(ctx); err != nil {
		return p, notice.Fail("Erro ao carregar comunidades.")
	}
	return p, nil
}

// ServeList handles GET /comunidades.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Load())
	defer cancel()

	p, n := h.open(ctx)
	defer p.Unmount()
	h.respond(w, r, p, n, nil)
}

// ServeParticipar handles POST /comunidades/virtuais/{id}/participar.
func (h *Handler) ServeParticipar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	n, err := p.Participar(ctx, models.ID(chi.URLParam(r, "id")))
	h.respond(w, r, p, n, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, p *Page, n *notice.Notice, err error) {
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, p.User(), "Comunidades", "/"),
		View:   p.View(query.Search(r, "q")),
	}
	data.Notice = n
	viewdata.JSON(w, viewdata.StatusFor(err), data)
}
