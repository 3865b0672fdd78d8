// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/normalize"
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
	Client    *apiclient.Client
	Policy    viewstate.Policy
	ShareBase string
	Log       *zap.Logger
}

func NewHandler(client *apiclient.Client, policy viewstate.Policy, shareBase string, logger *zap.Logger) *Handler {
	return &Handler{
		Client:    client,
		Policy:    policy,
		ShareBase: shareBase,
		Log:       logger,
	}
}

type pageData struct {
	viewdata.BaseVM
	View
	ShareLink string `json:"share_link,omitempty"`
}

// open builds, mounts and loads a page for one request.
func (h *Handler) open(ctx context.Context) (*Page, *notice.Notice) {
	p := NewPage(h.Client, h.Policy, h.Log)
	p.ShareBase = h.ShareBase
	p.Mount()
	if err := p.Load(ctx); err != nil {
		return p, notice.Fail("Erro ao carregar dados.")
	}
	return p, nil
}

// parseFilter reads ?tempo= and ?q=.
func parseFilter(r *http.Request) (Filter, error) {
	tempo, err := models.ParseCyclicalTime(normalize.Key(query.Get(r, "tempo")))
	if err != nil {
		return Filter{}, err
	}
	return Filter{Tempo: tempo, Q: query.Search(r, "q")}, nil
}

// ServeDashboard handles GET /.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		base := viewdata.NewBaseVM(r, models.GuestUser(), "Círculo de Saberes", "/")
		base.Notice = notice.Fail("Tempo desconhecido.")
		viewdata.JSON(w, http.StatusBadRequest, base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Load())
	defer cancel()

	p, n := h.open(ctx)
	defer p.Unmount()

	h.respond(w, r, p, f, n, nil, "")
}

// ServeValorizar handles POST /saberes/{id}/valorizar.
func (h *Handler) ServeValorizar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	n, err := p.Valorizar(ctx, models.ID(chi.URLParam(r, "id")))
	f, _ := parseFilter(r)
	h.respond(w, r, p, f, n, err, "")
}

// ServeCompartilhar handles POST /saberes/{id}/compartilhar.
func (h *Handler) ServeCompartilhar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	link, n, err := p.Compartilhar(ctx, models.ID(chi.URLParam(r, "id")))
	f, _ := parseFilter(r)
	h.respond(w, r, p, f, n, err, link)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, p *Page, f Filter, n *notice.Notice, err error, link string) {
	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, p.User(), "Círculo de Saberes", "/"),
		View:      p.View(f),
		ShareLink: link,
	}
	data.Notice = n
	viewdata.JSON(w, viewdata.StatusFor(err), data)
}
