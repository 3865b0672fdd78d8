// internal/app/features/territorios/handler.go
package territorios

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

// regioesForm is the body of POST /territorios/{id}/regioes.
type regioesForm struct {
	Regioes []models.Regiao `json:"regioes"`
}

func (h *Handler) open(ctx context.Context) (*Page, *notice.Notice) {
	p := NewPage(h.Client, h.Policy, h.Log)
	p.Mount()
	if err := p.Load(ctx); err != nil {
		return p, notice.Fail("Erro ao carregar territórios.")
	}
	return p, nil
}

func parseFilter(r *http.Request) (Filter, error) {
	tipo, err := ParseTipo(query.Get(r, "tipo"))
	if err != nil {
		return Filter{}, err
	}
	return Filter{Tipo: tipo, Q: query.Search(r, "q")}, nil
}

// ServeMap handles GET /territorios.
func (h *Handler) ServeMap(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		base := viewdata.NewBaseVM(r, models.GuestUser(), "Mapa dos Territórios", "/")
		base.Notice = notice.Fail("Tipo de território desconhecido.")
		viewdata.JSON(w, http.StatusBadRequest, base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Load())
	defer cancel()

	p, n := h.open(ctx)
	defer p.Unmount()
	h.respond(w, r, p, f, n, nil)
}

// ServeMarcarRegioes handles POST /territorios/{id}/regioes.
func (h *Handler) ServeMarcarRegioes(w http.ResponseWriter, r *http.Request) {
	var form regioesForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxRegioesFormSize)).Decode(&form); err != nil {
		h.Log.Warn("marcar regioes: bad body", zap.Error(err))
		base := viewdata.NewBaseVM(r, models.GuestUser(), "Mapa dos Territórios", "/territorios")
		base.Notice = notice.Fail("Formulário inválido.")
		viewdata.JSON(w, http.StatusBadRequest, base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	n, err := p.MarcarRegioes(ctx, models.ID(chi.URLParam(r, "id")), form.Regioes)
	f, _ := parseFilter(r)
	h.respond(w, r, p, f, n, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, p *Page, f Filter, n *notice.Notice, err error) {
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, p.User(), "Mapa dos Territórios", "/"),
		View:   p.View(f),
	}
	data.Notice = n
	viewdata.JSON(w, viewdata.StatusFor(err), data)
}
