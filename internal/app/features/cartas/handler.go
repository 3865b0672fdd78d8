// internal/app/features/cartas/handler.go
package cartas

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

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

const pageTitle = "Cartas Abertas"

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
	Carta *models.CartaAberta `json:"carta,omitempty"`
}

// saveForm is the editor body; Publicar publishes on save.
type saveForm struct {
	Draft
	Publicar bool `json:"publicar"`
}

func (h *Handler) open(ctx context.Context) (*Page, *notice.Notice) {
	p := NewPage(h.Client, h.Policy, h.Log)
	p.Mount()
	if err := p.Load(ctx); err != nil {
		return p, notice.Fail("Erro ao carregar cartas.")
	}
	return p, nil
}

func filterFrom(r *http.Request) Filter {
	return Filter{Tab: query.Get(r, "tab"), Q: query.Search(r, "q")}
}

// ServeList handles GET /cartas.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, ok := ParseTab(query.Get(r, "tab")); !ok {
		base := viewdata.NewBaseVM(r, models.GuestUser(), pageTitle, "/")
		base.Notice = notice.Fail("Aba desconhecida.")
		viewdata.JSON(w, http.StatusBadRequest, base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Load())
	defer cancel()

	p, n := h.open(ctx)
	defer p.Unmount()
	h.respond(w, r, p, n, nil, nil)
}

// ServeApoiar handles POST /cartas/{id}/apoiar.
func (h *Handler) ServeApoiar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	n, err := p.Apoiar(ctx, models.ID(chi.URLParam(r, "id")))
	h.respond(w, r, p, n, err, nil)
}

// ServeCreate handles POST /cartas; ServeUpdate handles PUT /cartas/{id}.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) { h.save(w, r, "") }

func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, models.ID(chi.URLParam(r, "id")))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id models.ID) {
	var form saveForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxCartaFormSize)).Decode(&form); err != nil {
		h.Log.Warn("cartas: bad editor body", zap.Error(err))
		base := viewdata.NewBaseVM(r, models.GuestUser(), pageTitle, "/cartas")
		base.Notice = notice.Fail("Formulário inválido.")
		viewdata.JSON(w, http.StatusBadRequest, base)
		return
	}
	form.Draft.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	saved, n, err := p.Save(ctx, form.Draft, form.Publicar)
	var carta *models.CartaAberta
	if err == nil {
		carta = &saved
	}
	h.respond(w, r, p, n, err, carta)
}

// ServeDelete handles DELETE /cartas/{id}?confirmar=true.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(query.Get(r, "confirmar"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Write())
	defer cancel()

	p, _ := h.open(ctx)
	defer p.Unmount()

	n, err := p.Delete(ctx, models.ID(chi.URLParam(r, "id")), confirmed)
	h.respond(w, r, p, n, err, nil)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, p *Page, n *notice.Notice, err error, carta *models.CartaAberta) {
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, p.User(), pageTitle, "/"),
		View:   p.View(filterFrom(r)),
		Carta:  carta,
	}
	data.Notice = n
	viewdata.JSON(w, viewdata.StatusFor(err), data)
}
