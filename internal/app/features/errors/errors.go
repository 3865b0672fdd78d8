// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/raizes/internal/app/system/notice"
	"github.com/dalemusser/raizes/internal/app/system/viewdata"
	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/zap"
)

// Handler answers the router's fallbacks with the common page envelope.
// It does not load the current user.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	data := viewdata.NewBaseVM(r, models.GuestUser(), title, "/")
	data.Notice = notice.Fail("%s", message)
	viewdata.JSON(w, status, data)
}

// NotFound answers unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("route not found", zap.String("path", r.URL.Path))
	h.render(w, r, http.StatusNotFound, "Página não encontrada", "Este caminho não existe na Raízes.")
}

// MethodNotAllowed answers known paths hit with the wrong verb.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusMethodNotAllowed, "Ação não permitida", "Esta ação não é aceita neste endereço.")
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusForbidden, "Acesso negado", "Você não tem permissão para ver esta página.")
}
