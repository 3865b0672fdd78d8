package health

import (
	"net/http"

	"github.com/dalemusser/raizes/internal/app/system/apiclient"
	"github.com/dalemusser/raizes/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler reports whether the REST backend answers.
type Handler struct {
	Client *apiclient.Client
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *apiclient.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	API     string `json:"api"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"connected", "api":"http://localhost:3000", "message":"…" }
//
// On backend failure: 503 and
//
//	{ "status":"error", "backend":"disconnected", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Backend: "connected",
		API:     h.Client.BaseURL(),
	}

	msg, err := h.Client.Status(r.Context())
	if err != nil {
		h.Log.Error("health-check: backend status failed", zap.Error(err))
		resp.Status = "error"
		resp.Backend = "disconnected"
		resp.Error = err.Error()
		viewdata.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Message = msg.Message
	viewdata.JSON(w, http.StatusOK, resp)
}
