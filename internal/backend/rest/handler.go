// Package rest serves backend collections over a json-server compatible API.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/raizes/internal/backend/store"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultStatusMessage is the liveness message of GET /api/status.
const DefaultStatusMessage = "Servidor Raízes operando na força ancestral! 🌿"

// DefaultCollections are the resources served when none are configured.
var DefaultCollections = []string{"saberes", "comunidades", "comunidades_virtuais", "cartas", "usuarios"}

// Handler holds the dependencies of the REST endpoints.
type Handler struct {
	Store         store.Store
	Collections   map[string]bool
	StatusMessage string
	Log           *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewHandler builds a Handler serving collections from st.
func NewHandler(st store.Store, collections []string, statusMessage string, logger *zap.Logger) *Handler {
	if len(collections) == 0 {
		collections = DefaultCollections
	}
	if statusMessage == "" {
		statusMessage = DefaultStatusMessage
	}
	set := make(map[string]bool, len(collections))
	for _, c := range collections {
		set[strings.TrimSpace(c)] = true
	}
	return &Handler{
		Store:         st,
		Collections:   set,
		StatusMessage: statusMessage,
		Log:           logger,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": h.StatusMessage})
}

// collection resolves {collection}; unknown names answer 404 {}.
func (h *Handler) collection(w http.ResponseWriter, r *http.Request) (string, bool) {
	c := chi.URLParam(r, "collection")
	if !h.Collections[c] {
		notFound(w)
		return "", false
	}
	return c, true
}

// List handles GET /{collection} with _sort, _order, _limit, q and
// field=value filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	recs, err := h.Store.List(r.Context(), c)
	if err != nil {
		h.fail(w, "list", c, "", err)
		return
	}
	writeJSON(w, http.StatusOK, parseQuery(r).Apply(recs))
}

// Get handles GET /{collection}/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := h.Store.Get(r.Context(), c, id)
	if err != nil {
		h.fail(w, "get", c, id, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Create handles POST /{collection}. A missing id is assigned; the record
// is otherwise stored as sent, plus created/updated timestamps.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	rec, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if store.IDOf(rec) == "" {
		rec["id"] = h.newID()
	}
	stamp := h.now().UTC().Format(time.RFC3339)
	if _, ok := rec["created_date"]; !ok {
		rec["created_date"] = stamp
	}
	rec["updated_date"] = stamp

	out, err := h.Store.Insert(r.Context(), c, rec)
	if err != nil {
		h.fail(w, "create", c, store.IDOf(rec), err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// Patch handles PATCH /{collection}/{id} as a shallow merge.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	patch, ok := decodeBody(w, r)
	if !ok {
		return
	}
	patch["updated_date"] = h.now().UTC().Format(time.RFC3339)
	out, err := h.Store.Merge(r.Context(), c, id, patch)
	if err != nil {
		h.fail(w, "patch", c, id, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Put handles PUT /{collection}/{id}; the stored id is preserved.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	rec, ok := decodeBody(w, r)
	if !ok {
		return
	}
	rec["updated_date"] = h.now().UTC().Format(time.RFC3339)
	out, err := h.Store.Replace(r.Context(), c, id, rec)
	if err != nil {
		h.fail(w, "put", c, id, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /{collection}/{id} and answers {}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), c, id); err != nil {
		h.fail(w, "delete", c, id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *Handler) fail(w http.ResponseWriter, op, collection, id string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		notFound(w)
	case errors.Is(err, store.ErrDuplicate):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "duplicate id"})
	default:
		h.Log.Error("store operation failed",
			zap.String("op", op),
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// parseQuery maps json-server query parameters onto a store.Query.
func parseQuery(r *http.Request) store.Query {
	q := store.Query{
		Sort: query.Get(r, "_sort"),
		Desc: strings.EqualFold(query.Get(r, "_order"), "desc"),
		Q:    query.Search(r, "q"),
	}
	if n, err := strconv.Atoi(query.Get(r, "_limit")); err == nil && n > 0 {
		q.Limit = n
	}
	for k, vs := range r.URL.Query() {
		if strings.HasPrefix(k, "_") || k == "q" || len(vs) == 0 {
			continue
		}
		if q.Where == nil {
			q.Where = map[string]string{}
		}
		q.Where[k] = vs[0]
	}
	return q
}

func decodeBody(w http.ResponseWriter, r *http.Request) (store.Record, bool) {
	var rec store.Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&rec); err != nil || rec == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be a JSON object"})
		return nil, false
	}
	return rec, true
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
