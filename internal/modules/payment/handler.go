package payment

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes cashier payment HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders/{order_id}/payments", func(r chi.Router) {
		r.Get("/", h.status)            // GET  /api/v1/orders/{order_id}/payments
		r.Post("/", h.record)           // POST /api/v1/orders/{order_id}/payments
		r.Post("/complete", h.complete) // POST /api/v1/orders/{order_id}/payments/complete
	})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Status(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.Record(r.Context(), chi.URLParam(r, "order_id"), req)
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, view)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Complete(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func errCode(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "exceeds"), strings.Contains(msg, "still remaining"),
		strings.Contains(msg, "already settled"), strings.Contains(msg, "cancelled"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "invalid"), strings.Contains(msg, "must be"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
