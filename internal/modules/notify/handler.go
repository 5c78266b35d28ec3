package notify

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes notification HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Post("/bill-request", h.requestBill) // POST /api/v1/notifications/bill-request
		r.Get("/", h.pending)                  // GET  /api/v1/notifications?restaurant_id=&channel=
		r.Post("/{id}/ack", h.ack)             // POST /api/v1/notifications/{id}/ack?restaurant_id=
	})
}

func (h *Handler) requestBill(w http.ResponseWriter, r *http.Request) {
	var req BillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	n, err := h.service.RequestBill(r.Context(), req)
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, n)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.service.Pending(r.Context(), q.Get("restaurant_id"), Channel(q.Get("channel")))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, list)
}

func (h *Handler) ack(w http.ResponseWriter, r *http.Request) {
	err := h.service.Ack(r.Context(), r.URL.Query().Get("restaurant_id"), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "acked"})
}

func errCode(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "inactive") || strings.Contains(msg, "expired"):
		return http.StatusForbidden
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid"):
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
