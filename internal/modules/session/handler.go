package session

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes table session HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/join", h.join)            // POST /api/v1/sessions/join
		r.Get("/{key}", h.poll)            // GET  /api/v1/sessions/{key}?client_id=...
		r.Put("/{key}/cart", h.updateCart) // PUT  /api/v1/sessions/{key}/cart
		r.Post("/{key}/leave", h.leave)    // POST /api/v1/sessions/{key}/leave
	})
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	snap, err := h.service.Join(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") {
			code = http.StatusBadRequest
		} else if strings.Contains(msg, "not active") || strings.Contains(msg, "not found") {
			code = http.StatusForbidden
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, snap)
}

func (h *Handler) poll(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	clientID := r.URL.Query().Get("client_id")
	snap, err := h.service.Poll(r.Context(), key, clientID)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, snap)
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	snap, err := h.service.UpdateCart(r.Context(), chi.URLParam(r, "key"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(err.Error(), "must be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, snap)
}

func (h *Handler) leave(w http.ResponseWriter, r *http.Request) {
	var req LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.Leave(r.Context(), chi.URLParam(r, "key"), req); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "left session"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
