package subscription

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes subscription HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/plans", h.listPlans)

	r.Route("/api/v1/restaurants/{restaurant_id}/subscription", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.get)
		r.Put("/plan", h.changePlan)
		r.Post("/cancel", h.cancel)
		r.Post("/renew", h.renew)
		r.Get("/invoices", h.listInvoices)
	})

	r.Post("/api/v1/invoices/{id}/pay", h.payInvoice)
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.service.ListPlans(r.Context()))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.RestaurantID = chi.URLParam(r, "restaurant_id")
	sub, err := h.service.Create(r.Context(), req)
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, sub)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.Get(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sub)
}

func (h *Handler) changePlan(w http.ResponseWriter, r *http.Request) {
	var req ChangePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sub, err := h.service.ChangePlan(r.Context(), chi.URLParam(r, "restaurant_id"), req)
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sub)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sub, err := h.service.Cancel(r.Context(), chi.URLParam(r, "restaurant_id"), req)
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sub)
}

func (h *Handler) renew(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Renew(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, inv)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invs, err := h.service.ListInvoices(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, invs)
}

func (h *Handler) payInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.PayInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func errCode(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "already") || strings.Contains(msg, "cannot"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "required") || strings.Contains(msg, "unknown") || strings.Contains(msg, "invalid"):
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
