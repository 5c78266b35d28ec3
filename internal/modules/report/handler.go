package report

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes reporting HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/summary", h.summary)          // GET /api/v1/reports/summary?restaurant_id=
		r.Get("/trend", h.trend)              // GET /api/v1/reports/trend?restaurant_id=&period=daily
		r.Get("/top-products", h.topProducts) // GET /api/v1/reports/top-products?restaurant_id=
		r.Get("/hourly", h.hourly)            // GET /api/v1/reports/hourly?restaurant_id=
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Summary(r.Context(), r.URL.Query().Get("restaurant_id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.Trend(r.Context(),
		r.URL.Query().Get("restaurant_id"), r.URL.Query().Get("period"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, series)
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.TopProducts(r.Context(), r.URL.Query().Get("restaurant_id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) hourly(w http.ResponseWriter, r *http.Request) {
	hours, err := h.service.Hourly(r.Context(), r.URL.Query().Get("restaurant_id"))
	if err != nil {
		respond(w, errCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, hours)
}

func errCode(err error) int {
	if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
