package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.place)                  // POST   /api/v1/orders
		r.Get("/", h.list)                    // GET    /api/v1/orders?restaurant_id=&table_number=&status=
		r.Get("/grouped", h.listGrouped)      // GET    /api/v1/orders/grouped?restaurant_id=
		r.Get("/{id}", h.get)                 // GET    /api/v1/orders/{id}
		r.Put("/{id}/status", h.updateStatus) // PUT   /api/v1/orders/{id}/status
		r.Put("/{id}/table", h.changeTable)   // PUT    /api/v1/orders/{id}/table
		r.Delete("/{id}", h.delete)           // DELETE /api/v1/orders/{id}

		// grouped-card actions fan out to each underlying order
		r.Put("/table/{restaurant_id}/{table_number}/status", h.updateTableStatus)
		r.Delete("/table/{restaurant_id}/{table_number}", h.deleteByTable)
	})
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Place(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "not allowed") {
			code = http.StatusForbidden
		} else if strings.Contains(msg, "unavailable") || strings.Contains(msg, "not found") {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
			strings.Contains(msg, "at least one") || strings.Contains(msg, "must be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		RestaurantID: r.URL.Query().Get("restaurant_id"),
		Status:       Status(r.URL.Query().Get("status")),
	}
	if raw := r.URL.Query().Get("table_number"); raw != "" {
		table, err := strconv.Atoi(raw)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid table_number"})
			return
		}
		f.TableNumber = &table
	}
	orders, err := h.service.List(r.Context(), f)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listGrouped(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.URL.Query().Get("restaurant_id")
	if restaurantID == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "restaurant_id is required"})
		return
	}
	groups, err := h.service.ListGrouped(r.Context(), restaurantID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, groups)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, transitionErrCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateTableStatus(w http.ResponseWriter, r *http.Request) {
	table, err := strconv.Atoi(chi.URLParam(r, "table_number"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid table_number"})
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	results, err := h.service.UpdateTableStatus(r.Context(), chi.URLParam(r, "restaurant_id"), table, req)
	if err != nil {
		respond(w, transitionErrCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, results)
}

func (h *Handler) changeTable(w http.ResponseWriter, r *http.Request) {
	var req ChangeTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.ChangeTable(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, transitionErrCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "order deleted"})
}

func (h *Handler) deleteByTable(w http.ResponseWriter, r *http.Request) {
	table, err := strconv.Atoi(chi.URLParam(r, "table_number"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid table_number"})
		return
	}
	n, err := h.service.DeleteByTable(r.Context(), chi.URLParam(r, "restaurant_id"), table)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]int{"deleted": n})
}

func transitionErrCode(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "cannot transition"), strings.Contains(msg, "cannot move"),
		strings.Contains(msg, "no active orders"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "must be"):
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
