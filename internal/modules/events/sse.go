package events

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SSEHandler streams order events to browser clients over Server-Sent
// Events. Cashier and kitchen panels keep one connection open instead of
// polling for new-order notifications.
type SSEHandler struct {
	hub *Hub
}

func NewSSEHandler(hub *Hub) *SSEHandler { return &SSEHandler{hub: hub} }

func (h *SSEHandler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/events/orders", h.stream) // GET /api/events/orders?restaurant_id=...
}

func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	restaurantID := r.URL.Query().Get("restaurant_id")
	subscriberID := uuid.New().String()
	eventChan := h.hub.Subscribe(subscriberID)
	defer h.hub.Unsubscribe(subscriberID)

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-keepalive.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()

		case evt, ok := <-eventChan:
			if !ok {
				return
			}
			if restaurantID != "" && evt.RestaurantID != restaurantID {
				continue
			}
			payload, err := json.Marshal(evt)
			if err != nil {
				log.Printf("sse: marshal event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, payload)
			flusher.Flush()
		}
	}
}
