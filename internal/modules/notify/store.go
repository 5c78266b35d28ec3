package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ackedTTL bounds how long acknowledged entries linger before a sweep drops
// them. Un-acked entries are never swept.
const ackedTTL = time.Hour

// Store is an in-memory, mutex-guarded mailbox keyed by restaurant. It is the
// backing state for the notify service; durability across restarts is not
// required because every notification can be re-derived from order and
// payment state.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]*Notification // restaurantID -> entries
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{entries: make(map[string][]*Notification), now: time.Now}
}

// Add appends a notification, assigning its ID and timestamp.
func (s *Store) Add(n Notification) *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.New().String()
	n.CreatedAt = s.now()
	stored := n
	s.entries[n.RestaurantID] = append(s.entries[n.RestaurantID], &stored)
	out := stored
	return &out
}

// Pending returns un-acked notifications for one restaurant channel, oldest
// first. Entries remain pending until Ack is called, so repeated polls keep
// returning them.
func (s *Store) Pending(restaurantID string, channel Channel) []*Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Notification
	for _, n := range s.entries[restaurantID] {
		if n.Acked || n.Channel != channel {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Ack marks one notification delivered. Returns false when the ID is unknown.
func (s *Store) Ack(restaurantID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.entries[restaurantID] {
		if n.ID == id {
			n.Acked = true
			return true
		}
	}
	return false
}

// Sweep drops acked entries older than ackedTTL.
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ackedTTL)
	for rid, list := range s.entries {
		kept := list[:0]
		for _, n := range list {
			if n.Acked && n.CreatedAt.Before(cutoff) {
				continue
			}
			kept = append(kept, n)
		}
		if len(kept) == 0 {
			delete(s.entries, rid)
			continue
		}
		s.entries[rid] = kept
	}
}

// StartJanitor sweeps on an interval until stop closes.
func (s *Store) StartJanitor(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
