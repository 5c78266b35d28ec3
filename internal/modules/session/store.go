package session

import (
	"sync"
	"time"
)

const (
	// clientTTL is how long a client may go without polling before it stops
	// counting as an active user. Clients poll every couple of seconds, so a
	// minute of silence means the device is gone.
	clientTTL = time.Minute

	// sessionTTL is how long an untouched session survives before the
	// janitor reaps it.
	sessionTTL = 2 * time.Hour
)

// Store holds live table sessions in memory. Sessions are ephemeral by
// nature: they exist only while a table is dining and die with the QR token,
// so they are never persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// JoinClient adds (or refreshes) a client in the session for key, creating
// the session if it does not exist yet.
func (s *Store) JoinClient(key string, sess Session, clientID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[key]
	if !ok {
		sess.Key = key
		sess.Clients = make(map[string]time.Time)
		sess.UpdatedAt = s.now()
		existing = &sess
		s.sessions[key] = existing
	}
	existing.Clients[clientID] = s.now()
	return snapshotLocked(existing)
}

// Get returns a copy of the session, refreshing the polling client's
// last-seen time. Only clients that joined are refreshed; a fabricated ID
// must not inflate the active-user count.
func (s *Store) Get(key, clientID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return nil, false
	}
	if _, known := sess.Clients[clientID]; known {
		sess.Clients[clientID] = s.now()
	}
	return snapshotLocked(sess), true
}

// ReplaceCart overwrites the session's cart wholesale and bumps its version.
// Concurrent writers race and the last one wins; there is no per-item merge.
func (s *Store) ReplaceCart(key, clientID string, cart []CartItem) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return nil, false
	}
	sess.Cart = NormalizeCart(cart)
	sess.Version++
	sess.UpdatedAt = s.now()
	if _, known := sess.Clients[clientID]; known {
		sess.Clients[clientID] = s.now()
	}
	return snapshotLocked(sess), true
}

// Leave removes a client. The session itself is dropped once its last client
// leaves.
func (s *Store) Leave(key, clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return
	}
	delete(sess.Clients, clientID)
	if len(sess.Clients) == 0 {
		delete(s.sessions, key)
	}
}

// ActiveUsers counts clients seen within clientTTL.
func (s *Store) ActiveUsers(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[key]
	if !ok {
		return 0
	}
	return s.countActiveLocked(sess)
}

// Sweep drops clients idle past clientTTL and sessions idle past sessionTTL.
// Returns how many sessions were reaped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	reaped := 0
	for key, sess := range s.sessions {
		for clientID, lastSeen := range sess.Clients {
			if now.Sub(lastSeen) > clientTTL {
				delete(sess.Clients, clientID)
			}
		}
		if len(sess.Clients) == 0 && now.Sub(sess.UpdatedAt) > sessionTTL {
			delete(s.sessions, key)
			reaped++
		}
	}
	return reaped
}

// StartJanitor sweeps on the given interval until stop is closed.
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

func (s *Store) countActiveLocked(sess *Session) int {
	now := s.now()
	active := 0
	for _, lastSeen := range sess.Clients {
		if now.Sub(lastSeen) <= clientTTL {
			active++
		}
	}
	return active
}

// snapshotLocked copies the session so callers never share the store's
// internal slices or maps. Caller must hold at least a read lock.
func snapshotLocked(sess *Session) *Session {
	out := *sess
	out.Cart = make([]CartItem, len(sess.Cart))
	copy(out.Cart, sess.Cart)
	out.Clients = make(map[string]time.Time, len(sess.Clients))
	for id, t := range sess.Clients {
		out.Clients[id] = t
	}
	return &out
}
