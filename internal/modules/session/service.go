package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/masapp/masapp-backend/internal/modules/qr"
)

// TokenGate validates that a QR token still authorizes ordering. Satisfied by
// the qr service.
type TokenGate interface {
	Ensure(ctx context.Context, token string) (*qr.Token, error)
}

// Service defines the table session synchronizer business logic.
type Service interface {
	// Join enters (or re-enters) the shared session for a table token. The
	// token must verify active; the session key and table number are derived
	// from the token record, not from what the client claims.
	Join(ctx context.Context, req JoinRequest) (*Snapshot, error)

	// Poll returns the current cart, version and active user count,
	// refreshing the caller's liveness.
	Poll(ctx context.Context, sessionKey, clientID string) (*Snapshot, error)

	// UpdateCart replaces the shared cart wholesale. Later writers win.
	UpdateCart(ctx context.Context, sessionKey string, req UpdateCartRequest) (*Snapshot, error)

	// Leave removes a device from the session.
	Leave(ctx context.Context, sessionKey string, req LeaveRequest) error
}

type service struct {
	store *Store
	gate  TokenGate
}

// NewService creates a new session service.
func NewService(store *Store, gate TokenGate) Service {
	return &service{store: store, gate: gate}
}

func (s *service) Join(ctx context.Context, req JoinRequest) (*Snapshot, error) {
	if req.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	tok, err := s.gate.Ensure(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("cannot join session: %w", err)
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = uuid.New().String()
	}

	key := Key(tok.RestaurantID, tok.TableNumber, tok.Token)
	sess := s.store.JoinClient(key, Session{
		RestaurantID: tok.RestaurantID,
		TableNumber:  tok.TableNumber,
		Token:        tok.Token,
	}, clientID)

	snap := s.snapshot(sess)
	snap.ClientID = clientID
	return snap, nil
}

func (s *service) Poll(ctx context.Context, sessionKey, clientID string) (*Snapshot, error) {
	sess, ok := s.store.Get(sessionKey, clientID)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionKey)
	}
	return s.snapshot(sess), nil
}

func (s *service) UpdateCart(ctx context.Context, sessionKey string, req UpdateCartRequest) (*Snapshot, error) {
	for _, item := range req.Cart {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for item %s", item.Name)
		}
	}
	sess, ok := s.store.ReplaceCart(sessionKey, req.ClientID, req.Cart)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionKey)
	}
	return s.snapshot(sess), nil
}

func (s *service) Leave(ctx context.Context, sessionKey string, req LeaveRequest) error {
	s.store.Leave(sessionKey, req.ClientID)
	return nil
}

func (s *service) snapshot(sess *Session) *Snapshot {
	return &Snapshot{
		SessionKey:  sess.Key,
		Cart:        sess.Cart,
		Version:     sess.Version,
		ActiveUsers: s.store.ActiveUsers(sess.Key),
		UpdatedAt:   sess.UpdatedAt,
	}
}
