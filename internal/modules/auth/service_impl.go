package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/masapp/masapp-backend/internal/modules/staff"
)

// ErrInvalidCredentials is returned for any failed login so callers cannot
// probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenLifetime = 24 * time.Hour

// Claims are what a staff token carries: who they are, where they work and
// which panels their role opens.
type Claims struct {
	StaffID      string            `json:"staff_id"`
	RestaurantID string            `json:"restaurant_id"`
	Role         string            `json:"role"`
	Permissions  staff.Permissions `json:"permissions"`
	jwt.StandardClaims
}

// LoginResult is the payload a successful login returns.
type LoginResult struct {
	Token string        `json:"token"`
	Staff *staff.Member `json:"staff"`
}

type service struct {
	staffRepo staff.Repository
	secret    []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(staffRepo staff.Repository, secret string) Service {
	return &service{staffRepo: staffRepo, secret: []byte(secret)}
}

func (s *service) Login(ctx context.Context, restaurantID, email, password string) (*LoginResult, error) {
	member, err := s.staffRepo.GetByEmail(ctx, restaurantID, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !member.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := &Claims{
		StaffID:      member.ID.String(),
		RestaurantID: member.RestaurantID.String(),
		Role:         string(member.Role),
		Permissions:  member.Permissions,
		StandardClaims: jwt.StandardClaims{
			Subject:   member.ID.String(),
			ExpiresAt: time.Now().Add(tokenLifetime).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: signed, Staff: member}, nil
}

func (s *service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}
